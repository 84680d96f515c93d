package cmd

import (
	"github.com/kayz/veoprompt/internal/promptbuild"
	"github.com/spf13/cobra"
)

var (
	runBuildOpts   buildFlags
	runComposeOpts composeFlags
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build and compose a prompt in one step",
	Example: `  veoprompt run --person "A man" --background "a rainy alley" \
    --style cinematic,documentary --camera "dolly in" --save --cut 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runComposeOpts.options()
		if err != nil {
			return err
		}
		req, err := runBuildOpts.request(cmd)
		if err != nil {
			return err
		}

		rec := promptbuild.NewBuilder().Build(req)
		composer := newComposer(currentConfig(), runComposeOpts.outputRoot)
		res, err := composer.Compose(cmd.Context(), rec, opts)
		return reportResult(cmd, res, err, runComposeOpts.strict)
	},
}

func init() {
	addBuildFlags(runCmd, &runBuildOpts)
	addComposeFlags(runCmd, &runComposeOpts)
	rootCmd.AddCommand(runCmd)
}
