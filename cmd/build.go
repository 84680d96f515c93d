package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kayz/veoprompt/internal/logger"
	"github.com/kayz/veoprompt/internal/promptbuild"
	"github.com/spf13/cobra"
)

var (
	buildOpts       buildFlags
	buildFormat     string
	buildOutputPath string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Serialize prompt fields and presets into a tagged prompt",
	Example: `  veoprompt build --person "A woman" --background "a quiet street" \
    --style cinematic --time "sunset, warm golden hour light" --camera "zoom in"
  veoprompt build --request cut1.yaml --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildOpts.request(cmd)
		if err != nil {
			return err
		}

		rec := promptbuild.NewBuilder().Build(req)
		out, err := renderRecord(rec, buildFormat)
		if err != nil {
			return err
		}

		if buildOutputPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		if err := os.WriteFile(buildOutputPath, []byte(out), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("Wrote structured prompt to %s", buildOutputPath)
		return nil
	},
}

func renderRecord(rec promptbuild.Record, format string) (string, error) {
	switch format {
	case "", formatTagged:
		return promptbuild.Serialize(rec), nil
	case formatJSON:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode record: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown --format %q: use %s or %s", format, formatTagged, formatJSON)
	}
}

const (
	formatTagged = "tagged"
	formatJSON   = "json"
	formatYAML   = "yaml"
)

func init() {
	addBuildFlags(buildCmd, &buildOpts)
	buildCmd.Flags().StringVar(&buildFormat, "format", formatTagged, "Output format: tagged or json")
	buildCmd.Flags().StringVar(&buildOutputPath, "output", "", "Write output to file (default: stdout)")
	rootCmd.AddCommand(buildCmd)
}
