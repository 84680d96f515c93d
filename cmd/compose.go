package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kayz/veoprompt/internal/logger"
	"github.com/kayz/veoprompt/internal/promptbuild"
	"github.com/spf13/cobra"
)

var (
	composeOpts   composeFlags
	composeInput  string
	composeFormat string
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a tagged prompt into the final Veo paragraph",
	Example: `  veoprompt build --person "A woman" | veoprompt compose --save --cut 3
  veoprompt compose --input prompt.json --format json --clipboard=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := composeOpts.options()
		if err != nil {
			return err
		}

		data, err := readInput(cmd, composeInput)
		if err != nil {
			return err
		}
		rec, err := parseRecord(data, composeFormat)
		if err != nil {
			return err
		}

		composer := newComposer(currentConfig(), composeOpts.outputRoot)
		res, err := composer.Compose(cmd.Context(), rec, opts)
		return reportResult(cmd, res, err, composeOpts.strict)
	},
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func parseRecord(data []byte, format string) (promptbuild.Record, error) {
	switch format {
	case "", formatTagged:
		return promptbuild.ParseTagged(string(data)), nil
	case formatJSON:
		var rec promptbuild.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("unknown --format %q: use %s or %s", format, formatTagged, formatJSON)
	}
}

// reportResult prints the final text. A save failure is logged and only
// fails the command when strict is set.
func reportResult(cmd *cobra.Command, res promptbuild.Result, saveErr error, strict bool) error {
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)

	if res.Copied {
		logger.Info("Copied final prompt to clipboard")
	}
	if saveErr != nil {
		if strict {
			return saveErr
		}
		logger.Error("Failed to save prompt: %v", saveErr)
	}
	return nil
}

func init() {
	addComposeFlags(composeCmd, &composeOpts)
	composeCmd.Flags().StringVarP(&composeInput, "input", "i", "-", "Tagged prompt file, or - for stdin")
	composeCmd.Flags().StringVar(&composeFormat, "format", formatTagged, "Input format: tagged or json")
	rootCmd.AddCommand(composeCmd)
}
