package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/kayz/veoprompt/internal/nodes"
	"github.com/kayz/veoprompt/internal/promptbuild"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var schemaFormat string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the input schemas of the prompt nodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := nodes.Default(promptbuild.NewBuilder(), promptbuild.NewComposer(nil, nil))
		descriptors := registry.Describe()

		var (
			data []byte
			err  error
		)
		switch schemaFormat {
		case formatYAML:
			data, err = yaml.Marshal(descriptors)
		case formatJSON:
			data, err = json.MarshalIndent(descriptors, "", "  ")
			data = append(data, '\n')
		default:
			return fmt.Errorf("unknown --format %q: use %s or %s", schemaFormat, formatYAML, formatJSON)
		}
		if err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	schemaCmd.Flags().StringVar(&schemaFormat, "format", formatYAML, "Output format: yaml or json")
	rootCmd.AddCommand(schemaCmd)
}
