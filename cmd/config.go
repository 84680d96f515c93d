package cmd

import (
	"fmt"
	"os"

	"github.com/kayz/veoprompt/internal/config"
	"github.com/kayz/veoprompt/internal/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write a config file with the default settings.

The file goes to --config when given, otherwise to .veoprompt.yaml next to
the executable. An existing file is kept unless --force is set.`,
	// The target file may not exist yet, so skip loading it.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()
		return applyLogLevel(cmd, os.Getenv(config.EnvLogLevel))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.ConfigPath()
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("config %s already exists (use --force to overwrite)", path)
		}

		cfg := config.DefaultConfig()
		var err error
		if configPath == "" {
			err = cfg.Save()
		} else {
			err = cfg.SaveTo(path)
		}
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		logger.Info("Wrote default config to %s", path)
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config after env and .env overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(currentConfig())
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
