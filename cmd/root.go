package cmd

import (
	"fmt"
	"os"

	"github.com/kayz/veoprompt/internal/clipboard"
	"github.com/kayz/veoprompt/internal/config"
	"github.com/kayz/veoprompt/internal/logger"
	"github.com/kayz/veoprompt/internal/output"
	"github.com/kayz/veoprompt/internal/promptbuild"
	"github.com/kayz/veoprompt/internal/security"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "veoprompt",
	Short: "Build and compose Veo video prompts",
	Long: `veoprompt assembles video-generation prompts in two steps:

  veoprompt build     Serialize fields and presets into a tagged prompt
  veoprompt compose   Turn a tagged prompt into the final paragraph
  veoprompt run       Build and compose in one step
  veoprompt schema    Print the node input schemas for a host
  veoprompt serve     Expose the nodes over HTTP`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg
		return applyLogLevel(cmd, cfg.Logging.Level)
	},
}

// applyLogLevel sets the logger threshold.
// Priority: command line flag > environment variable > config file
func applyLogLevel(cmd *cobra.Command, configured string) error {
	name := configured
	if cmd.Flags().Changed("log") {
		name = logLevel
	}
	level, err := logger.ParseLevel(name)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: .veoprompt.yaml next to the executable)")
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func currentConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

// newOutputWriter builds the cut-directory writer from config. An empty
// outputRoot keeps the configured root.
func newOutputWriter(cfg *config.Config, outputRoot string) *output.Writer {
	root := cfg.Output.RootDir
	if outputRoot != "" {
		root = outputRoot
	}
	return output.NewWriter(root, cfg.Output.FileName, security.NewPathChecker(cfg.Security.AllowedPaths))
}

func newClipboard(cfg *config.Config) promptbuild.ClipboardWriter {
	if !cfg.Clipboard.Enabled {
		return clipboard.Disabled{}
	}
	return clipboard.New()
}

// newComposer wires the composer ports from config.
func newComposer(cfg *config.Config, outputRoot string) *promptbuild.Composer {
	return promptbuild.NewComposer(newOutputWriter(cfg, outputRoot), newClipboard(cfg))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
