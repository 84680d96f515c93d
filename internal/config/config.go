package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// Environment variables that override the config file.
const (
	EnvOutputDir   = "VEOPROMPT_OUTPUT_DIR"
	EnvLogLevel    = "VEOPROMPT_LOG_LEVEL"
	EnvNoClipboard = "VEOPROMPT_NO_CLIPBOARD"
	EnvPort        = "VEOPROMPT_PORT"
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Security  SecurityConfig  `yaml:"security"`
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
}

// OutputConfig controls where saved prompts go.
type OutputConfig struct {
	// RootDir is the directory that holds cut_NNN subdirectories.
	RootDir  string `yaml:"root_dir"`
	FileName string `yaml:"file_name"`
}

type ClipboardConfig struct {
	Enabled bool `yaml:"enabled"`
}

type SecurityConfig struct {
	// AllowedPaths confines the output root. Empty means unrestricted.
	AllowedPaths []string `yaml:"allowed_paths"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			RootDir:  "output",
			FileName: "veo_prompt.txt",
		},
		Clipboard: ClipboardConfig{
			Enabled: true,
		},
		Security: SecurityConfig{
			AllowedPaths: []string{},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Port: 8188,
		},
	}
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".veoprompt.yaml")
}

// Load reads the config next to the executable. A missing file yields the
// defaults. Environment overrides are applied on top.
func Load() (*Config, error) {
	cfg, err := LoadFromPath(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg = DefaultConfig()
		} else {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads a config file over the defaults. Unlike Load it
// reports a missing file.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDotEnv loads .env and .env.local from the working directory if they
// exist. Variables already set in the environment win.
func LoadDotEnv() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// ApplyEnv overrides cfg from VEOPROMPT_* variables.
func ApplyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.Output.RootDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvNoClipboard)); v != "" {
		off, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvNoClipboard, v, err)
		}
		if off {
			cfg.Clipboard.Enabled = false
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s %q", EnvPort, v)
		}
		cfg.Server.Port = port
	}
	return nil
}

// Save writes the config next to the executable.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
