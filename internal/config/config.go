// Package config loads ccline's own configuration using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appName  = "ccline"
	fileName = "ccline.yml"
)

// Config holds all configuration values for ccline.
type Config struct {
	// SettingsPath overrides the Claude Code settings.json location.
	SettingsPath string `mapstructure:"settings_path" yaml:"settings_path"`
	// Command overrides the command written into the statusLine entry.
	Command   string `mapstructure:"command" yaml:"command"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFile   string `mapstructure:"log_file" yaml:"log_file"`
	SkipIntro bool   `mapstructure:"skip_intro" yaml:"skip_intro"`
	// StateDir holds intro state and statusLine backups.
	StateDir string `mapstructure:"state_dir" yaml:"state_dir"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		StateDir: GlobalDir(),
	}
}

// Load loads configuration with precedence:
// ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("settings_path", def.SettingsPath)
	v.SetDefault("command", def.Command)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("skip_intro", def.SkipIntro)
	v.SetDefault("state_dir", def.StateDir)

	v.SetEnvPrefix("CCLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"settings_path", "command", "log_level", "log_file", "skip_intro", "state_dir"} {
		if err := v.BindEnv(key, "CCLINE_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if globalPath := GlobalPath(); fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	if projectPath := ProjectPath(); fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.StateDir = expandHome(cfg.StateDir)
	cfg.SettingsPath = expandHome(cfg.SettingsPath)
	cfg.LogFile = expandHome(cfg.LogFile)

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalDir returns $XDG_CONFIG_HOME/ccline or ~/.config/ccline.
func GlobalDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// GlobalPath returns the global config file path.
func GlobalPath() string {
	return filepath.Join(GlobalDir(), fileName)
}

// ProjectPath returns ./ccline.yml.
func ProjectPath() string {
	return fileName
}

// WriteGlobal writes cfg to GlobalPath, creating its directory.
func WriteGlobal(cfg *Config) error {
	return write(GlobalPath(), cfg)
}

// WriteProject writes cfg to ProjectPath.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
