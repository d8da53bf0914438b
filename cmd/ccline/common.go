package main

import (
	"fmt"
	"os"

	"github.com/haleclipse/ccline/internal/claude"
	"github.com/haleclipse/ccline/internal/config"
	"github.com/haleclipse/ccline/internal/logger"
	"golang.org/x/term"
)

// loadConfig loads the tool config and applies its logging settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Default.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		logger.Warn("Ignoring logging config: %v", err)
	}
	return cfg, nil
}

// newWriter builds a settings writer from the tool config. Later options
// override earlier ones.
func newWriter(cfg *config.Config, opts ...claude.Option) *claude.Writer {
	base := []claude.Option{claude.WithBackupDir(cfg.StateDir)}
	if cfg.SettingsPath != "" {
		base = append(base, claude.WithSettingsPath(cfg.SettingsPath))
	}
	if cfg.Command != "" {
		base = append(base, claude.WithCommand(cfg.Command))
	}
	return claude.NewWriter(append(base, opts...)...)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// interactive reports whether both stdin and stdout are terminals.
func interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
