package main

import (
	"fmt"

	"github.com/haleclipse/ccline/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create ccline configuration file",
	Long: `Create a ccline configuration file with sensible defaults.

By default, creates a global config at ~/.config/ccline/ccline.yml.
Use --project to create a project-local config in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	// Seed the file with the values the writer would use today so they are
	// easy to find and edit.
	cfg := config.Default()
	w := newWriter(cfg)
	if path, err := w.SettingsPath(); err == nil {
		cfg.SettingsPath = path
	}
	cfg.Command = w.Command()

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Config written to: %s\n\n", targetPath)
	_, _ = fmt.Fprintln(out, "Run 'ccline claude' to register ccline with Claude Code.")
	return nil
}
