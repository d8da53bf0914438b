package main

import (
	"errors"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/haleclipse/ccline/internal/claude"
	"github.com/haleclipse/ccline/internal/config"
	"github.com/haleclipse/ccline/internal/intro"
	"github.com/haleclipse/ccline/internal/logger"
	"github.com/haleclipse/ccline/internal/state"
	"github.com/haleclipse/ccline/internal/tui/introwizard"
	"github.com/haleclipse/ccline/internal/tui/theme"
	"github.com/spf13/cobra"
)

var introCmd = &cobra.Command{
	Use:   "intro",
	Short: "Run the onboarding wizard",
	Long: `Run the onboarding wizard.

The wizard introduces ccline, checks that Nerd Font icons render, and offers
to add the statusLine entry to Claude Code's settings.json. If an entry is
already present you are asked before it is overwritten.`,
	Args: cobra.NoArgs,
	RunE: runIntro,
}

func runIntro(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !interactive() {
		return fmt.Errorf("the intro wizard needs an interactive terminal\n\nUse 'ccline claude' to configure Claude Code without it")
	}
	return runIntroWith(cmd, cfg)
}

// runIntroWith runs the wizard against the settings writer, records the
// result and reports it once the terminal is restored.
func runIntroWith(cmd *cobra.Command, cfg *config.Config) error {
	w := newWriter(cfg)
	ctrl := newIntroController(w)

	out, err := introwizard.Run(ctrl)
	if err != nil {
		return err
	}

	if err := state.Record(cfg.StateDir, out.Proceed, out.Configured); err != nil {
		logger.Warn("Failed to save intro state: %v", err)
	}

	path, _ := w.SettingsPath()
	return reportIntro(cmd.OutOrStdout(), out, path)
}

// newIntroController starts a wizard whose configuration action writes
// through w.
func newIntroController(w *claude.Writer) *intro.Controller {
	return intro.New(w.HasExistingEntry(), intro.ConfigureFunc(func(force bool) error {
		_, err := w.Apply(force)
		return err
	}))
}

// reportIntro prints the hand-off after the wizard. A configuration failure
// is returned so the exit status reflects it.
func reportIntro(w io.Writer, out intro.Outcome, settingsPath string) error {
	if out.Exited || !out.Proceed {
		return nil
	}

	if out.ConfigErr != nil {
		hint := "Run 'ccline claude' to try again."
		if errors.Is(out.ConfigErr, claude.ErrPathUnresolved) {
			hint = "Set settings_path in your ccline config or pass --settings to 'ccline claude'."
		}
		return fmt.Errorf("configuring Claude Code: %w\n\n%s", out.ConfigErr, hint)
	}

	if out.Configured {
		_, _ = lipgloss.Fprintln(w, theme.Current().S().Success.Render("✓ Claude Code configured: "+settingsPath)+"\n")
	}
	_, _ = fmt.Fprintln(w, "Intro complete. Run 'ccline setup' to create a config file, or 'ccline --help' to see all commands.")
	return nil
}
