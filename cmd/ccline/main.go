package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/haleclipse/ccline/internal/logger"
	"github.com/haleclipse/ccline/internal/state"
	"github.com/haleclipse/ccline/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▀ █▀▀ █   █ █▄ █ █▀▀"
	logoText2 = "█▄▄ █▄▄ █▄▄ █ █ ▀█ ██▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ccline",
	Short: "High-performance statusline for Claude Code",
	Args:  cobra.NoArgs,
	RunE:  runRoot,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

ccline renders a statusline for Claude Code. On first run it shows a short
onboarding wizard that can register ccline in Claude Code's settings.json.

Run 'ccline intro' to see the wizard again, or 'ccline claude' to write the
statusLine entry without it.`

	rootCmd.AddCommand(introCmd)
	rootCmd.AddCommand(claudeCmd)
	rootCmd.AddCommand(setupCmd)
}

// runRoot shows the intro the first time ccline is started in a terminal and
// prints help otherwise.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.SkipIntro || !interactive() || state.Load(cfg.StateDir).Completed {
		return cmd.Help()
	}
	return runIntroWith(cmd, cfg)
}
