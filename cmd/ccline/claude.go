package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/editor"
	"github.com/haleclipse/ccline/internal/claude"
	"github.com/haleclipse/ccline/internal/config"
	"github.com/haleclipse/ccline/internal/logger"
	"github.com/spf13/cobra"
)

var claudeFlags struct {
	force    bool
	yes      bool
	dryRun   bool
	edit     bool
	settings string
}

var claudeCmd = &cobra.Command{
	Use:   "claude",
	Short: "Add the ccline statusLine entry to Claude Code settings",
	Long: `Add the ccline statusLine entry to Claude Code's settings.json.

Only the "statusLine" key is written; every other setting is preserved. If an
entry already exists you are asked before it is replaced, unless --force or
--yes is given. A replaced entry is backed up under the ccline state directory.

Settings location:
  Linux/macOS: ~/.config/claude/settings.json
  Windows:     %USERPROFILE%\AppData\Roaming\Claude\settings.json`,
	Args: cobra.NoArgs,
	RunE: runClaude,
}

func init() {
	claudeCmd.Flags().BoolVarP(&claudeFlags.force, "force", "f", false, "Overwrite an existing statusLine without asking")
	claudeCmd.Flags().BoolVarP(&claudeFlags.yes, "yes", "y", false, "Answer yes to the overwrite question")
	claudeCmd.Flags().BoolVar(&claudeFlags.dryRun, "dry-run", false, "Show the change without writing it")
	claudeCmd.Flags().BoolVarP(&claudeFlags.edit, "edit", "e", false, "Open the settings file in $EDITOR after writing")
	claudeCmd.Flags().StringVar(&claudeFlags.settings, "settings", "", "Path to Claude Code settings.json")
}

func runClaude(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return configureClaude(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, isTerminal(os.Stdout))
}

// configureClaude runs the line-mode flow. color enables diff highlighting.
func configureClaude(in io.Reader, out io.Writer, cfg *config.Config, color bool) error {
	opts := []claude.Option{}
	if claudeFlags.settings != "" {
		opts = append(opts, claude.WithSettingsPath(claudeFlags.settings))
	}
	if claudeFlags.yes {
		opts = append(opts, claude.WithConfirmer(claude.ConfirmFunc(func(string) (bool, error) {
			return true, nil
		})))
	} else {
		opts = append(opts, claude.WithConfirmer(claude.LinePrompter{In: in, Out: out}))
	}
	w := newWriter(cfg, opts...)

	if claudeFlags.dryRun {
		return printPreview(out, w, color)
	}

	report, err := w.Apply(claudeFlags.force)
	if err != nil {
		return fmt.Errorf("failed to configure Claude Code: %w", err)
	}
	if report.Cancelled {
		_, _ = fmt.Fprintln(out, "\nKept the existing statusLine configuration.")
		return nil
	}

	_, _ = fmt.Fprintf(out, "Claude Code statusLine written to: %s\n", report.Path)
	if report.BackupPath != "" {
		_, _ = fmt.Fprintf(out, "Previous entry saved to: %s\n", report.BackupPath)
	}

	if claudeFlags.edit {
		return openInEditor(report.Path)
	}
	return nil
}

func printPreview(out io.Writer, w *claude.Writer, color bool) error {
	p, err := w.Preview()
	if err != nil {
		return fmt.Errorf("failed to preview Claude Code settings: %w", err)
	}
	if !p.Changed() {
		_, _ = fmt.Fprintf(out, "%s is already up to date.\n", p.Path)
		return nil
	}
	diff := p.Diff
	if color {
		diff = p.Highlighted()
	}
	_, _ = fmt.Fprint(out, diff)
	return nil
}

func openInEditor(path string) error {
	c, err := editor.Command("ccline", path)
	if err != nil {
		return fmt.Errorf("failed to prepare editor: %w", err)
	}
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	logger.Debug("Opening %s in editor", path)
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}
