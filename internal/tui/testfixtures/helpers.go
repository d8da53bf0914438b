// Package testfixtures holds shared helpers for TUI tests.
package testfixtures

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	uv "github.com/charmbracelet/ultraviolet"
)

// Initialize test environment
func init() {
	// Ascii profile keeps rendered output free of color differences across terminals.
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// WindowSize returns a resize message for the canonical terminal.
func WindowSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: TestTermWidth, Height: TestTermHeight}
}

// Key returns a key press for a printable character.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special key presses.
var (
	KeyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	KeyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	KeyLeft  = tea.KeyPressMsg{Code: tea.KeyLeft}
	KeyRight = tea.KeyPressMsg{Code: tea.KeyRight}
	KeyCtrlC = tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
)

// Plain strips ANSI sequences from rendered output.
func Plain(s string) string {
	return ansi.Strip(s)
}

// RenderScreen draws content onto a canonical-size screen buffer and
// returns the plain text of what would be shown.
func RenderScreen(t *testing.T, content string) string {
	t.Helper()
	canvas := uv.NewScreenBuffer(TestTermWidth, TestTermHeight)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: TestTermWidth, Y: TestTermHeight},
	})
	return Plain(canvas.Render())
}
