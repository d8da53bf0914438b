package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style

	// Hint bar
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style

	// Panel frames the wizard content.
	Panel lipgloss.Style
}
