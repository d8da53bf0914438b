package introwizard

import (
	"charm.land/lipgloss/v2"
	"github.com/haleclipse/ccline/internal/tui/theme"
)

const confirmationWidth = 54

// RenderConfirmationModal renders the overwrite confirmation with the given
// title and message.
func RenderConfirmationModal(title, message string) string {
	t := theme.Current()

	s := t.S()

	titleText := s.Warning.MarginBottom(1).Render("⚠ " + title)
	messageText := s.Body.Render(message)
	buttons := s.Muted.Render("Press Y to overwrite, N or ESC to keep it")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleText,
		messageText,
		"",
		buttons,
	)

	return lipgloss.NewStyle().
		Width(confirmationWidth).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Warning)).
		Render(content)
}
