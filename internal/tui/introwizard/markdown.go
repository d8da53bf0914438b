package introwizard

import (
	"strings"

	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"
)

// renderMarkdown renders markdown content using glamour.
// Falls back to wrapped plain text if rendering fails.
func renderMarkdown(content string, width int) string {
	// Cap width to 100 for readability
	if width > 100 {
		width = 100
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(content)
	}

	rendered, err := r.Render(content)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(content)
	}

	// Remove trailing newline that glamour adds
	return strings.TrimSuffix(rendered, "\n")
}
