package introwizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/haleclipse/ccline/internal/intro"
	"github.com/haleclipse/ccline/internal/tui/theme"
)

// renderHintBar renders hints as "key desc • key desc".
func renderHintBar(hints []intro.Hint) string {
	s := theme.Current().S()
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, s.HintKey.Render(h.Key)+" "+s.HintDesc.Render(h.Desc))
	}
	return strings.Join(parts, " "+s.HintSeparator.Render("•")+" ")
}

// renderProgress renders one dot per step, filled up to current and shaded
// from the primary to the secondary color.
func renderProgress(current, total int) string {
	t := theme.Current()
	s := t.S()
	var b strings.Builder
	for i := 0; i < total; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if i > current {
			b.WriteString(s.Muted.Render("○"))
			continue
		}
		pos := 0.0
		if total > 1 {
			pos = float64(i) / float64(total-1)
		}
		color := theme.InterpolateColor(t.Primary, t.Secondary, pos)
		b.WriteString(s.Title.Foreground(lipgloss.Color(color)).Render("●"))
	}
	return b.String()
}
