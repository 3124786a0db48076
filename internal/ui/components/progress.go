// Package components renders small reusable terminal widgets.
package components

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/alfanumrik/internal/ui/theme"
)

// ProgressBar renders a horizontal bar for a fraction between 0 and 1.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// ScoreBar is a bar for a 0..100 score, coloured by how strong it is.
func ScoreBar(label string, score, width int) string {
	bar := NewProgressBar(label, float64(score)/100, true, width)
	return bar.render(theme.Score(score).GetForeground())
}

// View renders the bar in the secondary colour.
func (p ProgressBar) View() string {
	return p.render(theme.Secondary)
}

func (p ProgressBar) render(fill color.Color) string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label) + "  ")
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6
	}
	barWidth := max(p.Width-lipgloss.Width(b.String())-percentWidth, 4)

	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)
	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(theme.Hint.UnsetItalic().Render(fmt.Sprintf(" %4d%%", int(math.Round(p.Percent*100)))))
	}
	return b.String()
}
