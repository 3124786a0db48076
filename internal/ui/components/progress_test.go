package components

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestProgressBar_Width(t *testing.T) {
	for _, pct := range []float64{-0.5, 0, 0.42, 1, 1.7} {
		bar := NewProgressBar("Physics", pct, false, 30)
		assert.Equal(t, 30, lipgloss.Width(bar.View()), "percent %v", pct)
	}
}

func TestScoreBar_ShowsPercent(t *testing.T) {
	out := ScoreBar("Electricity", 68, 40)
	assert.Contains(t, out, "68%")
	assert.Contains(t, out, "Electricity")
	assert.Equal(t, 40, lipgloss.Width(out))
}
