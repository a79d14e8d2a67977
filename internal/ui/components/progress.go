package components

import (
	"fmt"
	"strings"

	"github.com/gravitdam/gravitdam/internal/ui/theme"
)

// ProgressBar displays "Question X of N" followed by a horizontal bar.
type ProgressBar struct {
	Current int // 1-based
	Total   int
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(current, total, width int) ProgressBar {
	return ProgressBar{Current: current, Total: total, Width: width}
}

// Label returns the textual position, e.g. "Question 3 of 10".
func (p ProgressBar) Label() string {
	return fmt.Sprintf("Question %d of %d", p.Current, p.Total)
}

// Percent returns the completed fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Total)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	label := theme.Body.Render(p.Label()) + "  "

	barWidth := p.Width - len(p.Label()) - 2
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	empty := barWidth - filled

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))
}
