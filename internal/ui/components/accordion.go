package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/gravitdam/gravitdam/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards and panels.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Panel is one collapsible entry of an Accordion.
type Panel struct {
	Title string
	Lines []string
}

// Accordion renders a list of panels of which at most one is expanded.
// Cursor is the highlighted panel, Expanded the open one (-1 for none).
type Accordion struct {
	Panels   []Panel
	Cursor   int
	Expanded int
}

// View renders the accordion at content width cw.
func (a Accordion) View(cw int) string {
	var b strings.Builder
	for i := range a.Panels {
		b.WriteString(a.panel(i, cw))
		b.WriteString("\n")
	}
	return b.String()
}

// Span returns the line range [top, bottom) that panel i occupies in View.
func (a Accordion) Span(i, cw int) (top, bottom int) {
	for j := 0; j < i && j < len(a.Panels); j++ {
		top += lipgloss.Height(a.panel(j, cw))
	}
	if i < 0 || i >= len(a.Panels) {
		return top, top
	}
	return top, top + lipgloss.Height(a.panel(i, cw))
}

// panel renders the title line of panel i and, when it is expanded, its
// body.
func (a Accordion) panel(i, cw int) string {
	p := a.Panels[i]
	marker := "▸"
	if i == a.Expanded {
		marker = "▾"
	}
	titleStyle := theme.Unselected
	if i == a.Cursor {
		titleStyle = theme.Selected
	}
	// Widths stay within a Card's inner width so lines never re-wrap.
	title := titleStyle.Width(cw - 4).Render(marker + " " + p.Title)
	if i != a.Expanded {
		return title
	}

	body := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		body = append(body, "• "+l)
	}
	if len(body) == 0 {
		body = append(body, theme.Hint.Render("(no details)"))
	}
	details := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Secondary).
		PaddingLeft(1).
		MarginLeft(2).
		Width(cw - 6).
		Foreground(theme.Text).
		Render(strings.Join(body, "\n"))
	return title + "\n" + details
}
