package calculate

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/gravitdam/gravitdam/internal/ui/components"
	"github.com/gravitdam/gravitdam/internal/ui/theme"
)

// View renders the form with the results below it. The window follows the
// focused element: the form, the focused result section, or the tail of a
// streaming answer.
func (s *CalculateScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	form := s.renderForm(cw)
	formHeight := lipgloss.Height(form)
	content := form
	top, bottom := 0, formHeight

	if results, rtop, rbottom := s.renderResults(cw); results != "" {
		content = form + "\n" + results
		if s.state.Streaming != "" || s.focus >= s.sectionStop() {
			top, bottom = formHeight+rtop, formHeight+rbottom
		}
	}

	s.scroll.Follow(top, bottom, height)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.scroll.Render(content, height))
}

func (s *CalculateScreen) renderForm(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Dam Parameters"))
	b.WriteString("\n\n")
	for _, in := range s.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.renderButtons())

	if s.state.Error != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(s.state.Error))
	}
	return components.Card(b.String(), cw)
}

func (s *CalculateScreen) renderButtons() string {
	label := "Calculate"
	if s.state.Loading() {
		label = s.spinner.View() + " Calculating..."
	}
	submit := components.NewButton(label, s.state.CanSubmit() && s.focus == s.submitStop())
	reset := components.NewButton("New Calculation", s.focus == s.resetStop())

	return lipgloss.JoinHorizontal(lipgloss.Center, submit.View(), "  ", reset.View())
}

// resultsTop is the first accordion line inside the results card: the
// border, the heading and a blank line come before it.
const resultsTop = 3

// renderResults returns the results card and the line range within it that
// the window should keep visible.
func (s *CalculateScreen) renderResults(cw int) (card string, top, bottom int) {
	if s.state.Streaming != "" {
		card = components.Card(theme.Streaming.Width(cw-4).Render(s.state.Streaming), cw)
		h := lipgloss.Height(card)
		return card, h - 1, h
	}

	secs := s.state.Sections()
	if len(secs) == 0 {
		return "", 0, 0
	}

	acc := components.Accordion{
		Panels:   make([]components.Panel, len(secs)),
		Cursor:   s.focus - s.sectionStop(),
		Expanded: s.state.Expanded,
	}
	for i, sec := range secs {
		acc.Panels[i] = components.Panel{Title: sec.Title, Lines: sec.Details}
	}

	card = components.Card(theme.Heading.Render("Calculation Results")+"\n\n"+acc.View(cw), cw)
	top, bottom = acc.Span(acc.Cursor, cw)
	return card, resultsTop + top, resultsTop + bottom
}
