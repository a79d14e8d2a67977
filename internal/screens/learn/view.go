package learn

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/gravitdam/gravitdam/internal/ui/components"
	"github.com/gravitdam/gravitdam/internal/ui/theme"
)

func (l *LearnScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case l.state.ShowResults:
		body = l.renderResults(cw, height)
	case l.state.Answering():
		body = l.renderQuestion(cw)
	case l.state.Error != "":
		body = l.renderError(cw)
	default:
		body = l.renderLoading(cw)
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (l *LearnScreen) renderLoading(cw int) string {
	msg := l.spinner.View() + " Generating exam questions..."
	return components.Card(theme.Subtitle.Width(cw).Render(msg), cw)
}

func (l *LearnScreen) renderError(cw int) string {
	var b strings.Builder
	b.WriteString(theme.ErrorText.Render("Could not load questions"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(cw).Render(l.state.Error))
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Try Again", true).View())
	return components.Card(b.String(), cw)
}

func (l *LearnScreen) renderQuestion(cw int) string {
	total := len(l.state.Questions)
	progress := components.NewProgressBar(l.state.Current+1, total, cw)

	label := "Continue"
	if l.state.OnLastQuestion() {
		label = "Check Results!"
	}
	cont := components.NewButton(label, l.state.CanContinue())

	var b strings.Builder
	b.WriteString(progress.View())
	b.WriteString("\n\n")
	b.WriteString(l.choice.View())
	b.WriteString("\n")
	b.WriteString(cont.View())
	return components.Card(b.String(), cw)
}

// renderResults pins the score above and the exit buttons below a
// scrolling list of per-question results.
func (l *LearnScreen) renderResults(cw, height int) string {
	inner := cw - 4

	var list strings.Builder
	for i, r := range l.state.Results() {
		if i > 0 {
			list.WriteString("\n\n")
		}
		mark := theme.Correct.Render("✓")
		if !r.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		list.WriteString(fmt.Sprintf("%s %d. %s\n", mark, i+1, theme.Body.Render(r.Question.Question)))

		chosen := "(no answer)"
		if r.Chosen >= 0 {
			chosen = r.Question.Option(r.Chosen)
		}
		list.WriteString("   " + theme.Hint.Render("Your answer: ") + chosen + "\n")
		list.WriteString("   " + theme.Hint.Render("Correct answer: ") + r.Question.Option(r.Question.CorrectAnswer) + "\n")
		list.WriteString("   " + theme.Hint.Render("Explanation: ") + r.Question.Explanation)
	}
	wrapped := lipgloss.NewStyle().Width(inner).Render(list.String())

	tryNew := components.NewButton("Try New Questions", l.button == buttonTryNew)
	review := components.NewButton("Review Questions", l.button == buttonReview)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, tryNew.View(), "  ", review.View())

	// Card border, score line and the buttons, with a blank line either side
	// of the list.
	listHeight := height - 2 - 1 - 2 - lipgloss.Height(buttons)

	var b strings.Builder
	b.WriteString(theme.Heading.Render(fmt.Sprintf("Your Score: %d / %d", l.state.Score(), len(l.state.Questions))))
	b.WriteString("\n\n")
	b.WriteString(l.results.Render(wrapped, listHeight))
	b.WriteString("\n\n")
	b.WriteString(buttons)

	return components.Card(lipgloss.NewStyle().Width(inner).Render(b.String()), cw)
}
