package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gravitdam/gravitdam/internal/ui/theme"
)

// ChoiceMsg is emitted when the user picks an option.
type ChoiceMsg struct {
	Index int
}

// OptionLabel returns the letter shown next to option i ("A", "B", ...).
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// MultiChoice is a multiple-choice selector. The cursor moves with
// up/down; space or the option letter picks an option. Chosen is owned by
// the caller and only drives rendering.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	Chosen   int
}

// NewMultiChoice creates a selector with the cursor on the chosen option,
// or on the first one when nothing is chosen yet.
func NewMultiChoice(question string, options []string, chosen int) MultiChoice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	}
	return MultiChoice{
		Question: question,
		Options:  options,
		Cursor:   cursor,
		Chosen:   chosen,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "space", " ":
		return m.choose(m.Cursor)
	}

	if len(key) == 1 {
		c := key[0] | 0x20 // lower-case
		if c >= 'a' && int(c-'a') < len(m.Options) {
			m.Cursor = int(c - 'a')
			return m.choose(m.Cursor)
		}
	}
	return m, nil
}

func (m MultiChoice) choose(i int) (MultiChoice, tea.Cmd) {
	if i < 0 || i >= len(m.Options) {
		return m, nil
	}
	m.Chosen = i
	return m, func() tea.Msg { return ChoiceMsg{Index: i} }
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}
		mark := "( )"
		if i == m.Chosen {
			mark = "(•)"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, OptionLabel(i), opt)

		switch {
		case i == m.Chosen:
			s += theme.Selected.Render(line) + "\n"
		case i == m.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Highlight).Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}
