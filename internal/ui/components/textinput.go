package components

import (
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gravitdam/gravitdam/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and optional unit suffix.
type TextInput struct {
	Model       textinput.Model
	Label       string
	Unit        string
	NumericOnly bool
}

// NewTextInput creates a new labelled, unfocused text input.
func NewTextInput(label, unit, placeholder string, numericOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:       ti,
		Label:       label,
		Unit:        unit,
		NumericOnly: numericOnly,
	}
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages. Numeric inputs keep only characters that can
// appear in a decimal number, whether typed or pasted.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && !numericRune(key[0]) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.NumericOnly {
		if v := t.Model.Value(); sanitizeNumeric(v) != v {
			t.Model.SetValue(sanitizeNumeric(v))
		}
	}
	return t, cmd
}

func sanitizeNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && numericRune(byte(r)) {
			return r
		}
		return -1
	}, s)
}

func numericRune(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-'
}

// View renders "Label (unit): [input]".
func (t TextInput) View() string {
	label := t.Label
	if t.Unit != "" {
		label += " (" + t.Unit + ")"
	}
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(24)
	if t.Focused() {
		labelStyle = labelStyle.Foreground(theme.Highlight).Bold(true)
	}
	return labelStyle.Render(label) + " " + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}
