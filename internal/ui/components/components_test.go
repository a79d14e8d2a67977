package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedMsg string

func pick(s string) tea.Cmd {
	return func() tea.Msg { return pickedMsg(s) }
}

func TestMenuWrapsAndRunsCommand(t *testing.T) {
	m := NewMenu(MenuItem{Label: "One", Cmd: pick("one")}, MenuItem{Label: "Two", Cmd: pick("two")})
	assert.Equal(t, "One", m.Current())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, "Two", m.Current())
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, "One", m.Current())

	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg("one"), cmd())
	assert.Contains(t, m.View(), "▸ One")
}

func TestEmptyMenu(t *testing.T) {
	m := NewMenu()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.Current())
}

func TestMultiChoiceLetterPicks(t *testing.T) {
	mc := NewMultiChoice("Which?", []string{"w", "x", "y", "z"}, -1)

	mc, cmd := mc.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	require.NotNil(t, cmd)
	assert.Equal(t, ChoiceMsg{Index: 2}, cmd())
	assert.Equal(t, 2, mc.Chosen)
	assert.Equal(t, 2, mc.Cursor)

	_, cmd = mc.Update(tea.KeyPressMsg{Code: 'e', Text: "e"})
	assert.Nil(t, cmd, "letters past the last option are ignored")
}

func TestMultiChoiceCursorThenSpace(t *testing.T) {
	mc := NewMultiChoice("Which?", []string{"w", "x"}, 1)
	assert.Equal(t, 1, mc.Cursor)

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, mc.Cursor)

	mc, cmd := mc.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	require.NotNil(t, cmd)
	assert.Equal(t, ChoiceMsg{Index: 0}, cmd())
	assert.Contains(t, mc.View(), "(•) A)  w")
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "A", OptionLabel(0))
	assert.Equal(t, "D", OptionLabel(3))
	assert.Equal(t, "?", OptionLabel(-1))
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(3, 10, 40)
	assert.Equal(t, "Question 3 of 10", p.Label())
	assert.InDelta(t, 0.3, p.Percent(), 1e-9)
	assert.Contains(t, p.View(), "Question 3 of 10")

	assert.Zero(t, NewProgressBar(1, 0, 40).Percent())
	assert.Equal(t, 1.0, NewProgressBar(12, 10, 40).Percent())
}

func TestNumericInputDropsLetters(t *testing.T) {
	in := NewTextInput("Dam Height", "m", "e.g. 50", true, 0)
	in.Focus()

	in, _ = in.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	in, _ = in.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	in, _ = in.Update(tea.KeyPressMsg{Code: '.', Text: "."})
	in, _ = in.Update(tea.KeyPressMsg{Code: '5', Text: "5"})

	assert.Equal(t, "4.5", in.Value())
	assert.Contains(t, in.View(), "Dam Height (m)")
}

func TestNumericInputDropsSpaceAndPaste(t *testing.T) {
	in := NewTextInput("Dam Height", "m", "e.g. 50", true, 0)
	in.Focus()

	in, _ = in.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	in, _ = in.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	in, _ = in.Update(tea.PasteMsg{Content: "2 m.5x"})

	assert.Equal(t, "12.5", in.Value())
}

func TestTextInputKeepsAnyTextWhenNotNumeric(t *testing.T) {
	in := NewTextInput("Question", "", "", false, 0)
	in.Focus()

	in, _ = in.Update(tea.PasteMsg{Content: "why 2 m?"})
	assert.Equal(t, "why 2 m?", in.Value())
}

func TestSanitizeNumeric(t *testing.T) {
	assert.Equal(t, "12.5", sanitizeNumeric("1 2a.5"))
	assert.Equal(t, "-3", sanitizeNumeric("−-3 ")) // unicode minus is not ASCII
	assert.Equal(t, "", sanitizeNumeric("abc"))
}

func TestAccordionShowsOnlyExpandedPanel(t *testing.T) {
	a := Accordion{
		Panels: []Panel{
			{Title: "Self Weight", Lines: []string{"W = 24 kN"}},
			{Title: "Uplift", Lines: []string{"U = 9 kN"}},
		},
		Expanded: 1,
	}
	v := a.View(60)
	assert.Contains(t, v, "▸ Self Weight")
	assert.Contains(t, v, "▾ Uplift")
	assert.Contains(t, v, "• U = 9 kN")
	assert.NotContains(t, v, "W = 24 kN")
}

func TestContentWidthClamps(t *testing.T) {
	assert.Equal(t, 20, ContentWidth(10))
	assert.Equal(t, 74, ContentWidth(80))
	assert.Equal(t, 96, ContentWidth(200))
}

func TestButtonView(t *testing.T) {
	assert.Contains(t, NewButton("Calculate", true).View(), "▸ Calculate")
	assert.NotContains(t, NewButton("Calculate", false).View(), "▸")
}
