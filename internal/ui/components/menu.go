package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/gravitdam/gravitdam/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Cmd runs when the item is chosen.
type MenuItem struct {
	Label string
	Cmd   tea.Cmd
}

// Menu is a vertical list of actions with a wrapping cursor.
type Menu struct {
	Items  []MenuItem
	Cursor int
}

func NewMenu(items ...MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the cursor on up/down (k/j) and returns the highlighted
// item's command on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Cursor = (m.Cursor - 1 + len(m.Items)) % len(m.Items)
	case "down", "j":
		m.Cursor = (m.Cursor + 1) % len(m.Items)
	case "enter":
		return m, m.Items[m.Cursor].Cmd
	}
	return m, nil
}

// Current returns the highlighted item's label, or "" for an empty menu.
func (m Menu) Current() string {
	if m.Cursor < 0 || m.Cursor >= len(m.Items) {
		return ""
	}
	return m.Items[m.Cursor].Label
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		if i == m.Cursor {
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
