package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/gravitdam/gravitdam/internal/screen"
)

// SwitchTabMsg requests the router to activate the tab at Index.
type SwitchTabMsg struct {
	Index int
}

// SwitchTo returns a command that switches to tab i.
func SwitchTo(i int) tea.Cmd {
	return func() tea.Msg { return SwitchTabMsg{Index: i} }
}

// Router manages a fixed set of mutually exclusive tabs. Exactly one tab
// is active; keyboard input goes to it, every other message is delivered
// to all tabs so background results reach their owner.
type Router struct {
	tabs   []screen.Screen
	active int
}

// New creates a Router over tabs with initial as the active one.
func New(tabs []screen.Screen, initial int) *Router {
	if initial < 0 || initial >= len(tabs) {
		initial = 0
	}
	return &Router{
		tabs:   tabs,
		active: initial,
	}
}

// Init runs every tab's Init and the entry hook of the initial tab.
func (r *Router) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.tabs)+1)
	for _, t := range r.tabs {
		cmds = append(cmds, t.Init())
	}
	cmds = append(cmds, r.enter())
	return tea.Batch(cmds...)
}

// Switch activates tab i. Switching to the active tab or out of range is a
// no-op.
func (r *Router) Switch(i int) tea.Cmd {
	if i < 0 || i >= len(r.tabs) || i == r.active {
		return nil
	}
	r.active = i
	return r.enter()
}

// Next activates the following tab, wrapping around.
func (r *Router) Next() tea.Cmd {
	if len(r.tabs) == 0 {
		return nil
	}
	return r.Switch((r.active + 1) % len(r.tabs))
}

// Prev activates the preceding tab, wrapping around.
func (r *Router) Prev() tea.Cmd {
	if len(r.tabs) == 0 {
		return nil
	}
	return r.Switch((r.active - 1 + len(r.tabs)) % len(r.tabs))
}

func (r *Router) enter() tea.Cmd {
	if e, ok := r.Active().(screen.Enterable); ok {
		return e.OnEnter()
	}
	return nil
}

// Active returns the active tab's screen.
func (r *Router) Active() screen.Screen {
	if len(r.tabs) == 0 {
		return nil
	}
	return r.tabs[r.active]
}

// ActiveIndex returns the index of the active tab.
func (r *Router) ActiveIndex() int {
	return r.active
}

// Titles returns the tab titles in order.
func (r *Router) Titles() []string {
	titles := make([]string, len(r.tabs))
	for i, t := range r.tabs {
		titles[i] = t.Title()
	}
	return titles
}

// Cancel aborts background work in every tab that runs any.
func (r *Router) Cancel() {
	for _, t := range r.tabs {
		if c, ok := t.(screen.Canceler); ok {
			c.Cancel()
		}
	}
}

// Update handles navigation and forwards everything else.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SwitchTabMsg:
		return r.Switch(msg.Index)

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "tab":
			return r.Next()
		case "shift+tab":
			return r.Prev()
		default:
			if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(r.tabs) && !r.capturing() {
				return r.Switch(int(key[0] - '1'))
			}
		}
		return r.updateTab(r.active, msg)
	}

	cmds := make([]tea.Cmd, 0, len(r.tabs))
	for i := range r.tabs {
		cmds = append(cmds, r.updateTab(i, msg))
	}
	return tea.Batch(cmds...)
}

func (r *Router) capturing() bool {
	c, ok := r.Active().(screen.InputCapturer)
	return ok && c.CapturesInput()
}

func (r *Router) updateTab(i int, msg tea.Msg) tea.Cmd {
	updated, cmd := r.tabs[i].Update(msg)
	r.tabs[i] = updated
	return cmd
}

// View renders the active tab.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
