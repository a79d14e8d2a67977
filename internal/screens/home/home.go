package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gravitdam/gravitdam/internal/router"
	"github.com/gravitdam/gravitdam/internal/screen"
	"github.com/gravitdam/gravitdam/internal/ui/components"
	"github.com/gravitdam/gravitdam/internal/ui/layout"
	"github.com/gravitdam/gravitdam/internal/ui/theme"
)

const (
	Heading = "Master Gravity Dam Calculations, Anytime, Anywhere!"
	Tagline = "Your comprehensive platform for gravity dam engineering calculations and learning"
)

// HomeScreen is the landing tab. Its menu jumps to the other tabs.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen whose menu switches to the calculate and learn
// tabs at the given indexes.
func New(calculateTab, learnTab int) *HomeScreen {
	return &HomeScreen{menu: components.NewMenu(
		components.MenuItem{Label: "Start Calculating", Cmd: router.SwitchTo(calculateTab)},
		components.MenuItem{Label: "Start Learning", Cmd: router.SwitchTo(learnTab)},
	)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		theme.Title.Width(cw).Render(Heading),
		theme.Subtitle.Width(cw).Render(Tagline),
	}
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, renderDam()))
	}
	sections = append(sections, components.Card(h.menu.View(), cw))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// KeyHints returns the footer hints for the home tab.
func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Tab", Description: "Switch tab"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
