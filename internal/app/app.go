package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/gravitdam/gravitdam/internal/router"
	"github.com/gravitdam/gravitdam/internal/screen"
	"github.com/gravitdam/gravitdam/internal/screens/calculate"
	"github.com/gravitdam/gravitdam/internal/screens/home"
	"github.com/gravitdam/gravitdam/internal/screens/learn"
	"github.com/gravitdam/gravitdam/internal/ui/layout"
)

// Tab indexes in display order.
const (
	TabHome = iota
	TabCalculate
	TabLearn
)

// Options holds the dependencies for the TUI.
type Options struct {
	Calculator     calculate.Runner
	Questions      learn.QuestionSource
	Stream         bool
	RefetchOnEnter bool
	Logger         *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// NewAppModel creates the root model with the calculate tab active.
func NewAppModel(opts Options) AppModel {
	tabs := []screen.Screen{
		TabHome:      home.New(TabCalculate, TabLearn),
		TabCalculate: calculate.New(opts.Calculator, opts.Stream, opts.Logger),
		TabLearn:     learn.New(opts.Questions, opts.RefetchOnEnter, opts.Logger),
	}
	return AppModel{
		router: router.New(tabs, TabCalculate),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.router.Cancel()
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// defaultHints is shown for screens without their own hints.
var defaultHints = []layout.KeyHint{
	{Key: "Tab", Description: "Switch tab"},
	{Key: "Ctrl+C", Description: "Quit"},
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.router.Titles(), m.router.ActiveIndex(), m.width)

	hints := defaultHints
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
