package calculate

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/gravitdam/gravitdam/internal/calc"
	"github.com/gravitdam/gravitdam/internal/flow"
	"github.com/gravitdam/gravitdam/internal/screen"
	"github.com/gravitdam/gravitdam/internal/ui/components"
	"github.com/gravitdam/gravitdam/internal/ui/layout"
)

// Runner performs one calculation and persists it. *calc.Service
// satisfies it.
type Runner interface {
	Run(ctx context.Context, f calc.Form, onChunk func(text string)) (string, error)
	Record(ctx context.Context, f calc.Form, answer string)
}

// chunkBuffer bounds how many undelivered partial answers may queue up.
// Each chunk carries the full text so far, so dropping one loses nothing.
const chunkBuffer = 16

// CalculateScreen is the dam calculation form and its results.
type CalculateScreen struct {
	runner Runner
	stream bool
	logger *zap.Logger

	state   calc.State
	inputs  []components.TextInput
	names   []string
	focus   int
	scroll  components.Window
	spinner spinner.Model
	cancel  context.CancelFunc
}

var _ screen.Screen = (*CalculateScreen)(nil)

// New creates a CalculateScreen. With stream set, partial answers are shown
// while they arrive.
func New(runner Runner, stream bool, logger *zap.Logger) *CalculateScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CalculateScreen{
		runner:  runner,
		stream:  stream,
		logger:  logger.Named("calculate"),
		state:   calc.NewState(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.resetInputs()
	return s
}

func (s *CalculateScreen) resetInputs() {
	s.inputs = make([]components.TextInput, 0, len(calc.Fields)+1)
	s.names = make([]string, 0, len(calc.Fields)+1)
	for i, f := range calc.Fields {
		numeric := i < 4 // the slopes are ratios like 1/2H:1V
		s.inputs = append(s.inputs, components.NewTextInput(f.Label, f.Unit, f.Placeholder, numeric, 32))
		s.names = append(s.names, f.Name)
	}
	s.inputs = append(s.inputs, components.NewTextInput("Question", "", "Additional specifications or questions...", false, 500))
	s.names = append(s.names, calc.FieldQuestion)
	s.focus = 0
	s.inputs[0].Focus()
}

// State returns the current calculation state.
func (s *CalculateScreen) State() calc.State {
	return s.state
}

func (s *CalculateScreen) Init() tea.Cmd {
	return nil
}

func (s *CalculateScreen) Title() string {
	return "Calculate"
}

// CapturesInput reports whether a text field has focus.
func (s *CalculateScreen) CapturesInput() bool {
	return s.focus < len(s.inputs)
}

// Cancel aborts the running calculation, if any.
func (s *CalculateScreen) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *CalculateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chunkMsg:
		s.state = calc.Reduce(s.state, calc.Chunk{Token: msg.Token, Text: msg.Text})
		return s, waitForChunk(msg.ch)

	case calcDoneMsg:
		live := msg.Token.Matches(s.state.Token)
		if msg.Err != nil {
			s.state = calc.Reduce(s.state, calc.Failed{Token: msg.Token, Err: msg.Err})
		} else {
			s.state = calc.Reduce(s.state, calc.Completed{Token: msg.Token, Text: msg.Answer})
		}
		if !s.state.Loading() {
			s.Cancel()
		}
		if !live || msg.Err != nil {
			return s, nil
		}
		// The answer is already shown; saving it runs on its own.
		return s, recordCmd(s.runner, msg.Form, msg.Answer)

	case spinner.TickMsg:
		if !s.state.Loading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *CalculateScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up":
		return s, s.moveFocus(-1)
	case "down":
		return s, s.moveFocus(1)
	case "ctrl+n":
		return s, s.reset()
	case "ctrl+s":
		return s, s.submit()
	case "enter":
		switch {
		case s.focus < len(s.inputs)-1:
			return s, s.moveFocus(1)
		case s.focus == len(s.inputs)-1, s.focus == s.submitStop():
			return s, s.submit()
		case s.focus == s.resetStop():
			return s, s.reset()
		default:
			s.state = calc.Reduce(s.state, calc.ToggleSection{Index: s.focus - s.sectionStop()})
			return s, nil
		}
	}

	if s.focus >= len(s.inputs) {
		return s, nil
	}

	var cmd tea.Cmd
	in := s.inputs[s.focus]
	in, cmd = in.Update(msg)
	s.inputs[s.focus] = in
	s.state = calc.Reduce(s.state, calc.UpdateField{Name: s.names[s.focus], Value: in.Value()})
	return s, cmd
}

// Focus stops in order: the inputs, the submit button, the reset button,
// then one stop per result section.
func (s *CalculateScreen) submitStop() int  { return len(s.inputs) }
func (s *CalculateScreen) resetStop() int   { return len(s.inputs) + 1 }
func (s *CalculateScreen) sectionStop() int { return len(s.inputs) + 2 }

func (s *CalculateScreen) focusStops() int {
	return s.sectionStop() + len(s.state.Sections())
}

func (s *CalculateScreen) moveFocus(delta int) tea.Cmd {
	next := s.focus + delta
	if next < 0 || next >= s.focusStops() {
		return nil
	}
	if s.focus < len(s.inputs) {
		s.inputs[s.focus].Blur()
	}
	s.focus = next
	if s.focus < len(s.inputs) {
		return s.inputs[s.focus].Focus()
	}
	return nil
}

func (s *CalculateScreen) submit() tea.Cmd {
	tok := flow.NewToken()
	s.state = calc.Reduce(s.state, calc.Submit{Token: tok})
	if !s.state.Loading() || s.state.Token != tok {
		return nil
	}

	s.Cancel()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	form := s.state.Form
	if !s.stream {
		return tea.Batch(s.spinner.Tick, runCmd(ctx, s.runner, form, tok, nil))
	}

	ch := make(chan chunkMsg, chunkBuffer)
	return tea.Batch(s.spinner.Tick, runCmd(ctx, s.runner, form, tok, ch), waitForChunk(ch))
}

// reset clears the form and orphans any running calculation.
func (s *CalculateScreen) reset() tea.Cmd {
	s.Cancel()
	s.state = calc.Reduce(s.state, calc.Reset{})
	s.scroll = components.Window{}
	s.resetInputs()
	return s.inputs[0].Focus()
}

// runCmd runs the calculation off the update loop. When ch is non-nil
// partial answers are offered to it and it is closed on return.
func runCmd(ctx context.Context, r Runner, form calc.Form, tok flow.Token, ch chan chunkMsg) tea.Cmd {
	return func() tea.Msg {
		var onChunk func(string)
		if ch != nil {
			defer close(ch)
			onChunk = func(text string) {
				select {
				case ch <- chunkMsg{Token: tok, Text: text, ch: ch}:
				default:
				}
			}
		}
		answer, err := r.Run(ctx, form, onChunk)
		return calcDoneMsg{Token: tok, Form: form, Answer: answer, Err: err}
	}
}

func recordCmd(r Runner, form calc.Form, answer string) tea.Cmd {
	return func() tea.Msg {
		r.Record(context.Background(), form, answer)
		return nil
	}
}

// waitForChunk blocks until the next partial answer. It yields nil once
// the stream is closed, which ends the chain.
func waitForChunk(ch <-chan chunkMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// KeyHints returns the footer hints for the calculate tab.
func (s *CalculateScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+S", Description: "Calculate"},
		{Key: "Ctrl+N", Description: "New"},
	}
	if !s.CapturesInput() {
		hints = append(hints, layout.KeyHint{Key: "1-3", Description: "Tabs"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Tabs"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}
