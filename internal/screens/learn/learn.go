package learn

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/gravitdam/gravitdam/internal/flow"
	"github.com/gravitdam/gravitdam/internal/quiz"
	"github.com/gravitdam/gravitdam/internal/screen"
	"github.com/gravitdam/gravitdam/internal/ui/components"
	"github.com/gravitdam/gravitdam/internal/ui/layout"
)

// QuestionSource produces a batch of exam questions. *quiz.Generator
// satisfies it.
type QuestionSource interface {
	Generate(ctx context.Context) ([]quiz.ExamQuestion, error)
}

// questionsMsg is sent when a fetch finishes.
type questionsMsg struct {
	Token     flow.Token
	Questions []quiz.ExamQuestion
	Err       error
}

// pageLines is how far pgup/pgdown move the results list.
const pageLines = 10

// Results screen buttons.
const (
	buttonTryNew = iota
	buttonReview
)

// LearnScreen runs the AI quiz.
type LearnScreen struct {
	source         QuestionSource
	refetchOnEnter bool
	logger         *zap.Logger

	state   quiz.State
	choice  components.MultiChoice
	button  int
	results components.Window
	spinner spinner.Model
	cancel  context.CancelFunc
}

var _ screen.Screen = (*LearnScreen)(nil)

// New creates a LearnScreen. With refetchOnEnter set every visit starts a
// fresh batch; otherwise a held batch is kept.
func New(source QuestionSource, refetchOnEnter bool, logger *zap.Logger) *LearnScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LearnScreen{
		source:         source,
		refetchOnEnter: refetchOnEnter,
		logger:         logger.Named("learn"),
		state:          quiz.NewState(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// State returns the current quiz state.
func (l *LearnScreen) State() quiz.State {
	return l.state
}

func (l *LearnScreen) Init() tea.Cmd {
	return nil
}

func (l *LearnScreen) Title() string {
	return "Learn"
}

// OnEnter starts a fetch unless a batch is held and re-fetching on entry
// is disabled.
func (l *LearnScreen) OnEnter() tea.Cmd {
	if !l.refetchOnEnter && len(l.state.Questions) > 0 {
		return nil
	}
	return l.fetch()
}

// Cancel aborts the running fetch, if any.
func (l *LearnScreen) Cancel() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// fetch supersedes any running fetch and starts a new one.
func (l *LearnScreen) fetch() tea.Cmd {
	l.Cancel()

	tok := flow.NewToken()
	l.state = quiz.Reduce(l.state, quiz.Fetch{Token: tok})
	l.button = buttonTryNew
	l.results = components.Window{}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	source := l.source
	return tea.Batch(l.spinner.Tick, func() tea.Msg {
		qs, err := source.Generate(ctx)
		return questionsMsg{Token: tok, Questions: qs, Err: err}
	})
}

func (l *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsMsg:
		return l.handleQuestions(msg)

	case spinner.TickMsg:
		if l.state.Status != flow.InFlight {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case components.ChoiceMsg:
		l.state = quiz.Reduce(l.state, quiz.Select{Index: msg.Index})
		l.syncChoice()
		return l, nil

	case tea.KeyMsg:
		switch {
		case l.state.ShowResults:
			return l.handleResultsKey(msg)
		case l.state.Answering():
			return l.handleAnswerKey(msg)
		case l.state.Status == flow.Failed:
			if k := msg.String(); k == "enter" || k == "r" {
				return l, l.fetch()
			}
		}
	}
	return l, nil
}

func (l *LearnScreen) handleQuestions(msg questionsMsg) (screen.Screen, tea.Cmd) {
	if !msg.Token.Matches(l.state.Token) {
		l.logger.Debug("discarding stale question batch")
		return l, nil
	}
	if msg.Err != nil {
		l.logger.Warn("question fetch failed", zap.Error(msg.Err))
		l.state = quiz.Reduce(l.state, quiz.FetchFailed{Token: msg.Token, Err: msg.Err})
	} else {
		l.state = quiz.Reduce(l.state, quiz.Loaded{Token: msg.Token, Questions: msg.Questions})
	}
	l.Cancel()
	l.syncChoice()
	return l, nil
}

func (l *LearnScreen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		l.state = quiz.Reduce(l.state, quiz.Continue{})
		l.results = components.Window{}
		l.syncChoice()
		return l, nil
	}
	var cmd tea.Cmd
	l.choice, cmd = l.choice.Update(msg)
	return l, cmd
}

func (l *LearnScreen) handleResultsKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l":
		l.button = 1 - l.button
	case "up", "k":
		l.results.Scroll(-1)
	case "down", "j":
		l.results.Scroll(1)
	case "pgup":
		l.results.Scroll(-pageLines)
	case "pgdown", "space", " ":
		l.results.Scroll(pageLines)
	case "home", "g":
		l.results = components.Window{}
	case "end", "G":
		l.results.Bottom()
	case "n":
		return l, l.fetch()
	case "r":
		l.review()
	case "enter":
		if l.button == buttonTryNew {
			return l, l.fetch()
		}
		l.review()
	}
	return l, nil
}

func (l *LearnScreen) review() {
	l.state = quiz.Reduce(l.state, quiz.Review{})
	l.button = buttonTryNew
	l.syncChoice()
}

// syncChoice rebuilds the option selector for the question on screen,
// keeping the cursor when the question did not change.
func (l *LearnScreen) syncChoice() {
	q, ok := l.state.CurrentQuestion()
	if !ok {
		l.choice = components.MultiChoice{}
		return
	}
	chosen, answered := l.state.Selected()
	if !answered {
		chosen = -1
	}
	if l.choice.Question == q.Question && len(l.choice.Options) == len(q.Options) {
		l.choice.Chosen = chosen
		return
	}
	l.choice = components.NewMultiChoice(q.Question, q.Options, chosen)
}

// KeyHints returns the footer hints for the current quiz phase.
func (l *LearnScreen) KeyHints() []layout.KeyHint {
	switch {
	case l.state.ShowResults:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
			{Key: "N", Description: "New questions"},
			{Key: "R", Description: "Review"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case l.state.Answering():
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "A-D/Space", Description: "Answer"},
			{Key: "Enter", Description: "Continue"},
			{Key: "Tab", Description: "Switch tab"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case l.state.Status == flow.Failed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Try Again"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch tab"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
