package quiz

import (
	"github.com/gravitdam/gravitdam/internal/flow"
	"github.com/gravitdam/gravitdam/internal/llm"
)

// State is the whole quiz view. Reduce never mutates its input.
type State struct {
	Questions   []ExamQuestion
	Current     int
	Answers     map[int]int
	ShowResults bool

	Status flow.Status
	Token  flow.Token
	Error  string
}

// NewState returns the state before any fetch.
func NewState() State {
	return State{Answers: map[int]int{}}
}

// Waiting reports whether the loading spinner should be shown.
func (s State) Waiting() bool {
	return len(s.Questions) == 0 && !s.ShowResults && s.Status != flow.Failed
}

// Answering reports whether a question is on screen.
func (s State) Answering() bool {
	return len(s.Questions) > 0 && !s.ShowResults
}

// CurrentQuestion returns the question on screen.
func (s State) CurrentQuestion() (ExamQuestion, bool) {
	if !s.Answering() || s.Current >= len(s.Questions) {
		return ExamQuestion{}, false
	}
	return s.Questions[s.Current], true
}

// Selected returns the chosen option for the current question.
func (s State) Selected() (int, bool) {
	i, ok := s.Answers[s.Current]
	return i, ok
}

// CanContinue reports whether Continue will advance.
func (s State) CanContinue() bool {
	_, ok := s.Selected()
	return s.Answering() && ok
}

// OnLastQuestion reports whether Continue will show the results.
func (s State) OnLastQuestion() bool {
	return s.Current == len(s.Questions)-1
}

// Score counts answers matching the correct option.
func (s State) Score() int {
	score := 0
	for qi, ai := range s.Answers {
		if qi >= 0 && qi < len(s.Questions) && s.Questions[qi].IsCorrect(ai) {
			score++
		}
	}
	return score
}

// Result is one line of the results review.
type Result struct {
	Question ExamQuestion
	Chosen   int // -1 when unanswered
	Correct  bool
}

// Results pairs every question with the user's answer.
func (s State) Results() []Result {
	out := make([]Result, len(s.Questions))
	for i, q := range s.Questions {
		chosen, ok := s.Answers[i]
		if !ok {
			chosen = -1
		}
		out[i] = Result{Question: q, Chosen: chosen, Correct: ok && q.IsCorrect(chosen)}
	}
	return out
}

// Action is an input to Reduce.
type Action interface{ isAction() }

type (
	// Fetch starts a new batch and clears progress. It also serves as
	// "Try New Questions" and "Try Again".
	Fetch struct{ Token flow.Token }

	// Loaded delivers a fetched batch.
	Loaded struct {
		Token     flow.Token
		Questions []ExamQuestion
	}

	// FetchFailed delivers a fetch error.
	FetchFailed struct {
		Token flow.Token
		Err   error
	}

	// Select records option Index for the current question.
	Select struct{ Index int }

	// Continue advances to the next question or to the results.
	Continue struct{}

	// Review restarts the same batch from the first question.
	Review struct{}
)

func (Fetch) isAction()       {}
func (Loaded) isAction()      {}
func (FetchFailed) isAction() {}
func (Select) isAction()      {}
func (Continue) isAction()    {}
func (Review) isAction()      {}

// Reduce applies a to s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Fetch:
		return State{
			Answers: map[int]int{},
			Status:  flow.InFlight,
			Token:   a.Token,
		}

	case Loaded:
		if !s.live(a.Token) {
			return s
		}
		s.Questions = a.Questions
		s.Status = flow.Succeeded
		s.Token = flow.NoToken
		s.Error = ""

	case FetchFailed:
		if !s.live(a.Token) {
			return s
		}
		s.Status = flow.Failed
		s.Token = flow.NoToken
		s.Error = llm.Describe(a.Err)

	case Select:
		q, ok := s.CurrentQuestion()
		if !ok || a.Index < 0 || a.Index >= len(q.Options) {
			return s
		}
		answers := make(map[int]int, len(s.Answers)+1)
		for k, v := range s.Answers {
			answers[k] = v
		}
		answers[s.Current] = a.Index
		s.Answers = answers

	case Continue:
		if !s.CanContinue() {
			return s
		}
		if s.OnLastQuestion() {
			s.ShowResults = true
		} else {
			s.Current++
		}

	case Review:
		if len(s.Questions) == 0 {
			return s
		}
		s.Current = 0
		s.Answers = map[int]int{}
		s.ShowResults = false
	}
	return s
}

func (s State) live(tok flow.Token) bool {
	return s.Status == flow.InFlight && tok.Matches(s.Token)
}
