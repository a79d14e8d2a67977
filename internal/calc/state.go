package calc

import (
	"github.com/gravitdam/gravitdam/internal/flow"
	"github.com/gravitdam/gravitdam/internal/llm"
)

// RoleAssistant is the only role shown in the results list.
const RoleAssistant = "assistant"

// Message is one entry in the results list.
type Message struct {
	Role    string
	Content string
}

// State is the whole calculation view. It is a value; Reduce returns a new
// one for every action.
type State struct {
	Form     Form
	Messages []Message
	Error    string

	Status flow.Status
	Token  flow.Token

	// Expanded is the index of the open section across all messages, or
	// -1 when every section is collapsed.
	Expanded int

	// Streaming holds the partial answer while a streamed calculation runs.
	Streaming string
}

// NewState returns the initial state.
func NewState() State {
	return State{Expanded: -1}
}

// Loading reports whether a calculation is in flight.
func (s State) Loading() bool {
	return s.Status == flow.InFlight
}

// CanSubmit reports whether the submit control is enabled.
func (s State) CanSubmit() bool {
	return !s.Loading() && s.Form.Complete()
}

// Sections returns the parsed sections of every message in order.
func (s State) Sections() []Section {
	var out []Section
	for _, m := range s.Messages {
		if m.Role != RoleAssistant {
			continue
		}
		out = append(out, ParseSections(m.Content)...)
	}
	return out
}

// Action is an input to Reduce.
type Action interface{ isAction() }

type (
	// UpdateField sets one form field.
	UpdateField struct{ Name, Value string }

	// Reset restores the initial state and orphans any in-flight request.
	Reset struct{}

	// Submit starts a calculation tagged with Token, or records the
	// validation error.
	Submit struct{ Token flow.Token }

	// Chunk carries the accumulated streamed text.
	Chunk struct {
		Token flow.Token
		Text  string
	}

	// Completed carries the final answer.
	Completed struct {
		Token flow.Token
		Text  string
	}

	// Failed carries a calculation error.
	Failed struct {
		Token flow.Token
		Err   error
	}

	// ToggleSection opens section Index, or closes it if already open.
	ToggleSection struct{ Index int }
)

func (UpdateField) isAction()   {}
func (Reset) isAction()         {}
func (Submit) isAction()        {}
func (Chunk) isAction()         {}
func (Completed) isAction()     {}
func (Failed) isAction()        {}
func (ToggleSection) isAction() {}

// Reduce applies a to s. Results whose token is not the live one are
// ignored.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case UpdateField:
		s.Form = s.Form.UpdateField(a.Name, a.Value)

	case Reset:
		return NewState()

	case Submit:
		if s.Loading() {
			return s
		}
		if err := s.Form.Validate(); err != nil {
			s.Error = err.Error()
			return s
		}
		s.Error = ""
		s.Streaming = ""
		s.Status = flow.InFlight
		s.Token = a.Token

	case Chunk:
		if !s.live(a.Token) {
			return s
		}
		s.Streaming = a.Text

	case Completed:
		if !s.live(a.Token) {
			return s
		}
		msgs := make([]Message, len(s.Messages), len(s.Messages)+1)
		copy(msgs, s.Messages)
		s.Messages = append(msgs, Message{Role: RoleAssistant, Content: a.Text})
		s.Streaming = ""
		s.Status = flow.Succeeded
		s.Token = flow.NoToken

	case Failed:
		if !s.live(a.Token) {
			return s
		}
		s.Error = llm.Describe(a.Err)
		s.Streaming = ""
		s.Status = flow.Failed
		s.Token = flow.NoToken

	case ToggleSection:
		if s.Expanded == a.Index {
			s.Expanded = -1
		} else {
			s.Expanded = a.Index
		}
	}
	return s
}

func (s State) live(tok flow.Token) bool {
	return s.Status == flow.InFlight && tok.Matches(s.Token)
}
