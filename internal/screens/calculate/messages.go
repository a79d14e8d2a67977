package calculate

import (
	"github.com/gravitdam/gravitdam/internal/calc"
	"github.com/gravitdam/gravitdam/internal/flow"
)

// chunkMsg carries the accumulated streamed answer. ch is the channel it
// arrived on so the waiter can be re-armed on the same stream.
type chunkMsg struct {
	Token flow.Token
	Text  string
	ch    <-chan chunkMsg
}

// calcDoneMsg is sent when a calculation finishes, successfully or not.
type calcDoneMsg struct {
	Token  flow.Token
	Form   calc.Form // as submitted, for persisting the answer
	Answer string
	Err    error
}
