// Package flow holds the status and token types shared by the async
// calculation and quiz flows.
package flow

import "github.com/google/uuid"

// Status is the lifecycle of one async operation.
type Status int

const (
	Idle Status = iota
	InFlight
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Token identifies one request. Results carrying a token other than the
// current one are stale and must be dropped.
type Token string

// NoToken is the zero token. No request ever carries it.
const NoToken Token = ""

// NewToken returns a fresh random token.
func NewToken() Token {
	return Token(uuid.NewString())
}

// Matches reports whether t is the live token cur.
func (t Token) Matches(cur Token) bool {
	return t != NoToken && t == cur
}
