package core

import (
	"context"
	"fmt"
	"time"
)

// State is the conversational state of a session. It is an explicit tagged
// enumeration; implicit "field present vs absent" encodings are not used.
type State string

const (
	// StateStart means the user has never been greeted (or cancelled the
	// interactive flow) and no question is pending.
	StateStart State = "START"
	// StateQuestion means the menu has been shown and the user may request
	// a new question. No answer is pending.
	StateQuestion State = "QUESTION"
	// StateAnswer means a question has been posed and its normalized answer
	// is stored; the next free-text message is treated as a solution attempt.
	StateAnswer State = "ANSWER"
)

// ParseState converts a stored string into a State, defaulting to StateStart
// for unknown or empty values so a session record written by an older
// process never wedges a user.
func ParseState(s string) State {
	switch State(s) {
	case StateQuestion:
		return StateQuestion
	case StateAnswer:
		return StateAnswer
	default:
		return StateStart
	}
}

// SessionID composes the store key for a (transport, external user id) pair,
// e.g. "tg_123456" or "vk_987654".
func SessionID(transport string, userID int64) string {
	return fmt.Sprintf("%s_%d", transport, userID)
}

// Session is the per-user persistent record tracking quiz progress and
// conversational state. One exists per (transport, external user id) pair.
//
// Contract:
//   - Score never exceeds AnsweredCount
//   - CurrentAnswer is non-empty if and only if State == StateAnswer
//   - A session is created exactly once per user, lazily, on first inbound
//     event, zeroed; re-bootstrapping an existing session is a no-op
//   - The core never deletes sessions; retention is a store concern.
type Session struct {
	ID              string    `json:"id"`
	State           State     `json:"state"`
	CurrentQuestion string    `json:"current_question,omitempty"`
	CurrentAnswer   string    `json:"current_answer,omitempty"`
	Score           int       `json:"score"`
	AnsweredCount   int       `json:"answered_count"`
	Created         time.Time `json:"created"`
	Updated         time.Time `json:"updated"`
}

// NewSession creates a zeroed session record in the initial state.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, State: StateStart, Created: now, Updated: now}
}

// Clone returns a copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	clone := *s
	return &clone
}

// Validate reports the first violated session invariant, or nil.
func (s *Session) Validate() error {
	if s.Score < 0 || s.AnsweredCount < 0 {
		return fmt.Errorf("session %s: negative counters (score=%d answered=%d)", s.ID, s.Score, s.AnsweredCount)
	}
	if s.Score > s.AnsweredCount {
		return fmt.Errorf("session %s: score %d exceeds answered count %d", s.ID, s.Score, s.AnsweredCount)
	}
	if (s.State == StateAnswer) != (s.CurrentAnswer != "") {
		return fmt.Errorf("session %s: pending answer presence does not match state %s", s.ID, s.State)
	}
	return nil
}

// SessionStore persists sessions. All mutations are single-key partial
// updates; sessions never interact, so no multi-key transactions exist.
//
// Implementations SHOULD:
//   - Make GetOrCreate idempotent, including under concurrent bootstrap
//   - Implement the increments atomically per key
//   - Return errors wrapping the underlying cause so callers can surface a
//     generic "temporarily unavailable" reply without leaking detail.
type SessionStore interface {
	// GetOrCreate returns the session for id, lazily creating a zeroed
	// record on first contact. Never resets an existing session.
	GetOrCreate(ctx context.Context, id string) (*Session, error)

	// SetState persists the conversational state.
	SetState(ctx context.Context, id string, state State) error

	// SetCurrentQuestion records the posed question reference together with
	// its normalized answer. Both are written in one update so no reader
	// observes a question without its pending answer.
	SetCurrentQuestion(ctx context.Context, id, questionRef, normalizedAnswer string) error

	// ClearCurrentQuestion removes the pending question and answer.
	ClearCurrentQuestion(ctx context.Context, id string) error

	// IncrementScore adds one to the correct-answer counter.
	IncrementScore(ctx context.Context, id string) error

	// IncrementAnswered adds one to the resolved-question counter
	// (correct answers and give-ups both count).
	IncrementAnswered(ctx context.Context, id string) error
}
