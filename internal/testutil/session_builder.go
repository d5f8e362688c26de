package testutil

import (
	"context"
	"testing"

	"github.com/hupe1980/quizbot/core"
)

// SessionBuilder helps drive a core.SessionStore into a desired session
// shape for tests using only the public contract. Example:
//
//	sess := NewSessionBuilder(t, store, "tg_1").Pending("3", "4").Build(ctx)
type SessionBuilder struct {
	t       *testing.T
	store   core.SessionStore
	id      string
	state   core.State
	pending [2]string
	score   int
	solved  int
}

// NewSessionBuilder creates a builder for the session with the given id.
func NewSessionBuilder(t *testing.T, store core.SessionStore, id string) *SessionBuilder {
	t.Helper()
	return &SessionBuilder{t: t, store: store, id: id, state: core.StateStart}
}

// State sets the conversational state (chainable).
func (b *SessionBuilder) State(s core.State) *SessionBuilder {
	b.state = s
	return b
}

// Pending records a pending question ref and normalized answer and implies
// the answer state (chainable).
func (b *SessionBuilder) Pending(ref, answer string) *SessionBuilder {
	b.pending = [2]string{ref, answer}
	b.state = core.StateAnswer
	return b
}

// Score sets the counters via repeated increments (chainable). solved must
// be >= score to keep the session invariant intact.
func (b *SessionBuilder) Score(score, solved int) *SessionBuilder {
	b.score = score
	b.solved = solved
	return b
}

// Build applies the accumulated shape through the store and returns the
// resulting session.
func (b *SessionBuilder) Build(ctx context.Context) *core.Session {
	b.t.Helper()
	if _, err := b.store.GetOrCreate(ctx, b.id); err != nil {
		b.t.Fatalf("bootstrap session: %v", err)
	}
	if b.pending[1] != "" {
		if err := b.store.SetCurrentQuestion(ctx, b.id, b.pending[0], b.pending[1]); err != nil {
			b.t.Fatalf("set current question: %v", err)
		}
	}
	if err := b.store.SetState(ctx, b.id, b.state); err != nil {
		b.t.Fatalf("set state: %v", err)
	}
	for i := 0; i < b.score; i++ {
		if err := b.store.IncrementScore(ctx, b.id); err != nil {
			b.t.Fatalf("increment score: %v", err)
		}
	}
	for i := 0; i < b.solved; i++ {
		if err := b.store.IncrementAnswered(ctx, b.id); err != nil {
			b.t.Fatalf("increment answered: %v", err)
		}
	}
	sess, err := b.store.GetOrCreate(ctx, b.id)
	if err != nil {
		b.t.Fatalf("reload session: %v", err)
	}
	return sess
}
