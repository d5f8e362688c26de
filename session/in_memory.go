package session

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/quizbot/core"
)

// InMemoryStore is a volatile SessionStore implementation storing sessions
// in a process local map. It is safe for concurrent access and best suited
// for tests or single-process demo runs. Each returned session is cloned to
// prevent external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// GetOrCreate returns an existing session (clone) or creates a zeroed one
// lazily. Re-bootstrapping an existing session is a no-op.
func (s *InMemoryStore) GetOrCreate(_ context.Context, id string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess.Clone(), nil
	}
	sess := core.NewSession(id)
	s.sessions[id] = sess
	return sess.Clone(), nil
}

// SetState persists the conversational state.
func (s *InMemoryStore) SetState(ctx context.Context, id string, state core.State) error {
	return s.mutate(ctx, id, func(sess *core.Session) {
		sess.State = state
	})
}

// SetCurrentQuestion records the posed question and its normalized answer
// in one update.
func (s *InMemoryStore) SetCurrentQuestion(ctx context.Context, id, questionRef, normalizedAnswer string) error {
	return s.mutate(ctx, id, func(sess *core.Session) {
		sess.CurrentQuestion = questionRef
		sess.CurrentAnswer = normalizedAnswer
	})
}

// ClearCurrentQuestion removes the pending question and answer.
func (s *InMemoryStore) ClearCurrentQuestion(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(sess *core.Session) {
		sess.CurrentQuestion = ""
		sess.CurrentAnswer = ""
	})
}

// IncrementScore adds one to the correct-answer counter.
func (s *InMemoryStore) IncrementScore(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(sess *core.Session) {
		sess.Score++
	})
}

// IncrementAnswered adds one to the resolved-question counter.
func (s *InMemoryStore) IncrementAnswered(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(sess *core.Session) {
		sess.AnsweredCount++
	})
}

// mutate applies fn to the stored session under the write lock, creating the
// session lazily so single-field updates never fail on a fresh id.
func (s *InMemoryStore) mutate(_ context.Context, id string, fn func(*core.Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = core.NewSession(id)
		s.sessions[id] = sess
	}
	fn(sess)
	sess.Updated = time.Now()
	return nil
}
