package question

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/hupe1980/quizbot/core"
)

// InMemoryRepository is a volatile core.QuestionRepository holding the corpus
// in a slice. It is safe for concurrent reads and best suited for tests or
// single-process runs. References are 1-based positions, matching the Redis
// backend's numbering.
type InMemoryRepository struct {
	mu        sync.RWMutex
	questions []core.Question
}

// NewInMemoryRepository constructs a repository pre-populated with the given
// questions. Refs are assigned from position when empty.
func NewInMemoryRepository(questions ...core.Question) *InMemoryRepository {
	r := &InMemoryRepository{}
	r.Load(questions)
	return r
}

// Load replaces the corpus. Questions without a Ref get their 1-based
// position as the handle.
func (r *InMemoryRepository) Load(questions []core.Question) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = make([]core.Question, len(questions))
	copy(r.questions, questions)
	for i := range r.questions {
		if r.questions[i].Ref == "" {
			r.questions[i].Ref = strconv.Itoa(i + 1)
		}
	}
}

// PickRandom selects one question uniformly at random.
func (r *InMemoryRepository) PickRandom(_ context.Context) (*core.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.questions) == 0 {
		return nil, core.ErrEmptyCorpus
	}
	q := r.questions[rand.IntN(len(r.questions))]
	return &q, nil
}

// Get resolves a stored question reference.
func (r *InMemoryRepository) Get(_ context.Context, ref string) (*core.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.questions {
		if q.Ref == ref {
			q := q
			return &q, nil
		}
	}
	return nil, core.ErrQuestionNotFound
}

// Count reports the number of loaded questions.
func (r *InMemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.questions), nil
}
