package session

import (
	"context"
	"sync"
	"testing"

	"github.com/hupe1980/quizbot/core"
	"github.com/hupe1980/quizbot/internal/testutil"
)

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*InMemoryStore)(nil)

func TestInMemoryStore_BootstrapIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	first, err := store.GetOrCreate(ctx, "tg_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.State != core.StateStart || first.Score != 0 || first.AnsweredCount != 0 {
		t.Fatalf("fresh session not zeroed: %+v", first)
	}

	if err := store.IncrementScore(ctx, "tg_1"); err != nil {
		t.Fatalf("increment score: %v", err)
	}
	if err := store.IncrementAnswered(ctx, "tg_1"); err != nil {
		t.Fatalf("increment answered: %v", err)
	}

	again, err := store.GetOrCreate(ctx, "tg_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Score != 1 || again.AnsweredCount != 1 {
		t.Fatalf("re-bootstrap reset the session: %+v", again)
	}
}

func TestInMemoryStore_CurrentQuestionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	if err := store.SetCurrentQuestion(ctx, "vk_2", "7", "4"); err != nil {
		t.Fatalf("set current question: %v", err)
	}
	if err := store.SetState(ctx, "vk_2", core.StateAnswer); err != nil {
		t.Fatalf("set state: %v", err)
	}

	sess, _ := store.GetOrCreate(ctx, "vk_2")
	if sess.CurrentQuestion != "7" || sess.CurrentAnswer != "4" {
		t.Fatalf("pending question not round-tripped: %+v", sess)
	}
	if err := sess.Validate(); err != nil {
		t.Fatalf("session invariant broken: %v", err)
	}

	if err := store.ClearCurrentQuestion(ctx, "vk_2"); err != nil {
		t.Fatalf("clear current question: %v", err)
	}
	sess, _ = store.GetOrCreate(ctx, "vk_2")
	if sess.CurrentQuestion != "" || sess.CurrentAnswer != "" {
		t.Fatalf("pending question not cleared: %+v", sess)
	}
}

func TestInMemoryStore_CloneIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	sess, _ := store.GetOrCreate(ctx, "tg_3")
	sess.Score = 99

	reread, _ := store.GetOrCreate(ctx, "tg_3")
	if reread.Score != 0 {
		t.Error("mutating a returned session must not affect the store")
	}
}

func TestInMemoryStore_BuilderShapes(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	sess := testutil.NewSessionBuilder(t, store, "tg_9").
		Pending("5", "Байкал").
		Score(2, 3).
		Build(ctx)

	if sess.State != core.StateAnswer || sess.CurrentAnswer != "Байкал" {
		t.Fatalf("builder did not shape the session: %+v", sess)
	}
	if sess.Score != 2 || sess.AnsweredCount != 3 {
		t.Fatalf("unexpected counters: %+v", sess)
	}
	if err := sess.Validate(); err != nil {
		t.Fatalf("built session invalid: %v", err)
	}
}

func TestInMemoryStore_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.IncrementAnswered(ctx, "tg_4"); err != nil {
				t.Errorf("increment answered: %v", err)
			}
		}()
	}
	wg.Wait()

	sess, _ := store.GetOrCreate(ctx, "tg_4")
	if sess.AnsweredCount != 50 {
		t.Fatalf("expected 50 increments, got %d", sess.AnsweredCount)
	}
}
