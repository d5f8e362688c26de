package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/quizbot/core"
)

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*RedisStore)(nil)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client)
}

func TestRedisStore_BootstrapIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	first, err := store.GetOrCreate(ctx, "tg_1")
	require.NoError(t, err)
	assert.Equal(t, core.StateStart, first.State)
	assert.Zero(t, first.Score)
	assert.Zero(t, first.AnsweredCount)

	second, err := store.GetOrCreate(ctx, "tg_1")
	require.NoError(t, err)
	assert.Equal(t, first.State, second.State)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.AnsweredCount, second.AnsweredCount)

	require.NoError(t, store.IncrementScore(ctx, "tg_1"))
	require.NoError(t, store.IncrementAnswered(ctx, "tg_1"))

	third, err := store.GetOrCreate(ctx, "tg_1")
	require.NoError(t, err)
	assert.Equal(t, 1, third.Score, "re-bootstrap must never reset the score")
	assert.Equal(t, 1, third.AnsweredCount)
}

func TestRedisStore_StateAndQuestionFields(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	_, err := store.GetOrCreate(ctx, "vk_2")
	require.NoError(t, err)

	require.NoError(t, store.SetCurrentQuestion(ctx, "vk_2", "12", "Байкал"))
	require.NoError(t, store.SetState(ctx, "vk_2", core.StateAnswer))

	sess, err := store.GetOrCreate(ctx, "vk_2")
	require.NoError(t, err)
	assert.Equal(t, core.StateAnswer, sess.State)
	assert.Equal(t, "12", sess.CurrentQuestion)
	assert.Equal(t, "Байкал", sess.CurrentAnswer)
	require.NoError(t, sess.Validate())

	require.NoError(t, store.ClearCurrentQuestion(ctx, "vk_2"))
	require.NoError(t, store.SetState(ctx, "vk_2", core.StateQuestion))

	sess, err = store.GetOrCreate(ctx, "vk_2")
	require.NoError(t, err)
	assert.Empty(t, sess.CurrentQuestion)
	assert.Empty(t, sess.CurrentAnswer)
	require.NoError(t, sess.Validate())
}

func TestRedisStore_CountersMonotone(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	_, err := store.GetOrCreate(ctx, "tg_3")
	require.NoError(t, err)

	prev := 0
	for i := 0; i < 5; i++ {
		require.NoError(t, store.IncrementAnswered(ctx, "tg_3"))
		if i%2 == 0 {
			require.NoError(t, store.IncrementScore(ctx, "tg_3"))
		}

		sess, err := store.GetOrCreate(ctx, "tg_3")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, sess.AnsweredCount, prev, "answered count must be monotone")
		assert.LessOrEqual(t, sess.Score, sess.AnsweredCount)
		prev = sess.AnsweredCount
	}
}

func TestRedisStore_UnknownStateDefaultsToStart(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client)

	// A record written by an older process with a state this build doesn't know.
	mr.HSet("tg_4", "state", "LEGACY", "score", "3", "answered_count", "4")

	sess, err := store.GetOrCreate(ctx, "tg_4")
	require.NoError(t, err)
	assert.Equal(t, core.StateStart, sess.State)
	assert.Equal(t, 3, sess.Score)
	assert.Equal(t, 4, sess.AnsweredCount)
}

func TestRedisStore_CorruptCounterSurfaces(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client)

	// A mangled counter must fail the read, not silently score zero.
	mr.HSet("tg_6", "state", "QUESTION", "score", "many", "answered_count", "4")

	_, err := store.GetOrCreate(ctx, "tg_6")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrSessionStoreUnavailable)
	assert.Contains(t, err.Error(), "score")
}

func TestRedisStore_PersistsTimestamps(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	first, err := store.GetOrCreate(ctx, "tg_7")
	require.NoError(t, err)
	require.False(t, first.Created.IsZero(), "bootstrap must stamp creation time")
	require.False(t, first.Updated.IsZero())

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, store.SetState(ctx, "tg_7", core.StateQuestion))

	second, err := store.GetOrCreate(ctx, "tg_7")
	require.NoError(t, err)
	assert.True(t, second.Created.Equal(first.Created), "creation time must survive mutations")
	assert.True(t, second.Updated.After(first.Updated), "mutations must advance the update time")
}

func TestRedisStore_LegacyRecordGainsTimestamps(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client)

	// A record written before the timestamp fields existed.
	mr.HSet("vk_8", "state", "QUESTION", "score", "2", "answered_count", "3")

	sess, err := store.GetOrCreate(ctx, "vk_8")
	require.NoError(t, err)
	assert.Equal(t, 2, sess.Score, "backfilling timestamps must not touch the counters")
	assert.Equal(t, core.StateQuestion, sess.State)
	assert.False(t, sess.Created.IsZero(), "bootstrap backfills missing timestamps")
}

func TestRedisStore_UnavailableWrapsSentinel(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client)

	mr.Close()

	_, err := store.GetOrCreate(ctx, "tg_5")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrSessionStoreUnavailable)
}
