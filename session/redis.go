package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/quizbot/core"
)

// Hash field names of a session record. The key is the composite session id
// ("{transport}_{userID}") so every front-end reads the same record.
const (
	fieldState           = "state"
	fieldCurrentQuestion = "current_question"
	fieldCurrentAnswer   = "current_answer"
	fieldScore           = "score"
	fieldAnsweredCount   = "answered_count"
	fieldCreated         = "created"
	fieldUpdated         = "updated"
)

// RedisStore is a core.SessionStore backed by one Redis hash per session.
// Counters use HINCRBY so concurrent turns from different users never race;
// bootstrap uses per-field HSETNX so it is idempotent even when two
// front-ends greet the same user simultaneously.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client. The caller owns the client's
// lifecycle (ping at startup, close at shutdown).
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// GetOrCreate returns the session for id, lazily writing a zeroed record on
// first contact. An existing session is never reset.
func (s *RedisStore) GetOrCreate(ctx context.Context, id string) (*core.Session, error) {
	now := timestamp()
	pipe := s.client.TxPipeline()
	pipe.HSetNX(ctx, id, fieldState, string(core.StateStart))
	pipe.HSetNX(ctx, id, fieldScore, 0)
	pipe.HSetNX(ctx, id, fieldAnsweredCount, 0)
	pipe.HSetNX(ctx, id, fieldCreated, now)
	pipe.HSetNX(ctx, id, fieldUpdated, now)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, storeErr("bootstrap session %s", id, err)
	}
	return s.get(ctx, id)
}

func (s *RedisStore) get(ctx context.Context, id string) (*core.Session, error) {
	fields, err := s.client.HGetAll(ctx, id).Result()
	if err != nil {
		return nil, storeErr("read session %s", id, err)
	}
	sess := &core.Session{
		ID:              id,
		State:           core.ParseState(fields[fieldState]),
		CurrentQuestion: fields[fieldCurrentQuestion],
		CurrentAnswer:   fields[fieldCurrentAnswer],
	}
	if sess.Score, err = parseCounter(fieldScore, fields[fieldScore]); err != nil {
		return nil, storeErr("read session %s", id, err)
	}
	if sess.AnsweredCount, err = parseCounter(fieldAnsweredCount, fields[fieldAnsweredCount]); err != nil {
		return nil, storeErr("read session %s", id, err)
	}
	// Missing or mangled timestamps read as zero times rather than
	// failing the turn.
	sess.Created, _ = time.Parse(time.RFC3339Nano, fields[fieldCreated])
	sess.Updated, _ = time.Parse(time.RFC3339Nano, fields[fieldUpdated])
	return sess, nil
}

// parseCounter reads a counter hash field. A missing field is zero; a
// present but non-numeric value means the record is corrupt and must not be
// silently read as zero.
func parseCounter(field, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("corrupt %s field %q: %w", field, value, err)
	}
	return n, nil
}

// SetState persists the conversational state.
func (s *RedisStore) SetState(ctx context.Context, id string, state core.State) error {
	err := s.client.HSet(ctx, id,
		fieldState, string(state),
		fieldUpdated, timestamp(),
	).Err()
	if err != nil {
		return storeErr("set state for %s", id, err)
	}
	return nil
}

// SetCurrentQuestion writes the question reference and its normalized answer
// in a single HSET so no reader observes one without the other.
func (s *RedisStore) SetCurrentQuestion(ctx context.Context, id, questionRef, normalizedAnswer string) error {
	err := s.client.HSet(ctx, id,
		fieldCurrentQuestion, questionRef,
		fieldCurrentAnswer, normalizedAnswer,
		fieldUpdated, timestamp(),
	).Err()
	if err != nil {
		return storeErr("set current question for %s", id, err)
	}
	return nil
}

// ClearCurrentQuestion removes the pending question and answer.
func (s *RedisStore) ClearCurrentQuestion(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, id, fieldCurrentQuestion, fieldCurrentAnswer)
	pipe.HSet(ctx, id, fieldUpdated, timestamp())
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("clear current question for %s", id, err)
	}
	return nil
}

// IncrementScore atomically adds one to the correct-answer counter.
func (s *RedisStore) IncrementScore(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, id, fieldScore, 1)
	pipe.HSet(ctx, id, fieldUpdated, timestamp())
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("increment score for %s", id, err)
	}
	return nil
}

// IncrementAnswered atomically adds one to the resolved-question counter.
func (s *RedisStore) IncrementAnswered(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, id, fieldAnsweredCount, 1)
	pipe.HSet(ctx, id, fieldUpdated, timestamp())
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("increment answered count for %s", id, err)
	}
	return nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func storeErr(format, id string, err error) error {
	return fmt.Errorf(format+": %w: %w", id, core.ErrSessionStoreUnavailable, err)
}
