package question

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/quizbot/core"
)

// Redis key layout of the corpus: one hash per question under
// "quiz:question:{n}" (fields "question" and "answer") plus an integer
// count key used for uniform random selection. References are the decimal n.
const (
	questionKeyPrefix = "quiz:question:"
	countKey          = "quiz:question_count"

	fieldQuestion = "question"
	fieldAnswer   = "answer"
)

// RedisRepository is a core.QuestionRepository reading the corpus from Redis.
// It performs no caching; the corpus is small and Redis is treated as a
// reliable synchronous key-value service.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository wraps an existing Redis client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// Load writes the corpus, numbering questions from 1 and finally setting the
// count key. Serving processes only ever read; Load is for cmd/quiz-load.
func (r *RedisRepository) Load(ctx context.Context, questions []core.Question) error {
	pipe := r.client.Pipeline()
	for i, q := range questions {
		pipe.HSet(ctx, questionKeyPrefix+strconv.Itoa(i+1),
			fieldQuestion, q.Text,
			fieldAnswer, q.Answer,
		)
	}
	pipe.Set(ctx, countKey, len(questions), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	return nil
}

// PickRandom draws a number uniformly in [1, count] and resolves it.
func (r *RedisRepository) PickRandom(ctx context.Context) (*core.Question, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, core.ErrEmptyCorpus
	}
	return r.Get(ctx, strconv.Itoa(rand.IntN(count)+1))
}

// Get resolves a question by its numeric handle.
func (r *RedisRepository) Get(ctx context.Context, ref string) (*core.Question, error) {
	fields, err := r.client.HGetAll(ctx, questionKeyPrefix+ref).Result()
	if err != nil {
		return nil, fmt.Errorf("read question %s: %w", ref, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("question %s: %w", ref, core.ErrQuestionNotFound)
	}
	return &core.Question{Ref: ref, Text: fields[fieldQuestion], Answer: fields[fieldAnswer]}, nil
}

// Count reads the corpus size, reporting zero when nothing was ever loaded.
func (r *RedisRepository) Count(ctx context.Context) (int, error) {
	val, err := r.client.Get(ctx, countKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read corpus size: %w", err)
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("corpus size %q is not a number: %w", val, err)
	}
	return count, nil
}
