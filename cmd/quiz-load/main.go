// quiz-load parses a directory of quiz question files and loads the corpus
// into Redis. Run it once before starting the bots.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/quizbot/corpus"
	"github.com/hupe1980/quizbot/internal/config"
	"github.com/hupe1980/quizbot/logging"
	"github.com/hupe1980/quizbot/question"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger(nil).Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.ParseLevel(cfg.LogLevel),
		Format:    "text",
		Output:    os.Stdout,
		Component: "quiz-load",
	})

	dir := flag.String("path", cfg.QuizDir, "path to the folder with question files")
	utf8 := flag.Bool("utf8", false, "treat question files as UTF-8 instead of KOI8-R")
	flag.Parse()

	parser := corpus.New(func(o *corpus.Options) {
		if *utf8 {
			o.Encoding = corpus.UTF8
		}
	})

	questions, err := parser.ParseDir(*dir)
	if err != nil {
		logger.Error("Failed to parse question files", "path", *dir, "error", err)
		os.Exit(1)
	}
	if len(questions) == 0 {
		logger.Error("No questions parsed; the folder may be empty or malformed", "path", *dir)
		os.Exit(1)
	}

	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("Redis health check failed", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	repo := question.NewRedisRepository(rdb)
	if err := repo.Load(ctx, questions); err != nil {
		logger.Error("Failed to load corpus", "error", err)
		os.Exit(1)
	}

	logger.Info("Questions added successfully", "count", len(questions))
}
