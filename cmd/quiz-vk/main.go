// VK front-end of the quiz bot.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/quizbot"
	"github.com/hupe1980/quizbot/internal/config"
	"github.com/hupe1980/quizbot/logging"
	"github.com/hupe1980/quizbot/question"
	"github.com/hupe1980/quizbot/session"
	"github.com/hupe1980/quizbot/transport/vk"
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
		Format:    "json",
		Output:    os.Stdout,
		Component: "quiz-vk",
	})

	if cfg.VKToken == "" {
		logger.Error("VK_BOT_TOKEN is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	quiz := quizbot.New(func(o *quizbot.Options) {
		o.SessionStore = session.NewRedisStore(rdb)
		o.Questions = question.NewRedisRepository(rdb)
		o.Logger = logger.WithComponent("engine")
	})

	ready, err := quiz.ReadyToServe(ctx)
	if err != nil {
		logger.Error("Corpus check failed", "error", err)
		os.Exit(1)
	}
	if !ready {
		logger.Error("No questions are loaded; refusing to serve. Run quiz-load first.")
		os.Exit(1)
	}

	adapter, err := vk.New(cfg.VKToken, quiz, func(o *vk.Options) {
		o.Logger = logger.WithTransport(vk.TransportName)
	})
	if err != nil {
		logger.Error("Failed to start VK bot", "error", err)
		os.Exit(1)
	}

	if err := adapter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("VK bot stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("VK bot shut down")
}
