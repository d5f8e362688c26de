// Package quizbot provides a high-level façade over the conversation engine
// and its service abstractions (session store, question repository, logging)
// enabling rapid construction of a quiz bot on any transport. Most
// applications interact with this package by:
//  1. Creating a Bot via New() (optionally overriding default in-memory services)
//  2. Feeding transport-neutral events into HandleEvent from an adapter loop
//
// The façade delegates all conversation logic to engine.Engine while keeping
// setup ergonomics concise. All defaults are safe for local development and
// testing; production deployments supply the Redis-backed stores and a
// structured logger.
package quizbot

import (
	"context"

	"github.com/hupe1980/quizbot/core"
	"github.com/hupe1980/quizbot/engine"
	"github.com/hupe1980/quizbot/logging"
	"github.com/hupe1980/quizbot/question"
	"github.com/hupe1980/quizbot/session"
)

// Options configures the Bot instance.
type Options struct {
	// SessionStore persists per-user quiz progress. Defaults to in-memory.
	SessionStore core.SessionStore
	// Questions serves the loaded corpus. Defaults to an empty in-memory
	// repository; production wiring must provide a loaded one.
	Questions core.QuestionRepository
	// Logger receives engine diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Bot is the high-level façade aggregating the engine and its services.
type Bot struct {
	opts   Options
	engine *engine.Engine
}

// New creates a Bot with optional overrides. Any unset service is
// initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *Bot {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Questions:    question.NewInMemoryRepository(),
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(opts.SessionStore, opts.Questions, func(o *engine.Options) {
		o.Logger = opts.Logger
	})

	return &Bot{opts: opts, engine: e}
}

// HandleEvent runs one conversation turn. See engine.Engine.HandleEvent.
func (b *Bot) HandleEvent(ctx context.Context, ev core.Event) (core.Result, error) {
	return b.engine.HandleEvent(ctx, ev)
}

// ReadyToServe reports whether the question corpus is non-empty. Serving
// must refuse to start when it is not.
func (b *Bot) ReadyToServe(ctx context.Context) (bool, error) {
	count, err := b.opts.Questions.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
