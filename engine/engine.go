package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/quizbot/core"
	"github.com/hupe1980/quizbot/logging"
)

// Options configures an Engine instance.
type Options struct {
	// Logger receives turn-level diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Engine is the conversation state machine. It is stateless per process and
// safe to invoke concurrently across distinct sessions; see package doc.
//
// Per turn the engine produces at most one store mutation set and at most
// one outbound message. It never retries: store failures propagate to the
// adapter, which surfaces a generic unavailable reply and leaves the
// conversational state unadvanced.
type Engine struct {
	sessions  core.SessionStore
	questions core.QuestionRepository
	logger    logging.Logger
	locks     *sessionLocks
}

// New builds an Engine over the given stores.
func New(sessions core.SessionStore, questions core.QuestionRepository, optFns ...func(o *Options)) *Engine {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Engine{
		sessions:  sessions,
		questions: questions,
		logger:    opts.Logger,
		locks:     newSessionLocks(),
	}
}

// HandleEvent runs one conversation turn: bootstrap (idempotent), dispatch
// on (state, input), persist mutations, return the reply. Turns for the
// same session are serialized.
func (e *Engine) HandleEvent(ctx context.Context, ev core.Event) (core.Result, error) {
	unlock := e.locks.acquire(ev.SessionID)
	defer unlock()

	start := time.Now()
	res, err := e.handle(ctx, ev)
	if err != nil {
		e.logger.Error("Turn failed", "event_id", ev.ID, "session_id", ev.SessionID, "transport", ev.Transport, "error", err)
		return core.Result{}, err
	}
	e.logger.Debug("Turn completed", "event_id", ev.ID, "session_id", ev.SessionID, "state", string(res.State), "duration", time.Since(start))
	return res, nil
}

func (e *Engine) handle(ctx context.Context, ev core.Event) (core.Result, error) {
	sess, err := e.sessions.GetOrCreate(ctx, ev.SessionID)
	if err != nil {
		return core.Result{}, err
	}

	text := strings.TrimSpace(ev.Text)

	// Score requests and cancellation work the same from any state.
	switch text {
	case CommandScore:
		return core.Result{
			Reply: fmt.Sprintf(ScoreFormat, sess.Score, sess.AnsweredCount),
			State: sess.State,
		}, nil
	case CommandCancel:
		return e.cancel(ctx, sess)
	}

	switch sess.State {
	case core.StateStart:
		return e.greet(ctx, ev, sess, text)
	case core.StateQuestion:
		return e.awaitingRequest(ctx, sess, text)
	case core.StateAnswer:
		return e.awaitingAnswer(ctx, sess, text)
	default:
		return e.greet(ctx, ev, sess, text)
	}
}

// greet handles first contact: welcome the user, show the menu and arm the
// question state. A first message that already requests a question skips
// the greeting and serves one immediately. Bootstrap itself already
// happened in GetOrCreate.
func (e *Engine) greet(ctx context.Context, ev core.Event, sess *core.Session, text string) (core.Result, error) {
	if text == CommandNewQuestion {
		return e.askQuestion(ctx, sess)
	}
	if err := e.sessions.SetState(ctx, sess.ID, core.StateQuestion); err != nil {
		return core.Result{}, err
	}
	reply := GreetingMessage
	if ev.UserName != "" {
		reply = fmt.Sprintf(GreetingNamedFormat, ev.UserName)
	}
	return core.Result{Reply: reply, Keyboard: MainMenu(), State: core.StateQuestion}, nil
}

// awaitingRequest handles StateQuestion: only a new-question request acts;
// everything else (including a stray give-up with nothing pending) gets the
// guidance message.
func (e *Engine) awaitingRequest(ctx context.Context, sess *core.Session, text string) (core.Result, error) {
	if text != CommandNewQuestion {
		return core.Result{Reply: UnrecognizedMessage, State: sess.State}, nil
	}
	return e.askQuestion(ctx, sess)
}

// askQuestion draws a random question and persists it with its normalized
// answer before the question text is handed to the adapter, so no client
// ever observes a question without a matching pending answer.
func (e *Engine) askQuestion(ctx context.Context, sess *core.Session) (core.Result, error) {
	q, err := e.questions.PickRandom(ctx)
	if err != nil {
		return core.Result{}, err
	}
	if err := e.sessions.SetCurrentQuestion(ctx, sess.ID, q.Ref, core.Normalize(q.Answer)); err != nil {
		return core.Result{}, err
	}
	if err := e.sessions.SetState(ctx, sess.ID, core.StateAnswer); err != nil {
		return core.Result{}, err
	}
	return core.Result{Reply: q.Text, State: core.StateAnswer}, nil
}

// awaitingAnswer handles StateAnswer: give-up, premature new-question
// requests and solution attempts.
func (e *Engine) awaitingAnswer(ctx context.Context, sess *core.Session, text string) (core.Result, error) {
	answer, handled, err := e.pendingAnswer(ctx, sess)
	if err != nil {
		return core.Result{}, err
	}
	if handled != nil {
		return *handled, nil
	}

	switch text {
	case CommandGiveUp:
		return e.giveUp(ctx, sess, answer)
	case CommandNewQuestion:
		return core.Result{Reply: QuestionPendingMessage, State: sess.State}, nil
	default:
		return e.checkAnswer(ctx, sess, text, answer)
	}
}

// pendingAnswer returns the stored normalized answer. A session can reach
// StateAnswer with an empty answer field only through outside interference
// (manual store edits, a corpus wipe between processes); in that case the
// engine re-resolves the stored question reference and, failing that, logs
// the dangling reference and degrades to a fresh new-question prompt for
// this turn instead of crashing. The counters are left untouched.
func (e *Engine) pendingAnswer(ctx context.Context, sess *core.Session) (string, *core.Result, error) {
	if sess.CurrentAnswer != "" {
		return sess.CurrentAnswer, nil, nil
	}

	q, err := e.questions.Get(ctx, sess.CurrentQuestion)
	if err == nil {
		return core.Normalize(q.Answer), nil, nil
	}
	if !errors.Is(err, core.ErrQuestionNotFound) {
		return "", nil, err
	}

	e.logger.Warn("Pending question no longer resolves", "session_id", sess.ID, "question_ref", sess.CurrentQuestion)
	if err := e.sessions.ClearCurrentQuestion(ctx, sess.ID); err != nil {
		return "", nil, err
	}
	if err := e.sessions.SetState(ctx, sess.ID, core.StateQuestion); err != nil {
		return "", nil, err
	}
	return "", &core.Result{Reply: UnrecognizedMessage, State: core.StateQuestion}, nil
}

// giveUp reveals the ask-time answer, counts the question as resolved and
// returns the session to the question state.
func (e *Engine) giveUp(ctx context.Context, sess *core.Session, answer string) (core.Result, error) {
	if err := e.sessions.IncrementAnswered(ctx, sess.ID); err != nil {
		return core.Result{}, err
	}
	if err := e.sessions.ClearCurrentQuestion(ctx, sess.ID); err != nil {
		return core.Result{}, err
	}
	if err := e.sessions.SetState(ctx, sess.ID, core.StateQuestion); err != nil {
		return core.Result{}, err
	}
	return core.Result{Reply: fmt.Sprintf(RevealAnswerFormat, answer), State: core.StateQuestion}, nil
}

// checkAnswer evaluates a solution attempt against the stored answer.
func (e *Engine) checkAnswer(ctx context.Context, sess *core.Session, text, answer string) (core.Result, error) {
	if !core.Matches(text, answer) {
		return core.Result{Reply: WrongAnswerMessage, State: sess.State}, nil
	}

	// Answered before score so score never exceeds answered count, not even
	// between the two single-field updates.
	if err := e.sessions.IncrementAnswered(ctx, sess.ID); err != nil {
		return core.Result{}, err
	}
	if err := e.sessions.IncrementScore(ctx, sess.ID); err != nil {
		return core.Result{}, err
	}
	if err := e.sessions.ClearCurrentQuestion(ctx, sess.ID); err != nil {
		return core.Result{}, err
	}
	if err := e.sessions.SetState(ctx, sess.ID, core.StateQuestion); err != nil {
		return core.Result{}, err
	}
	return core.Result{Reply: CorrectAnswerMessage, State: core.StateQuestion}, nil
}

// cancel closes the interactive flow: any pending question is abandoned
// (not counted as resolved) and the session returns to the initial state.
// The record itself, including the score, is never deleted.
func (e *Engine) cancel(ctx context.Context, sess *core.Session) (core.Result, error) {
	if sess.CurrentAnswer != "" || sess.CurrentQuestion != "" {
		if err := e.sessions.ClearCurrentQuestion(ctx, sess.ID); err != nil {
			return core.Result{}, err
		}
	}
	if err := e.sessions.SetState(ctx, sess.ID, core.StateStart); err != nil {
		return core.Result{}, err
	}
	return core.Result{Reply: CancelMessage, State: core.StateStart}, nil
}
