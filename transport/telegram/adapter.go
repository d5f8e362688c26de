// Package telegram adapts the Telegram Bot API long-poll loop to the
// transport-neutral conversation engine. It owns nothing but translation:
// inbound messages become core.Events, engine results become Telegram
// messages with an optional reply keyboard. All conversation logic lives in
// the engine.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hupe1980/quizbot"
	"github.com/hupe1980/quizbot/core"
	"github.com/hupe1980/quizbot/engine"
	"github.com/hupe1980/quizbot/logging"
)

// TransportName is the session-key prefix for Telegram users.
const TransportName = "tg"

// Options configures the adapter.
type Options struct {
	// PollTimeout is the long-poll timeout in seconds.
	PollTimeout int
	// Logger receives adapter diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Adapter drives one Telegram bot against the shared engine.
type Adapter struct {
	bot    *tgbotapi.BotAPI
	quiz   *quizbot.Bot
	opts   Options
	logger logging.Logger
}

// New authenticates against the Bot API and builds the adapter.
func New(token string, quiz *quizbot.Bot, optFns ...func(o *Options)) (*Adapter, error) {
	opts := Options{PollTimeout: 60, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Adapter{bot: bot, quiz: quiz, opts: opts, logger: opts.Logger}, nil
}

// Run consumes the update channel until the context is cancelled. Each
// update is handled synchronously end-to-end before the next one is pulled.
func (a *Adapter) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = a.opts.PollTimeout
	updates := a.bot.GetUpdatesChan(u)

	a.logger.Info("Telegram bot is running", "username", a.bot.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			a.handleUpdate(ctx, update)
		}
	}
}

func (a *Adapter) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}

	ev := core.NewEvent(TransportName, msg.Chat.ID, msg.Text)
	if msg.From != nil {
		ev.UserName = msg.From.FirstName
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, "")
	res, err := a.quiz.HandleEvent(ctx, ev)
	if err != nil {
		// State was not advanced; degrade to the generic reply.
		a.logger.Error("Turn failed", "session_id", ev.SessionID, "error", err)
		reply.Text = engine.UnavailableMessage
	} else {
		reply.Text = res.Reply
		if res.Keyboard != nil {
			reply.ReplyMarkup = replyKeyboard(res.Keyboard)
		}
	}

	if _, err := a.bot.Send(reply); err != nil {
		a.logger.Error("Send failed", "session_id", ev.SessionID, "error", err)
	}
}

// replyKeyboard renders the engine's menu as a resized reply keyboard.
// Telegram reply keyboards have no colors; the hints are ignored.
func replyKeyboard(kb *core.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(b.Label))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}
