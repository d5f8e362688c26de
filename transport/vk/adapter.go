// Package vk adapts VK group long-polling to the transport-neutral
// conversation engine. Inbound messages become core.Events, engine results
// become VK messages with an optional colored keyboard. All conversation
// logic lives in the engine.
package vk

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/SevereCloud/vksdk/v2/api"
	"github.com/SevereCloud/vksdk/v2/api/params"
	"github.com/SevereCloud/vksdk/v2/events"
	longpoll "github.com/SevereCloud/vksdk/v2/longpoll-bot"
	"github.com/SevereCloud/vksdk/v2/object"

	"github.com/hupe1980/quizbot"
	"github.com/hupe1980/quizbot/core"
	"github.com/hupe1980/quizbot/engine"
	"github.com/hupe1980/quizbot/logging"
)

// TransportName is the session-key prefix for VK users.
const TransportName = "vk"

// Options configures the adapter.
type Options struct {
	// Logger receives adapter diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Adapter drives one VK community bot against the shared engine.
type Adapter struct {
	vk     *api.VK
	lp     *longpoll.LongPoll
	quiz   *quizbot.Bot
	logger logging.Logger
}

// New authenticates with the community token and prepares the long-poll.
func New(token string, quiz *quizbot.Bot, optFns ...func(o *Options)) (*Adapter, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	vk := api.NewVK(token)
	groups, err := vk.GroupsGetByID(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve group: %w", err)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("token does not belong to a group")
	}

	lp, err := longpoll.NewLongPoll(vk, groups[0].ID)
	if err != nil {
		return nil, fmt.Errorf("init long poll: %w", err)
	}

	a := &Adapter{vk: vk, lp: lp, quiz: quiz, logger: opts.Logger}
	lp.MessageNew(a.handleMessage)
	return a, nil
}

// Run blocks on the long-poll loop until the context is cancelled.
func (a *Adapter) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		a.lp.Shutdown()
	}()
	a.logger.Info("VK bot is running")
	return a.lp.Run()
}

func (a *Adapter) handleMessage(ctx context.Context, obj events.MessageNewObject) {
	msg := obj.Message
	if msg.Text == "" {
		return
	}

	ev := core.NewEvent(TransportName, int64(msg.PeerID), msg.Text)

	res, err := a.quiz.HandleEvent(ctx, ev)
	if err != nil {
		// State was not advanced; degrade to the generic reply.
		a.logger.Error("Turn failed", "session_id", ev.SessionID, "error", err)
		a.send(msg.PeerID, engine.UnavailableMessage, nil)
		return
	}
	a.send(msg.PeerID, res.Reply, res.Keyboard)
}

func (a *Adapter) send(peerID int, text string, kb *core.Keyboard) {
	b := params.NewMessagesSendBuilder()
	b.PeerID(peerID)
	b.Message(text)
	b.RandomID(int(rand.Int32()))
	if kb != nil {
		b.Keyboard(messagesKeyboard(kb))
	}
	if _, err := a.vk.MessagesSend(b.Params); err != nil {
		a.logger.Error("Send failed", "peer_id", peerID, "error", err)
	}
}

// messagesKeyboard renders the engine's menu as a persistent VK keyboard
// with the engine's color hints.
func messagesKeyboard(kb *core.Keyboard) *object.MessagesKeyboard {
	keyboard := object.NewMessagesKeyboard(false)
	for _, row := range kb.Rows {
		keyboard.AddRow()
		for _, b := range row {
			keyboard.AddTextButton(b.Label, "", buttonColor(b.Color))
		}
	}
	return keyboard
}

func buttonColor(c core.ButtonColor) string {
	switch c {
	case core.ButtonPrimary:
		return "primary"
	case core.ButtonNegative:
		return "negative"
	case core.ButtonSecondary:
		return "secondary"
	default:
		return "default"
	}
}
