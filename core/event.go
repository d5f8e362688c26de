package core

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a random unique identifier used to correlate a turn across
// the engine and its logs.
func NewID() string {
	return uuid.NewString()
}

// Event is the transport-neutral inbound unit consumed by the engine.
// Adapters build exactly one Event per platform message; after that the
// engine behaves identically regardless of the originating transport.
type Event struct {
	// ID correlates the turn in logs.
	ID string `json:"id"`
	// SessionID is the composite store key ("{transport}_{userID}").
	SessionID string `json:"session_id"`
	// Transport names the originating adapter ("tg", "vk").
	Transport string `json:"transport"`
	// Text is the raw user message text.
	Text string `json:"text"`
	// UserName optionally carries the user's first name for greeting
	// personalization. Transports that don't expose one leave it empty.
	UserName string `json:"user_name,omitempty"`
	// Timestamp is the time the adapter received the message, UTC.
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent builds an inbound event for a raw user message.
func NewEvent(transport string, userID int64, text string) Event {
	return Event{
		ID:        NewID(),
		SessionID: SessionID(transport, userID),
		Transport: transport,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

// ButtonColor is a rendering hint for keyboard buttons. Adapters that cannot
// express colors (Telegram reply keyboards) ignore it.
type ButtonColor string

const (
	// ButtonPrimary marks the main action button.
	ButtonPrimary ButtonColor = "primary"
	// ButtonNegative marks a destructive / give-up button.
	ButtonNegative ButtonColor = "negative"
	// ButtonSecondary marks an auxiliary button.
	ButtonSecondary ButtonColor = "secondary"
)

// Button is one keyboard entry.
type Button struct {
	Label string      `json:"label"`
	Color ButtonColor `json:"color"`
}

// Keyboard is a transport-neutral menu layout. Rows are rendered in
// order; each adapter translates them into its platform's markup.
type Keyboard struct {
	Rows [][]Button `json:"rows"`
}

// Result is what the engine hands back to the adapter for one turn: at most
// one outbound message and the state the session was left in.
type Result struct {
	// Reply is the outbound message text.
	Reply string `json:"reply"`
	// Keyboard, when non-nil, asks the adapter to attach the menu.
	Keyboard *Keyboard `json:"keyboard,omitempty"`
	// State is the session state after the turn, for logging and tests;
	// adapters must not act on it.
	State State `json:"state"`
}
