// Package engine implements the conversation state machine shared by every
// transport. It consumes transport-neutral events (core.Event), reads and
// mutates the session record through the injected core.SessionStore, draws
// questions from the injected core.QuestionRepository and returns one
// outbound reply per turn (core.Result).
//
// The engine holds no per-conversation state in process, so one instance
// serves all sessions of all transports concurrently. Turns for the same
// session are serialized through a keyed lock; turns for distinct sessions
// never contend.
package engine
