// Package session houses concrete implementations of the core.SessionStore.
// The interface itself (and the Session struct) live in the core package to
// centralize domain contracts. Keeping only implementations here prevents
// higher level packages (engine, transports) from depending on concrete
// storage.
//
// Two backends are provided: a volatile in-memory store for tests and local
// runs, and a Redis store holding one hash per session so several bot
// processes can share the same user records. Additional backends can be
// added here without changing any calling code.
package session
