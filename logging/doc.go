// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer BotLogger with contextual
// helpers (component, transport, session) and a domain specific helper for
// conversation turns.
package logging
