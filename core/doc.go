// Package core provides the foundational domain types and interfaces shared
// by every part of the quiz bot. It defines the core abstractions for:
//
//   - Sessions (per-user quiz progress and conversational state)
//   - Events / Results (transport-neutral engine input and output)
//   - Questions (immutable corpus entries)
//   - Pluggable stores for session state and the question corpus
//   - Answer normalization and matching
//
// The package intentionally keeps implementation concerns (persistence,
// transports, the conversation engine itself) out of scope, exposing small
// interfaces so backends can be swapped without touching calling code.
package core
