// Package session coordinates one chat turn against the completion gateway.
//
// Invariant:
//   - A failed gateway call leaves the conversation exactly as it was: the
//     user's message stays in history and no assistant reply is appended.
//
// Flow:
//
//	build prompt -> window history -> complete -> append assistant reply
package session
