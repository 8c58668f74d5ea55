// Package chat models the state of one conversation.
//
// Invariants:
//   - History is append-only; the only other mutation is an explicit Clear.
//   - The system message is never stored in History. BuildPrompt derives it
//     from the active persona at call time, so switching personas changes
//     future requests without rewriting past messages.
//   - A Conversation has exactly one owner; nothing here locks.
package chat
