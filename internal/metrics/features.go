// Package metrics computes local size features of outgoing prompts.
package metrics

import (
	"strings"
	"unicode/utf8"

	"github.com/petasbytes/personachat/chat"
)

// PromptFeatures summarizes an outgoing prompt for windowing and telemetry.
type PromptFeatures struct {
	Messages       int
	Runes          int
	Words          int
	UserMsgs       int
	AssistantMsgs  int
	SystemMsgs     int
	LongestMessage int // runes in the largest single message
}

// Count computes features over a prompt slice.
func Count(msgs []chat.Message) PromptFeatures {
	var f PromptFeatures
	f.Messages = len(msgs)
	for _, m := range msgs {
		r := MessageRunes(m)
		f.Runes += r
		f.Words += len(strings.Fields(m.Content))
		if r > f.LongestMessage {
			f.LongestMessage = r
		}
		switch m.Role {
		case chat.RoleUser:
			f.UserMsgs++
		case chat.RoleAssistant:
			f.AssistantMsgs++
		case chat.RoleSystem:
			f.SystemMsgs++
		}
	}
	return f
}

// Fixed per-message overhead so empty messages still cost something;
// changing this requires updating the windowing guard tests.
const messageOverhead = 4

// MessageRunes estimates the cost of one message: content runes plus a
// small per-message overhead for role and framing.
func MessageRunes(m chat.Message) int {
	return utf8.RuneCountInString(m.Content) + messageOverhead
}

// Fields returns the features as telemetry-ready fields.
func (f PromptFeatures) Fields() map[string]any {
	return map[string]any{
		"messages":        f.Messages,
		"runes":           f.Runes,
		"words":           f.Words,
		"user_msgs":       f.UserMsgs,
		"assistant_msgs":  f.AssistantMsgs,
		"system_msgs":     f.SystemMsgs,
		"longest_message": f.LongestMessage,
	}
}
