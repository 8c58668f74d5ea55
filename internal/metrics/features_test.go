package metrics

import (
	"testing"

	"github.com/petasbytes/personachat/chat"
)

func TestCount_Empty(t *testing.T) {
	f := Count(nil)
	if f.Messages != 0 || f.Runes != 0 || f.Words != 0 {
		t.Fatalf("expected zero features, got %+v", f)
	}
}

func TestCount_MixedRoles(t *testing.T) {
	msgs := []chat.Message{
		{Role: chat.RoleSystem, Content: "You are RoastBot."},
		{Role: chat.RoleUser, Content: "hi there"},
		{Role: chat.RoleAssistant, Content: "nice haircut"},
	}

	f := Count(msgs)
	if f.Messages != 3 || f.SystemMsgs != 1 || f.UserMsgs != 1 || f.AssistantMsgs != 1 {
		t.Fatalf("role counts wrong: %+v", f)
	}
	if f.Words != 3+2+2 {
		t.Fatalf("words: got %d", f.Words)
	}
	wantLongest := MessageRunes(msgs[0])
	if f.LongestMessage != wantLongest {
		t.Fatalf("longest: got %d want %d", f.LongestMessage, wantLongest)
	}
}

func TestMessageRunes_OverheadAndUnicode(t *testing.T) {
	empty := MessageRunes(chat.Message{Role: chat.RoleUser})
	if empty != messageOverhead {
		t.Fatalf("empty message cost: got %d want %d", empty, messageOverhead)
	}

	// Rune count, not byte count.
	m := chat.Message{Role: chat.RoleUser, Content: "héllo 🦜"}
	if got := MessageRunes(m); got != 7+messageOverhead {
		t.Fatalf("unicode cost: got %d", got)
	}
}
