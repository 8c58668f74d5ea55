package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/petasbytes/personachat/chat"
	"github.com/petasbytes/personachat/internal/provider"
	"github.com/petasbytes/personachat/persona"
)

type fakeClient struct {
	reply   string
	err     error
	lastReq provider.Request
	calls   int
}

func (f *fakeClient) Complete(_ context.Context, req provider.Request) (chat.Message, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return chat.Message{}, f.err
	}
	return chat.NewMessage(chat.RoleAssistant, f.reply), nil
}

func newConv(t *testing.T) *chat.Conversation {
	t.Helper()
	conv, err := chat.New(persona.Builtin(), "RoastBot", "gpt-3.5-turbo", 0.65, 512)
	if err != nil {
		t.Fatalf("new conversation: %v", err)
	}
	return conv
}

func TestRunTurn_AppendsReply(t *testing.T) {
	conv := newConv(t)
	if _, err := conv.AppendUser("hi"); err != nil {
		t.Fatalf("append: %v", err)
	}

	fc := &fakeClient{reply: "nice haircut, did you lose a bet?"}
	r := New(fc, 24, 0)

	msg, err := r.RunTurn(context.Background(), conv)
	if err != nil {
		t.Fatalf("run turn: %v", err)
	}
	if msg.Role != chat.RoleAssistant || msg.Content != fc.reply {
		t.Fatalf("unexpected reply: %+v", msg)
	}
	if len(conv.History) != 2 {
		t.Fatalf("history length: got %d want 2", len(conv.History))
	}

	// Request payload: system message first, derived from the active persona.
	if len(fc.lastReq.Messages) != 2 {
		t.Fatalf("request messages: got %d want 2", len(fc.lastReq.Messages))
	}
	if fc.lastReq.Messages[0].Role != chat.RoleSystem {
		t.Fatalf("first request message must be system, got %s", fc.lastReq.Messages[0].Role)
	}
	if fc.lastReq.Messages[0].Content != persona.RoastBot.SystemPrompt {
		t.Fatal("system prompt not derived from active persona")
	}
	if fc.lastReq.Model != "gpt-3.5-turbo" || fc.lastReq.Temperature != 0.65 || fc.lastReq.MaxTokens != 512 {
		t.Fatalf("settings not threaded: %+v", fc.lastReq)
	}
}

func TestRunTurn_FailureLeavesHistoryAlone(t *testing.T) {
	conv := newConv(t)
	if _, err := conv.AppendUser("hi"); err != nil {
		t.Fatalf("append: %v", err)
	}

	fc := &fakeClient{err: provider.ErrRateLimit}
	r := New(fc, 24, 0)

	_, err := r.RunTurn(context.Background(), conv)
	if !errors.Is(err, provider.ErrRateLimit) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if len(conv.History) != 1 || conv.History[0].Role != chat.RoleUser {
		t.Fatalf("history changed on failure: %+v", conv.History)
	}
}

func TestRunTurn_SwitchedPersonaShapesNextPrompt(t *testing.T) {
	conv := newConv(t)
	if _, err := conv.AppendUser("hi"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := conv.SwitchPersona("EmojiBot"); err != nil {
		t.Fatalf("switch: %v", err)
	}

	fc := &fakeClient{reply: "👋"}
	if _, err := New(fc, 24, 0).RunTurn(context.Background(), conv); err != nil {
		t.Fatalf("run turn: %v", err)
	}
	if !strings.Contains(fc.lastReq.Messages[0].Content, "EmojiBot") {
		t.Fatal("expected EmojiBot system prompt after switch")
	}
}

func TestRunTurn_WindowsHistoryButKeepsSystem(t *testing.T) {
	conv := newConv(t)
	for i := 0; i < 10; i++ {
		if _, err := conv.AppendUser("question"); err != nil {
			t.Fatalf("append: %v", err)
		}
		conv.AppendAssistant("answer")
	}

	fc := &fakeClient{reply: "ok"}
	// Cap of 4 history messages -> 2 exchanges plus the system message.
	if _, err := New(fc, 4, 0).RunTurn(context.Background(), conv); err != nil {
		t.Fatalf("run turn: %v", err)
	}
	if got := len(fc.lastReq.Messages); got != 5 {
		t.Fatalf("request messages: got %d want 5", got)
	}
	if fc.lastReq.Messages[0].Role != chat.RoleSystem {
		t.Fatal("system message missing from windowed prompt")
	}
}

func TestRunTurn_EmptyReplyStillAppended(t *testing.T) {
	conv := newConv(t)
	if _, err := conv.AppendUser("hi"); err != nil {
		t.Fatalf("append: %v", err)
	}

	fc := &fakeClient{reply: ""}
	if _, err := New(fc, 24, 0).RunTurn(context.Background(), conv); err != nil {
		t.Fatalf("run turn: %v", err)
	}
	if len(conv.History) != 2 || conv.History[1].Content != "" {
		t.Fatalf("expected empty assistant reply appended: %+v", conv.History)
	}
}
