package session

import (
	"context"
	"fmt"
	"time"

	"github.com/petasbytes/personachat/chat"
	"github.com/petasbytes/personachat/internal/metrics"
	"github.com/petasbytes/personachat/internal/provider"
	"github.com/petasbytes/personachat/internal/telemetry"
	"github.com/petasbytes/personachat/internal/windowing"
)

// Runner drives completion turns for one conversation at a time.
type Runner struct {
	Client      Completer
	MaxMessages int // history window cap, 0 disables
	Budget      int // history rune budget, 0 disables
}

// Completer is the slice of the gateway the runner needs.
type Completer interface {
	Complete(ctx context.Context, req provider.Request) (chat.Message, error)
}

// New returns a runner sending at most maxMessages history messages and
// budget history runes per request.
func New(client Completer, maxMessages, budget int) *Runner {
	return &Runner{Client: client, MaxMessages: maxMessages, Budget: budget}
}

// RunTurn sends the conversation's current prompt and appends the assistant
// reply on success. The caller appends the user message first; on any error
// the conversation is left untouched.
func (r *Runner) RunTurn(ctx context.Context, conv *chat.Conversation) (chat.Message, error) {
	turnID, ok := telemetry.TurnIDFromContext(ctx)
	if !ok {
		turnID = fmt.Sprintf("turn-%d", time.Now().UnixNano())
		ctx = telemetry.WithTurnID(ctx, turnID)
	}

	// BuildPrompt returns the system message followed by the full history;
	// only the history part is subject to windowing. The system message is
	// computed fresh from the active persona and never trimmed.
	full := conv.BuildPrompt()
	window, stats := windowing.PrepareSendWindow(full[1:], r.MaxMessages, r.Budget)
	prompt := append(full[:1:1], window...)

	fields := metrics.Count(prompt).Fields()
	fields["turn_id"] = turnID
	fields["persona"] = conv.ActivePersona.Name
	fields["model"] = conv.Model
	fields["budget"] = stats.Budget
	fields["included_groups"] = stats.IncludedGroups
	fields["skipped_groups"] = stats.SkippedGroups
	fields["over_budget_newest"] = stats.OverBudgetNewest
	telemetry.Emit("prompt_prepared", fields)

	req := provider.Request{
		Model:       conv.Model,
		Temperature: conv.Temperature,
		MaxTokens:   conv.MaxTokens,
		Messages:    prompt,
	}

	start := time.Now()
	reply, err := r.Client.Complete(ctx, req)
	if err != nil {
		telemetry.Emit("completion_error", map[string]any{
			"turn_id":     turnID,
			"model":       conv.Model,
			"duration_ms": time.Since(start).Milliseconds(),
			"error":       err.Error(),
		})
		return chat.Message{}, err
	}

	appended := conv.AppendAssistant(reply.Content)
	telemetry.Emit("completion_ok", map[string]any{
		"turn_id":     turnID,
		"model":       conv.Model,
		"duration_ms": time.Since(start).Milliseconds(),
		"reply_runes": len([]rune(reply.Content)),
	})
	return appended, nil
}
