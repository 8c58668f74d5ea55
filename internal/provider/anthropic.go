package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/petasbytes/personachat/chat"
)

// Anthropic talks to the Anthropic Messages API.
// System messages cannot travel in the message list there; they map onto the
// request's system field instead.
type Anthropic struct {
	apiKey string
	client *anthropic.Client
}

// NewAnthropic returns an Anthropic gateway using the given API key.
func NewAnthropic(apiKey string) *Anthropic {
	return &Anthropic{apiKey: apiKey}
}

// Name returns "anthropic".
func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) init() error {
	if a.client != nil {
		return nil
	}
	if a.apiKey == "" {
		return fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrAuthentication)
	}
	c := anthropic.NewClient(option.WithAPIKey(a.apiKey))
	a.client = &c
	return nil
}

// Complete sends one Messages API request and returns the assistant reply.
func (a *Anthropic) Complete(ctx context.Context, req Request) (chat.Message, error) {
	if err := a.init(); err != nil {
		return chat.Message{}, err
	}

	var system []anthropic.TextBlockParam
	msgs := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case chat.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case chat.RoleUser:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case chat.RoleAssistant:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		System:      system,
		Messages:    msgs,
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			return chat.Message{}, classifyStatus(apierr.StatusCode, err)
		}
		return chat.Message{}, fmt.Errorf("anthropic request: %w", err)
	}

	text := ""
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			if text == "" {
				text = tb.Text
			} else {
				text += "\n" + tb.Text
			}
		}
	}
	return chat.NewMessage(chat.RoleAssistant, text), nil
}
