package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/petasbytes/personachat/chat"
)

// OpenAI talks to the OpenAI chat-completions API.
// The SDK client is built lazily so constructing the gateway never probes
// the credential.
type OpenAI struct {
	apiKey string
	client *openai.Client
}

// NewOpenAI returns an OpenAI gateway using the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{apiKey: apiKey}
}

// Name returns "openai".
func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) init() error {
	if o.client != nil {
		return nil
	}
	if o.apiKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrAuthentication)
	}
	c := openai.NewClient(option.WithAPIKey(o.apiKey))
	o.client = &c
	return nil
}

// Complete sends one chat-completion request and returns the assistant reply.
func (o *OpenAI) Complete(ctx context.Context, req Request) (chat.Message, error) {
	if err := o.init(); err != nil {
		return chat.Message{}, err
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case chat.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case chat.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		case chat.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    msgs,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return chat.Message{}, classifyStatus(apierr.StatusCode, err)
		}
		return chat.Message{}, fmt.Errorf("openai request: %w", err)
	}

	if len(completion.Choices) == 0 {
		return chat.Message{}, fmt.Errorf("%w: no choices in response", ErrInvalidRequest)
	}
	// An empty content string is a valid reply; the model said nothing.
	return chat.NewMessage(chat.RoleAssistant, completion.Choices[0].Message.Content), nil
}
