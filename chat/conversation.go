package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petasbytes/personachat/persona"
)

var (
	// ErrEmptyMessage rejects user input that is empty or whitespace-only.
	ErrEmptyMessage = errors.New("empty message")
	// ErrInvalidSettings rejects settings outside the provider-accepted range.
	ErrInvalidSettings = errors.New("invalid settings")
)

// Temperature bounds accepted by the chat-completion providers.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// Conversation is the full mutable state of one chat session.
// All operations are methods on the single owning value; none of them touch
// the registry beyond name lookups.
type Conversation struct {
	registry *persona.Registry

	ActivePersona persona.Persona
	Model         string
	Temperature   float64
	MaxTokens     int
	History       []Message
}

// New initializes a conversation against reg.
// Fails with persona.ErrUnknownPersona or ErrInvalidSettings; on failure no
// state is created.
func New(reg *persona.Registry, personaName, model string, temperature float64, maxTokens int) (*Conversation, error) {
	p, err := reg.Get(personaName)
	if err != nil {
		return nil, err
	}
	if err := validateTemperature(temperature); err != nil {
		return nil, err
	}
	if maxTokens <= 0 {
		return nil, fmt.Errorf("%w: max tokens must be positive, got %d", ErrInvalidSettings, maxTokens)
	}
	return &Conversation{
		registry:      reg,
		ActivePersona: p,
		Model:         model,
		Temperature:   temperature,
		MaxTokens:     maxTokens,
	}, nil
}

func validateTemperature(t float64) error {
	if t < MinTemperature || t > MaxTemperature {
		return fmt.Errorf("%w: temperature %.2f outside [%.1f, %.1f]", ErrInvalidSettings, t, MinTemperature, MaxTemperature)
	}
	return nil
}

// AppendUser appends a user message. Blank input is rejected and leaves
// history untouched.
func (c *Conversation) AppendUser(text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}
	m := NewMessage(RoleUser, text)
	c.History = append(c.History, m)
	return m, nil
}

// AppendAssistant appends an assistant reply unconditionally. An empty reply
// is still appended; it records that the model said nothing.
func (c *Conversation) AppendAssistant(text string) Message {
	m := NewMessage(RoleAssistant, text)
	c.History = append(c.History, m)
	return m
}

// SwitchPersona changes the active persona for future prompts only.
// Stored history is untouched.
func (c *Conversation) SwitchPersona(name string) error {
	p, err := c.registry.Get(name)
	if err != nil {
		return err
	}
	c.ActivePersona = p
	return nil
}

// SetModel changes the model used for future completions.
func (c *Conversation) SetModel(model string) {
	c.Model = model
}

// SetTemperature changes the sampling temperature, range-checked.
func (c *Conversation) SetTemperature(t float64) error {
	if err := validateTemperature(t); err != nil {
		return err
	}
	c.Temperature = t
	return nil
}

// Clear empties the history. Persona and settings are unchanged.
func (c *Conversation) Clear() {
	c.History = nil
}

// BuildPrompt returns the exact message sequence for the next completion
// request: a system message derived fresh from the active persona, followed
// by the stored history.
func (c *Conversation) BuildPrompt() []Message {
	prompt := make([]Message, 0, len(c.History)+1)
	prompt = append(prompt, Message{Role: RoleSystem, Content: c.ActivePersona.SystemPrompt})
	prompt = append(prompt, c.History...)
	return prompt
}

// Restore rebuilds a conversation from previously persisted fields.
// The persona must still exist in reg; settings and history are taken as-is
// because they were validated when first written.
func Restore(reg *persona.Registry, personaName, model string, temperature float64, maxTokens int, history []Message) (*Conversation, error) {
	p, err := reg.Get(personaName)
	if err != nil {
		return nil, err
	}
	return &Conversation{
		registry:      reg,
		ActivePersona: p,
		Model:         model,
		Temperature:   temperature,
		MaxTokens:     maxTokens,
		History:       history,
	}, nil
}

// Registry returns the registry this conversation resolves personas against.
func (c *Conversation) Registry() *persona.Registry {
	return c.registry
}
