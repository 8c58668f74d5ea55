// Package provider is the boundary to hosted chat-completion services.
//
// Contract:
//   - Complete is a single pass-through request: no retries, no caching.
//   - Failures map onto a fixed taxonomy; callers never see raw SDK shapes.
package provider

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/petasbytes/personachat/chat"
)

// Failure taxonomy for gateway calls. All wrap the underlying SDK error.
var (
	ErrAuthentication     = errors.New("authentication failed")
	ErrRateLimit          = errors.New("rate limited")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInvalidRequest     = errors.New("invalid request")
)

// Request carries one completion call's full payload.
type Request struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Messages    []chat.Message // system message first, then windowed history
}

// Client sends one completion request and returns the assistant reply.
type Client interface {
	Complete(ctx context.Context, req Request) (chat.Message, error)
	Name() string
}

// New selects a client by provider name. Credentials come from the
// conventional env vars; their absence is not checked here, it surfaces as
// ErrAuthentication on the first Complete call.
func New(name string) (Client, error) {
	switch name {
	case "openai":
		return NewOpenAI(os.Getenv("OPENAI_API_KEY")), nil
	case "anthropic":
		return NewAnthropic(os.Getenv("ANTHROPIC_API_KEY")), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want openai or anthropic)", name)
	}
}

// classifyStatus maps an HTTP status from a provider SDK onto the taxonomy.
func classifyStatus(status int, err error) error {
	switch {
	case status == 401 || status == 403:
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	case status == 429:
		return fmt.Errorf("%w: %v", ErrRateLimit, err)
	case status >= 500:
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	case status >= 400:
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	default:
		return fmt.Errorf("completion request: %w", err)
	}
}
