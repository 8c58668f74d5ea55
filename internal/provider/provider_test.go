package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/personachat/chat"
)

func TestClassifyStatus(t *testing.T) {
	base := errors.New("boom")
	cases := []struct {
		status int
		want   error
	}{
		{401, ErrAuthentication},
		{403, ErrAuthentication},
		{429, ErrRateLimit},
		{500, ErrServiceUnavailable},
		{503, ErrServiceUnavailable},
		{529, ErrServiceUnavailable},
		{400, ErrInvalidRequest},
		{404, ErrInvalidRequest},
		{422, ErrInvalidRequest},
	}
	for _, tc := range cases {
		err := classifyStatus(tc.status, base)
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}

	// Unrecognized statuses keep the original error reachable.
	err := classifyStatus(0, base)
	assert.ErrorIs(t, err, base)
}

func TestNew_SelectsProvider(t *testing.T) {
	c, err := New("openai")
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Name())

	c, err = New("anthropic")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", c.Name())

	_, err = New("llamacloud")
	assert.Error(t, err)
}

func TestComplete_MissingKeyIsAuthenticationError(t *testing.T) {
	req := Request{
		Model:       "gpt-3.5-turbo",
		Temperature: 0.65,
		MaxTokens:   64,
		Messages:    []chat.Message{{Role: chat.RoleUser, Content: "hi"}},
	}

	_, err := NewOpenAI("").Complete(context.Background(), req)
	assert.ErrorIs(t, err, ErrAuthentication)

	_, err = NewAnthropic("").Complete(context.Background(), req)
	assert.ErrorIs(t, err, ErrAuthentication)
}
