// Package llm wraps the OpenAI chat-completion API behind a minimal client.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyReply reports that the model answered with no usable content.
// Callers treat it like any other inference failure.
var ErrEmptyReply = errors.New("model returned an empty reply")

// Client sends chat-completion requests with a bounded per-request timeout.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a Client for the given API key and model.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		api:     openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

// Complete sends one chat-completion request and returns the reply text.
// The request fails rather than hangs once the timeout elapses. There is no
// retry; any failure surfaces to the caller.
func (c *Client) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
