// Package llm abstracts single-turn chat completion. Prompts are built by
// the calling page handlers; responses are rendered verbatim with no
// schema validation.
package llm

import "context"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a completion request.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// Request is a completion request.
type Request struct {
	System      []string
	Messages    []ChatMessage
	Temperature float32
	TopP        float64
	MaxTokens   int32
}

// Response is the completion result.
type Response struct {
	Text       string
	StopReason string
}

// Client completes a chat exchange against a hosted model.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
