package llm

import (
	"context"
	"sync"
)

// StaticClient returns a fixed response. It stands in for the real model
// when no API key is configured and doubles as the recording client in
// tests, so Complete must be safe for concurrent handlers.
type StaticClient struct {
	Response string
	Err      error

	mu sync.Mutex
	// Requests records every request for assertions.
	Requests []Request
}

// Complete returns the configured response.
func (c *StaticClient) Complete(ctx context.Context, req Request) (Response, error) {
	c.mu.Lock()
	c.Requests = append(c.Requests, req)
	c.mu.Unlock()

	if c.Err != nil {
		return Response{}, c.Err
	}
	text := c.Response
	if text == "" {
		text = "Model completion is not configured."
	}
	return Response{Text: text, StopReason: "STOP"}, nil
}
