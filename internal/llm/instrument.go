package llm

import (
	"context"
	"time"
)

// Observer receives external-call outcomes for metrics.
type Observer interface {
	ObserveExternalCall(collaborator, status string)
	ObserveExternalLatency(collaborator string, seconds float64)
}

type instrumentedClient struct {
	inner Client
	name  string
	obs   Observer
}

// WithMetrics wraps a client so every completion is counted and timed
// under the given collaborator name.
func WithMetrics(c Client, name string, obs Observer) Client {
	if obs == nil {
		return c
	}
	return &instrumentedClient{inner: c, name: name, obs: obs}
}

func (c *instrumentedClient) Complete(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	resp, err := c.inner.Complete(ctx, req)
	c.obs.ObserveExternalLatency(c.name, time.Since(start).Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.obs.ObserveExternalCall(c.name, status)
	return resp, err
}
