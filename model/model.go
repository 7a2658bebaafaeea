package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/agora/core"
)

// Request captures the normalized completion input produced by the router and
// generator.
type Request struct {
	// Instructions primes the model (persona behavioral instruction or the
	// routing directive). Sent as the leading system message.
	Instructions string `json:"instructions"`
	// Messages is the ordered role-tagged conversation context.
	Messages []core.Message `json:"messages"`
	// Schema optionally constrains the output to a JSON document matching
	// the given JSON schema. Providers without native structured output
	// approximate it via instruction text.
	Schema map[string]any `json:"schema,omitempty"`
	// SchemaName names the schema for providers that require one.
	SchemaName string `json:"schema_name,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required to drive persona routing and
// response generation.
type Model interface {
	// Complete returns the full completion text for the request, or an error.
	// Implementations must honor ctx cancellation and deadlines.
	Complete(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses are keyed by the text of the last request message; an optional
// CompleteFn hook takes precedence for scripted behavior. Safe for concurrent
// use and records every request it receives.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	err       error
	requests  []Request

	// CompleteFn, when set, fully overrides canned response lookup.
	CompleteFn func(ctx context.Context, req Request) (string, error)
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for the text of a
// request's last message.
func (m *MockModel) AddResponse(lastMessage, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[lastMessage] = response
}

// SetError makes every subsequent call fail with err (nil clears it).
func (m *MockModel) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Requests returns a copy of all requests received so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Complete implements Model.
func (m *MockModel) Complete(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	fn := m.CompleteFn
	err := m.err
	var canned string
	var ok bool
	if len(req.Messages) > 0 {
		canned, ok = m.responses[req.Messages[len(req.Messages)-1].Text]
	}
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if fn != nil {
		return fn(ctx, req)
	}
	if err != nil {
		return "", err
	}
	if ok {
		return canned, nil
	}
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	return fmt.Sprintf("Mock response to: %s", req.Messages[len(req.Messages)-1].Text), nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
