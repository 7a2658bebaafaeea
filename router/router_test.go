package router

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agora/model"
	"github.com/hupe1980/agora/persona"
)

func newTestRegistry(t *testing.T) *persona.Registry {
	t.Helper()
	registry, err := persona.NewRegistry()
	require.NoError(t, err)
	return registry
}

func TestRouteStructuredDecision(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("decision", "mock")
	mock.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return `{"personas":["logic_master","critic"]}`, nil
	}

	r := New(mock, registry)
	selection := r.Route(context.Background(), "Is X ethical?", nil)
	assert.Equal(t, []string{"logic_master", "critic"}, selection)
}

func TestRouteRequestShape(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("decision", "mock")
	mock.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return `{"personas":[]}`, nil
	}

	r := New(mock, registry)
	r.Route(context.Background(), "hello", nil)

	requests := mock.Requests()
	require.Len(t, requests, 1)
	req := requests[0]
	assert.NotNil(t, req.Schema)
	assert.Equal(t, "persona_selection", req.SchemaName)
	assert.Contains(t, req.Instructions, "logic_master")
	assert.Contains(t, req.Instructions, "unemployed_student")
	require.NotEmpty(t, req.Messages)
	assert.Contains(t, req.Messages[len(req.Messages)-1].Text, "User just said: hello")
}

func TestRouteTruncatesToMaxSelection(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("decision", "mock")
	mock.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return `{"personas":["logic_master","critic","optimist","troll","diplomat"]}`, nil
	}

	r := New(mock, registry)
	selection := r.Route(context.Background(), "everyone weigh in", nil)
	assert.Equal(t, []string{"logic_master", "critic", "optimist"}, selection)
}

func TestRouteEmptySelectionIsValid(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("decision", "mock")
	mock.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return `{"personas":[]}`, nil
	}

	r := New(mock, registry)
	assert.Empty(t, r.Route(context.Background(), "nothing to say", nil))
}

func TestRouteFallbackOnModelError(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("decision", "mock")
	mock.SetError(fmt.Errorf("provider unreachable"))

	r := New(mock, registry, func(o *Options) {
		o.Rand = rand.New(rand.NewSource(42))
	})

	known := make(map[string]struct{})
	for _, id := range registry.IDs() {
		known[id] = struct{}{}
	}

	for i := 0; i < 20; i++ {
		selection := r.Route(context.Background(), "hello", nil)
		assert.GreaterOrEqual(t, len(selection), 1)
		assert.LessOrEqual(t, len(selection), MaxSelection)

		seen := make(map[string]struct{})
		for _, id := range selection {
			_, registered := known[id]
			assert.True(t, registered, "fallback returned unregistered id %q", id)
			_, dup := seen[id]
			assert.False(t, dup, "fallback returned duplicate id %q", id)
			seen[id] = struct{}{}
		}
	}
}

func TestRouteFallbackOnMalformedPayload(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("decision", "mock")
	mock.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return "certainly! the personas are logic_master and critic", nil
	}

	r := New(mock, registry, func(o *Options) {
		o.Rand = rand.New(rand.NewSource(7))
	})
	selection := r.Route(context.Background(), "hello", nil)
	assert.GreaterOrEqual(t, len(selection), 1)
	assert.LessOrEqual(t, len(selection), MaxSelection)
	for _, id := range selection {
		_, ok := registry.Get(id)
		assert.True(t, ok)
	}
}

func TestRoutePassesUnknownIDsThrough(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("decision", "mock")
	mock.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return `{"personas":["ghost"]}`, nil
	}

	r := New(mock, registry)
	assert.Equal(t, []string{"ghost"}, r.Route(context.Background(), "hello", nil))
}
