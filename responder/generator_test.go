package responder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/model"
	"github.com/hupe1980/agora/persona"
)

func newTestRegistry(t *testing.T) *persona.Registry {
	t.Helper()
	registry, err := persona.NewRegistry()
	require.NoError(t, err)
	return registry
}

func collect(t *testing.T, ch <-chan core.GeneratedResponse) []core.GeneratedResponse {
	t.Helper()
	var out []core.GeneratedResponse
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, r)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for generation results")
		}
	}
}

func TestGenerateOneResultPerPersona(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("completion", "mock")
	mock.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return "a generated reply", nil
	}

	g := New(mock, registry)
	selection := []string{"logic_master", "critic", "optimist"}
	results := collect(t, g.Generate(context.Background(), selection, nil))

	require.Len(t, results, 3)
	seen := make(map[string]bool)
	for _, r := range results {
		assert.True(t, r.Succeeded)
		assert.NotEmpty(t, r.Text)
		seen[r.PersonaID] = true
	}
	for _, id := range selection {
		assert.True(t, seen[id], "missing result for %s", id)
	}
}

func TestGenerateUsesPersonaInstruction(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("completion", "mock")

	var mu sync.Mutex
	instructions := make(map[string]struct{})
	mock.CompleteFn = func(_ context.Context, req model.Request) (string, error) {
		mu.Lock()
		instructions[req.Instructions] = struct{}{}
		mu.Unlock()
		return "ok", nil
	}

	g := New(mock, registry)
	collect(t, g.Generate(context.Background(), []string{"logic_master", "troll"}, nil))

	logic, _ := registry.Get("logic_master")
	troll, _ := registry.Get("troll")
	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, instructions, logic.Instruction)
	assert.Contains(t, instructions, troll.Instruction)
}

func TestGenerateEmptySelection(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("completion", "mock")

	g := New(mock, registry)
	results := collect(t, g.Generate(context.Background(), nil, nil))
	assert.Empty(t, results)
	assert.Empty(t, mock.Requests())
}

func TestGenerateFailureIsolation(t *testing.T) {
	registry := newTestRegistry(t)
	critic, _ := registry.Get("critic")
	mock := model.NewMockModel("completion", "mock")
	mock.CompleteFn = func(_ context.Context, req model.Request) (string, error) {
		if req.Instructions == critic.Instruction {
			return "", fmt.Errorf("provider error")
		}
		return "a proper reply", nil
	}

	g := New(mock, registry)
	results := collect(t, g.Generate(context.Background(), []string{"logic_master", "critic"}, nil))
	require.Len(t, results, 2)

	byID := make(map[string]core.GeneratedResponse)
	for _, r := range results {
		byID[r.PersonaID] = r
	}
	assert.True(t, byID["logic_master"].Succeeded)
	assert.Equal(t, "a proper reply", byID["logic_master"].Text)
	assert.False(t, byID["critic"].Succeeded)
	assert.Equal(t, cannedFallbacks["critic"], byID["critic"].Text)
}

func TestGenerateEmptyCompletionIsFailure(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("completion", "mock")
	mock.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return "   \n", nil
	}

	g := New(mock, registry)
	results := collect(t, g.Generate(context.Background(), []string{"optimist"}, nil))
	require.Len(t, results, 1)
	assert.False(t, results[0].Succeeded)
	assert.Equal(t, cannedFallbacks["optimist"], results[0].Text)
}

func TestGenerateUnregisteredPersona(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("completion", "mock")

	g := New(mock, registry)
	results := collect(t, g.Generate(context.Background(), []string{"ghost"}, nil))
	require.Len(t, results, 1)
	assert.False(t, results[0].Succeeded)
	assert.Equal(t, genericFallback, results[0].Text)
	assert.Empty(t, mock.Requests(), "no call should be made for an unknown persona")
}

func TestGenerateCallTimeout(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("completion", "mock")
	mock.CompleteFn = func(ctx context.Context, _ model.Request) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
			return "too late", nil
		}
	}

	g := New(mock, registry, func(o *Options) {
		o.CallTimeout = 10 * time.Millisecond
	})
	results := collect(t, g.Generate(context.Background(), []string{"diplomat"}, nil))
	require.Len(t, results, 1)
	assert.False(t, results[0].Succeeded)
	assert.Equal(t, cannedFallbacks["diplomat"], results[0].Text)
}

func TestGenerateBoundedConcurrency(t *testing.T) {
	registry := newTestRegistry(t)
	mock := model.NewMockModel("completion", "mock")

	var inFlight, peak atomic.Int32
	mock.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return "ok", nil
	}

	g := New(mock, registry)
	selection := registry.IDs()[:8]
	results := collect(t, g.Generate(context.Background(), selection, nil))
	assert.Len(t, results, 8)
	assert.LessOrEqual(t, peak.Load(), int32(MaxInFlight))
}

func TestFallbackTextKnownAndGeneric(t *testing.T) {
	for _, id := range []string{"logic_master", "troll", "redditor"} {
		text := fallbackText(id)
		assert.Equal(t, cannedFallbacks[id], text)
		assert.NotEmpty(t, strings.TrimSpace(text))
	}
	assert.Equal(t, genericFallback, fallbackText("nobody"))
}
