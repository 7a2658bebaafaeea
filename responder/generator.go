// Package responder fans out one generation call per selected persona against
// the completion capability and fans back in as each completes. Concurrency
// is bounded, per-call failures are isolated, and every failure yields a
// deterministic canned reply so a selected persona always produces a result.
package responder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/logging"
	"github.com/hupe1980/agora/model"
	"github.com/hupe1980/agora/persona"
)

const (
	// MaxInFlight caps simultaneous outbound generation calls regardless of
	// selection size.
	MaxInFlight = 5

	// DefaultCallTimeout bounds a single generation call so a hung provider
	// cannot hold a persona's slot indefinitely.
	DefaultCallTimeout = 60 * time.Second
)

// Options configures a Generator instance.
//
// Use functional options with New to override defaults.
type Options struct {
	// CallTimeout bounds each generation call. Defaults to DefaultCallTimeout.
	CallTimeout time.Duration

	// Logger for per-call diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Generator runs the selected personas' generation calls concurrently with
// bounded parallelism and per-call failure isolation.
type Generator struct {
	model    model.Model
	registry *persona.Registry
	timeout  time.Duration
	logger   logging.Logger
}

// New creates a Generator over the given completion model and persona
// registry.
func New(m model.Model, registry *persona.Registry, optFns ...func(o *Options)) *Generator {
	opts := Options{
		CallTimeout: DefaultCallTimeout,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Generator{
		model:    m,
		registry: registry,
		timeout:  opts.CallTimeout,
		logger:   opts.Logger,
	}
}

// Generate produces exactly one GeneratedResponse per selected persona id,
// delivered on the returned channel in completion order (not submission
// order). The channel is closed once all personas have completed. At most
// min(len(selection), MaxInFlight) calls are in flight simultaneously. An
// empty selection yields an immediately closed channel with no calls made.
//
// A persona's failure (timeout, provider error, unknown id) never cancels or
// affects sibling calls; it produces a result with Succeeded=false and that
// persona's canned fallback text.
func (g *Generator) Generate(ctx context.Context, selection []string, history []core.Message) <-chan core.GeneratedResponse {
	out := make(chan core.GeneratedResponse, len(selection))
	if len(selection) == 0 {
		close(out)
		return out
	}

	go func() {
		defer close(out)
		var grp errgroup.Group
		grp.SetLimit(min(len(selection), MaxInFlight))
		for _, personaID := range selection {
			grp.Go(func() error {
				out <- g.generateOne(ctx, personaID, history)
				return nil
			})
		}
		// Workers never return errors; failure is encoded per result.
		_ = grp.Wait()
	}()

	return out
}

// generateOne runs a single persona's generation call with a bounded timeout.
func (g *Generator) generateOne(ctx context.Context, personaID string, history []core.Message) core.GeneratedResponse {
	p, ok := g.registry.Get(personaID)
	if !ok {
		// Defensive: the decision capability may return ids it invented.
		g.logger.Warn("generation requested for unregistered persona", "persona_id", personaID)
		return core.GeneratedResponse{PersonaID: personaID, Text: genericFallback, Succeeded: false}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.model.Complete(callCtx, model.Request{
		Instructions: p.Instruction,
		Messages:     history,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("empty completion")
	}
	if err != nil {
		g.logger.Warn("persona generation failed, using canned fallback",
			"persona_id", personaID, "duration", time.Since(start), "error", err)
		return core.GeneratedResponse{PersonaID: personaID, Text: fallbackText(personaID), Succeeded: false}
	}

	g.logger.Debug("persona generation completed",
		"persona_id", personaID, "duration", time.Since(start))
	return core.GeneratedResponse{PersonaID: personaID, Text: text, Succeeded: true}
}
