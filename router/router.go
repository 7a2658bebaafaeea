// Package router decides which personas should respond to the latest message
// in a thread. The decision capability is treated as unreliable: any failure
// (unreachable provider, malformed payload, unparsable structured output)
// degrades to a randomized selection from the registry and is logged, never
// surfaced to the caller.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/internal/util"
	"github.com/hupe1980/agora/logging"
	"github.com/hupe1980/agora/model"
	"github.com/hupe1980/agora/persona"
)

// MaxSelection caps how many personas may respond to a single message.
const MaxSelection = 3

// personaSelection is the structured payload the decision capability is
// constrained to return.
type personaSelection struct {
	Personas []string `json:"personas" description:"Ids of the personas that should reply, at most 3."`
}

// Options configures a Router instance.
//
// Use functional options with New to override defaults.
type Options struct {
	// Logger for fallback diagnostics. Defaults to NoOp.
	Logger logging.Logger

	// Rand is the randomness source for fallback selection. Defaults to a
	// time-seeded source; tests inject a fixed seed.
	Rand *rand.Rand
}

// Router selects up to MaxSelection personas for a triggering message using
// the decision capability, degrading to a random sample on any failure.
type Router struct {
	model    model.Model
	registry *persona.Registry
	logger   logging.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Router over the given decision model and persona registry.
func New(m model.Model, registry *persona.Registry, optFns ...func(o *Options)) *Router {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Router{
		model:    m,
		registry: registry,
		logger:   opts.Logger,
		rng:      rng,
	}
}

// Route returns the ids of the personas that should respond to the latest
// message, at most MaxSelection, in the priority order implied by the
// decision capability. An empty result is valid (no persona responds).
// Route never returns an error: decision failures fall back to a random
// sample of 1-3 registered personas. Unknown ids returned by the decision
// capability are passed through; callers are expected to be defensive.
func (r *Router) Route(ctx context.Context, latest string, history []core.Message) []string {
	req := model.Request{
		Instructions: r.instruction(),
		Messages: append(append([]core.Message{}, history...),
			core.NewUserMessage(fmt.Sprintf("User just said: %s\n\nWhich persona(s) should reply?", latest))),
		Schema:     util.CreateSchema(personaSelection{}),
		SchemaName: "persona_selection",
	}

	raw, err := r.model.Complete(ctx, req)
	if err != nil {
		r.logger.Warn("persona decision call failed, using random fallback", "error", err)
		return r.fallback()
	}

	var selection personaSelection
	if err := json.Unmarshal([]byte(raw), &selection); err != nil {
		r.logger.Warn("persona decision payload unparsable, using random fallback",
			"error", err, "payload", raw)
		return r.fallback()
	}

	if len(selection.Personas) > MaxSelection {
		selection.Personas = selection.Personas[:MaxSelection]
	}
	return selection.Personas
}

// instruction builds the constrained routing directive naming every
// registered persona id.
func (r *Router) instruction() string {
	return fmt.Sprintf(
		"You are a routing assistant. Decide which persona(s) should respond based on the conversation. "+
			"Available personas: %s. Only %d personas max can be selected. "+
			"Only return their ids as a JSON list.",
		strings.Join(r.registry.IDs(), ", "), MaxSelection)
}

// fallback selects 1-3 registered personas uniformly at random.
func (r *Router) fallback() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 1 + r.rng.Intn(MaxSelection)
	return r.registry.Sample(r.rng, n)
}
