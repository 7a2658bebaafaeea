// Package orchestrator ties the response pipeline together: build context,
// route personas, fan out generation, persist each result as a reply and
// publish timeline events, all detached from the request that triggered it.
//
// The triggering caller is never blocked by agent latency and never sees a
// pipeline failure: every error inside a run is caught and logged. Side
// effects within one run are strictly ordered (typing event before any reply
// event, persist before emit); no ordering is guaranteed across concurrently
// running orchestrations.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/agora/conversation"
	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/logging"
	"github.com/hupe1980/agora/persona"
	"github.com/hupe1980/agora/responder"
	"github.com/hupe1980/agora/router"
	"github.com/hupe1980/agora/timeline"
)

// Options configures an Orchestrator instance.
//
// Use functional options with New to override defaults.
type Options struct {
	// Logger for run diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Orchestrator coordinates context building, persona routing, response
// generation, persistence and event emission for orchestration runs.
type Orchestrator struct {
	builder   *conversation.Builder
	router    *router.Router
	generator *responder.Generator
	replies   core.ReplyStore
	resolver  *persona.Resolver
	hub       *timeline.Hub
	logger    logging.Logger
}

// Run is one execution of the pipeline triggered by a new thread or reply.
// Its state can be observed concurrently; Wait blocks until the run reaches
// StateCompleted.
type Run struct {
	// ID uniquely identifies the run for log correlation.
	ID string

	mu    sync.Mutex
	state State
	done  chan struct{}
}

// State returns the run's current pipeline state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Wait blocks until the run completes. Primarily useful in tests; production
// callers fire and forget.
func (r *Run) Wait() { <-r.done }

func (r *Run) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// New creates an Orchestrator from its collaborators.
func New(
	builder *conversation.Builder,
	rt *router.Router,
	generator *responder.Generator,
	replies core.ReplyStore,
	resolver *persona.Resolver,
	hub *timeline.Hub,
	optFns ...func(o *Options),
) *Orchestrator {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{
		builder:   builder,
		router:    rt,
		generator: generator,
		replies:   replies,
		resolver:  resolver,
		hub:       hub,
		logger:    opts.Logger,
	}
}

// TriggerThread starts a detached orchestration run for a newly created
// thread and returns immediately. The run outlives the caller; failures
// inside it are logged, never propagated.
func (o *Orchestrator) TriggerThread(thread core.Thread) *Run {
	return o.trigger(thread, thread.Body)
}

// TriggerReply starts a detached orchestration run for a new human reply on
// a thread. The reply must already be persisted so the context builder picks
// it up as the latest in-thread message.
func (o *Orchestrator) TriggerReply(thread core.Thread, trigger core.Reply) *Run {
	return o.trigger(thread, trigger.Body)
}

func (o *Orchestrator) trigger(thread core.Thread, latest string) *Run {
	run := &Run{ID: core.NewID(), state: StateIdle, done: make(chan struct{})}
	go func() {
		defer close(run.done)
		defer func() {
			if rec := recover(); rec != nil {
				o.logger.Error("orchestration run panicked",
					"run_id", run.ID, "thread_id", thread.ID, "panic", rec)
				run.setState(StateCompleted)
			}
		}()
		// Detached from the triggering request: the run owns its lifetime
		// and is never cancelled once started.
		o.execute(context.Background(), run, thread, latest)
	}()
	return run
}

// execute drives the run through its states. The trigger echo event (when
// applicable) is published by the live-channel layer before this run starts,
// so the per-run ordering echo < typing < replies holds.
func (o *Orchestrator) execute(ctx context.Context, run *Run, thread core.Thread, latest string) {
	start := time.Now()
	defer run.setState(StateCompleted)

	history, err := o.builder.Build(ctx, thread)
	if err != nil {
		o.logger.Error("context build failed, aborting run",
			"run_id", run.ID, "thread_id", thread.ID, "error", err)
		return
	}
	run.setState(StateContextBuilt)

	selection := o.router.Route(ctx, latest, history)
	run.setState(StateRouted)
	if len(selection) == 0 {
		o.logger.Info("no personas selected",
			"run_id", run.ID, "thread_id", thread.ID, "duration", time.Since(start))
		return
	}

	if names := o.resolveNames(run, selection); len(names) > 0 {
		o.hub.Publish(core.NewTypingEvent(thread.ID, names))
	}

	run.setState(StateGenerating)
	persisted := 0
	for response := range o.generator.Generate(ctx, selection, history) {
		if o.persistAndEmit(ctx, run, thread, response) {
			persisted++
		}
	}

	o.logger.Info("orchestration run completed",
		"run_id", run.ID, "thread_id", thread.ID,
		"selected", len(selection), "persisted", persisted, "duration", time.Since(start))
}

// resolveNames maps the selection to display names for the typing event.
// A persona without a backing participant is an operational error, not a
// silent drop: it is logged here and its reply will be skipped at the
// persist step.
func (o *Orchestrator) resolveNames(run *Run, selection []string) []string {
	names := make([]string, 0, len(selection))
	for _, personaID := range selection {
		participant, err := o.resolver.Resolve(personaID)
		if err != nil {
			o.logger.Error("selected persona has no backing participant",
				"run_id", run.ID, "persona_id", personaID, "error", err)
			continue
		}
		names = append(names, participant.DisplayName)
	}
	return names
}

// persistAndEmit stores one generated response as a reply and publishes its
// timeline event. Persist-then-emit is one logical step: no event is ever
// emitted for a reply that failed to persist, and a failure here never
// aborts sibling personas' processing.
func (o *Orchestrator) persistAndEmit(ctx context.Context, run *Run, thread core.Thread, response core.GeneratedResponse) bool {
	participant, err := o.resolver.Resolve(response.PersonaID)
	if err != nil {
		o.logger.Error("generated response has no backing participant, reply lost",
			"run_id", run.ID, "persona_id", response.PersonaID, "error", err)
		return false
	}

	reply, err := o.replies.Create(ctx, core.NewReply(thread.ID, participant.ID, response.Text))
	if err != nil {
		o.logger.Error("failed to persist generated reply",
			"run_id", run.ID, "persona_id", response.PersonaID, "error", err)
		return false
	}

	o.hub.Publish(core.NewReplyEvent(reply, participant))
	o.logger.Debug("agent reply persisted and published",
		"run_id", run.ID, "persona_id", response.PersonaID,
		"reply_id", reply.ID, "succeeded", response.Succeeded)
	return true
}
