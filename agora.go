// Package agora provides a high-level façade over the discussion platform's
// services (stores, persona registry, timeline hub and the response
// orchestration pipeline) enabling rapid construction of multi-persona
// discussion systems. Most applications interact with this package by:
//  1. Creating an Agora via New() (optionally overriding default in-memory stores)
//  2. Supplying completion models for persona routing and generation
//  3. Creating topics, participants and threads; agent replies are generated
//     in the background and delivered via the timeline hub / live channel
//
// The façade delegates response orchestration to orchestrator.Orchestrator
// while keeping setup and usage ergonomics concise. All defaults are safe for
// local development and testing; production deployments typically supply
// durable store implementations, real model providers and a structured
// logger.
package agora

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hupe1980/agora/conversation"
	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/logging"
	"github.com/hupe1980/agora/model"
	"github.com/hupe1980/agora/orchestrator"
	"github.com/hupe1980/agora/persona"
	"github.com/hupe1980/agora/responder"
	"github.com/hupe1980/agora/router"
	"github.com/hupe1980/agora/server"
	"github.com/hupe1980/agora/store"
	"github.com/hupe1980/agora/timeline"
)

// Options configures the Agora instance.
type Options struct {
	// Stores (default to in-memory implementations if not provided)
	Participants core.ParticipantStore
	Topics       core.TopicStore
	Threads      core.ThreadStore
	Replies      core.ReplyStore
	Reactions    core.ReactionStore
	Bookmarks    core.BookmarkStore

	// RouterModel is the decision capability selecting responding personas.
	// Defaults to a MockModel for offline development.
	RouterModel model.Model

	// GeneratorModel is the completion capability producing persona replies.
	// Defaults to a MockModel for offline development.
	GeneratorModel model.Model

	// Registry is the persona catalog. Defaults to the builtin catalog.
	Registry *persona.Registry

	// ContextWindow bounds cross-thread context in the builder.
	ContextWindow int

	// GenerationTimeout bounds each persona generation call.
	GenerationTimeout time.Duration

	// HubBufferSize sets each live subscriber's event buffer.
	HubBufferSize int

	// DefaultParticipantID attributes live-channel messages without a user id.
	DefaultParticipantID string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Agora is the high-level façade aggregating stores, registry, hub and the
// orchestration pipeline.
type Agora struct {
	opts     Options
	registry *persona.Registry
	resolver *persona.Resolver
	hub      *timeline.Hub
	orch     *orchestrator.Orchestrator
	srv      *server.Server
}

// New creates a new Agora instance with optional overrides. Any unset store
// is initialized with an in-memory implementation, and the persona registry
// is seeded into the participant store (idempotently) before the pipeline is
// wired.
func New(optFns ...func(o *Options)) (*Agora, error) {
	registry, err := persona.NewRegistry()
	if err != nil {
		return nil, err
	}

	opts := Options{
		Participants:      store.NewInMemoryParticipantStore(),
		Topics:            store.NewInMemoryTopicStore(),
		Threads:           store.NewInMemoryThreadStore(),
		Replies:           store.NewInMemoryReplyStore(),
		Reactions:         store.NewInMemoryReactionStore(),
		Bookmarks:         store.NewInMemoryBookmarkStore(),
		RouterModel:       model.NewMockModel("router-mock", "mock"),
		GeneratorModel:    model.NewMockModel("generator-mock", "mock"),
		Registry:          registry,
		ContextWindow:     conversation.DefaultContextWindow,
		GenerationTimeout: responder.DefaultCallTimeout,
		HubBufferSize:     timeline.DefaultBufferSize,
		Logger:            logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	resolver, err := persona.Seed(context.Background(), opts.Registry, opts.Participants)
	if err != nil {
		return nil, fmt.Errorf("seed personas: %w", err)
	}

	hub := timeline.NewHub(func(o *timeline.HubOptions) {
		o.BufferSize = opts.HubBufferSize
		o.Logger = opts.Logger
	})

	builder := conversation.NewBuilder(opts.Threads, opts.Replies, opts.Participants,
		func(o *conversation.BuilderOptions) {
			o.ContextWindow = opts.ContextWindow
			o.Logger = opts.Logger
		})

	rt := router.New(opts.RouterModel, opts.Registry, func(o *router.Options) {
		o.Logger = opts.Logger
	})

	generator := responder.New(opts.GeneratorModel, opts.Registry, func(o *responder.Options) {
		o.CallTimeout = opts.GenerationTimeout
		o.Logger = opts.Logger
	})

	orch := orchestrator.New(builder, rt, generator, opts.Replies, resolver, hub,
		func(o *orchestrator.Options) {
			o.Logger = opts.Logger
		})

	srv := server.New(server.Stores{
		Participants: opts.Participants,
		Topics:       opts.Topics,
		Threads:      opts.Threads,
		Replies:      opts.Replies,
		Reactions:    opts.Reactions,
		Bookmarks:    opts.Bookmarks,
	}, orch, hub, func(o *server.Options) {
		o.DefaultParticipantID = opts.DefaultParticipantID
		o.Logger = opts.Logger
	})

	return &Agora{
		opts:     opts,
		registry: opts.Registry,
		resolver: resolver,
		hub:      hub,
		orch:     orch,
		srv:      srv,
	}, nil
}

// Hub returns the shared timeline hub for direct subscriptions.
func (a *Agora) Hub() *timeline.Hub { return a.hub }

// Registry returns the persona registry.
func (a *Agora) Registry() *persona.Registry { return a.registry }

// Handler returns the HTTP handler serving the REST API and the live channel.
func (a *Agora) Handler() http.Handler { return a.srv }

// CreateTopic persists a new topic.
func (a *Agora) CreateTopic(ctx context.Context, name, description string) (core.Topic, error) {
	return a.opts.Topics.Create(ctx, core.Topic{Name: name, Description: description})
}

// CreateParticipant persists a new human participant.
func (a *Agora) CreateParticipant(ctx context.Context, displayName, bio string) (core.Participant, error) {
	return a.opts.Participants.Create(ctx, core.NewParticipant(displayName, core.RoleHuman, bio))
}

// CreateThread persists a new thread and triggers a detached orchestration
// run. It returns as soon as the thread is stored; agent replies arrive
// later via the hub or a subsequent read of the thread's replies.
func (a *Agora) CreateThread(ctx context.Context, topicID, authorID, body string) (core.Thread, *orchestrator.Run, error) {
	if _, err := a.opts.Topics.Get(ctx, topicID); err != nil {
		return core.Thread{}, nil, fmt.Errorf("create thread: %w", err)
	}
	if _, err := a.opts.Participants.Get(ctx, authorID); err != nil {
		return core.Thread{}, nil, fmt.Errorf("create thread: %w", err)
	}
	thread, err := a.opts.Threads.Create(ctx, core.NewThread(topicID, authorID, body))
	if err != nil {
		return core.Thread{}, nil, err
	}
	return thread, a.orch.TriggerThread(thread), nil
}

// CreateReply persists a new human reply and, when the author is human,
// publishes its echo event and triggers a detached orchestration run,
// mirroring the live channel path.
func (a *Agora) CreateReply(ctx context.Context, threadID, authorID, body string) (core.Reply, *orchestrator.Run, error) {
	thread, err := a.opts.Threads.Get(ctx, threadID)
	if err != nil {
		return core.Reply{}, nil, fmt.Errorf("create reply: %w", err)
	}
	author, err := a.opts.Participants.Get(ctx, authorID)
	if err != nil {
		return core.Reply{}, nil, fmt.Errorf("create reply: %w", err)
	}
	reply, err := a.opts.Replies.Create(ctx, core.NewReply(threadID, authorID, body))
	if err != nil {
		return core.Reply{}, nil, err
	}
	if !author.IsAgent() {
		a.hub.Publish(core.NewReplyEvent(reply, author))
		return reply, a.orch.TriggerReply(thread, reply), nil
	}
	return reply, nil, nil
}
