// Package conversation assembles the ordered, role-tagged message sequence
// supplied to the persona router and the response generator. The ordering is
// a contract both rely on to interpret "latest message" correctly:
// cross-thread context (most recent first) always precedes the in-thread
// messages, and in-thread messages are strictly ascending by creation time.
package conversation

import (
	"context"
	"fmt"

	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/logging"
)

// DefaultContextWindow is the number of sibling threads included as
// cross-thread grounding.
const DefaultContextWindow = 3

// BuilderOptions configures a Builder instance.
//
// Use functional options with NewBuilder to override defaults.
type BuilderOptions struct {
	// ContextWindow bounds how many recent sibling threads from the same
	// topic are prepended as context messages. Zero disables cross-thread
	// context.
	ContextWindow int

	// Logger for diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Builder reconstructs conversation context for a thread from the backing
// stores. It only reads; it never mutates stored entities.
type Builder struct {
	threads      core.ThreadStore
	replies      core.ReplyStore
	participants core.ParticipantStore
	window       int
	logger       logging.Logger
}

// NewBuilder creates a context builder over the given stores.
func NewBuilder(threads core.ThreadStore, replies core.ReplyStore, participants core.ParticipantStore, optFns ...func(o *BuilderOptions)) *Builder {
	opts := BuilderOptions{
		ContextWindow: DefaultContextWindow,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Builder{
		threads:      threads,
		replies:      replies,
		participants: participants,
		window:       opts.ContextWindow,
		logger:       opts.Logger,
	}
}

// Build returns the ordered message sequence for a thread: up to the
// configured window of sibling-thread context messages, then the thread body,
// then every existing reply in ascending creation-time order. For a thread
// with N replies the result always contains exactly N+1 in-thread messages.
func (b *Builder) Build(ctx context.Context, thread core.Thread) ([]core.Message, error) {
	messages, err := b.topicContext(ctx, thread)
	if err != nil {
		return nil, err
	}

	author, err := b.participants.Get(ctx, thread.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("build context: thread author %s: %w", thread.AuthorID, err)
	}
	messages = append(messages, authoredMessage(author, thread.Body))

	replies, err := b.replies.ListByThread(ctx, thread.ID)
	if err != nil {
		return nil, fmt.Errorf("build context: list replies for %s: %w", thread.ID, err)
	}
	for _, reply := range replies {
		replyAuthor, err := b.participants.Get(ctx, reply.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("build context: reply author %s: %w", reply.AuthorID, err)
		}
		messages = append(messages, authoredMessage(replyAuthor, reply.Body))
	}

	b.logger.Debug("conversation context built",
		"thread_id", thread.ID, "messages", len(messages), "replies", len(replies))

	return messages, nil
}

// topicContext returns up to window sibling threads from the same topic,
// most recent first, tagged with the context role so they are never conflated
// with the active exchange.
func (b *Builder) topicContext(ctx context.Context, thread core.Thread) ([]core.Message, error) {
	if b.window <= 0 {
		return nil, nil
	}
	siblings, err := b.threads.ListByTopic(ctx, thread.TopicID)
	if err != nil {
		return nil, fmt.Errorf("build context: list topic threads for %s: %w", thread.TopicID, err)
	}

	var messages []core.Message
	for _, sibling := range siblings {
		if sibling.ID == thread.ID {
			continue
		}
		author, err := b.participants.Get(ctx, sibling.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("build context: sibling author %s: %w", sibling.AuthorID, err)
		}
		messages = append(messages, core.NewContextMessage(
			fmt.Sprintf("Recent topic discussion - %s: %s", author.DisplayName, sibling.Body)))
		if len(messages) == b.window {
			break
		}
	}
	return messages, nil
}

// authoredMessage maps an author's role to the message role and prefixes the
// text with the display name for disambiguation.
func authoredMessage(author core.Participant, body string) core.Message {
	text := fmt.Sprintf("%s: %s", author.DisplayName, body)
	if author.IsAgent() {
		return core.NewAgentMessage(text)
	}
	return core.NewUserMessage(text)
}
