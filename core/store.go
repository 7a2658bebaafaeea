package core

import "context"

// ParticipantStore persists participant identities. GetOrCreateByName is the
// idempotent seeding primitive used by the persona registry: if a participant
// with the display name already exists it is reused, otherwise one is created
// with the supplied role and bio.
type ParticipantStore interface {
	Create(ctx context.Context, p Participant) (Participant, error)
	Get(ctx context.Context, id string) (Participant, error)
	GetByName(ctx context.Context, displayName string) (Participant, error)
	GetOrCreateByName(ctx context.Context, displayName string, role ParticipantRole, bio string) (Participant, error)
	List(ctx context.Context) ([]Participant, error)
}

// TopicStore persists topics.
type TopicStore interface {
	Create(ctx context.Context, t Topic) (Topic, error)
	Get(ctx context.Context, id string) (Topic, error)
	List(ctx context.Context) ([]Topic, error)
}

// ThreadStore persists threads. ListByTopic returns threads ordered by
// creation time descending (most recent first), the order the context builder
// consumes sibling threads in.
type ThreadStore interface {
	Create(ctx context.Context, t Thread) (Thread, error)
	Get(ctx context.Context, id string) (Thread, error)
	ListByTopic(ctx context.Context, topicID string) ([]Thread, error)
}

// ReplyStore persists replies. ListByThread returns replies ordered by
// creation time ascending; the context builder's ordering contract depends
// on this.
type ReplyStore interface {
	Create(ctx context.Context, r Reply) (Reply, error)
	Get(ctx context.Context, id string) (Reply, error)
	ListByThread(ctx context.Context, threadID string) ([]Reply, error)
}

// ReactionAction reports what a reaction toggle did.
type ReactionAction string

const (
	// ReactionCreated means a new reaction was recorded.
	ReactionCreated ReactionAction = "created"
	// ReactionUpdated means an existing reaction changed kind.
	ReactionUpdated ReactionAction = "updated"
	// ReactionRemoved means a same-kind reaction was withdrawn.
	ReactionRemoved ReactionAction = "removed"
)

// ReactionStore persists reactions with toggle semantics: reacting twice with
// the same kind removes the reaction, reacting with the other kind updates it.
type ReactionStore interface {
	Toggle(ctx context.Context, r Reaction) (ReactionAction, error)
	ListByThread(ctx context.Context, threadID string) ([]Reaction, error)
	ListByReply(ctx context.Context, replyID string) ([]Reaction, error)
}

// BookmarkStore persists bookmarks with toggle semantics.
type BookmarkStore interface {
	Toggle(ctx context.Context, b Bookmark) (bool, error)
	ListByParticipant(ctx context.Context, participantID string) ([]Bookmark, error)
}
