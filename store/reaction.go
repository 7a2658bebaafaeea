package store

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/agora/core"
)

// InMemoryReactionStore is a volatile core.ReactionStore implementation with
// toggle semantics: a second same-kind reaction by the same participant on
// the same target removes the first, a different kind updates it in place.
type InMemoryReactionStore struct {
	mu        sync.RWMutex
	reactions map[string]core.Reaction // keyed by participant+target
}

// NewInMemoryReactionStore constructs an empty in-memory reaction store.
func NewInMemoryReactionStore() *InMemoryReactionStore {
	return &InMemoryReactionStore{reactions: make(map[string]core.Reaction)}
}

func reactionKey(r core.Reaction) string {
	return r.ParticipantID + "|" + r.ThreadID + "|" + r.ReplyID
}

// Toggle applies a reaction and reports whether it was created, updated or
// removed.
func (s *InMemoryReactionStore) Toggle(_ context.Context, r core.Reaction) (core.ReactionAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := reactionKey(r)
	if existing, ok := s.reactions[key]; ok {
		if existing.Kind == r.Kind {
			delete(s.reactions, key)
			return core.ReactionRemoved, nil
		}
		existing.Kind = r.Kind
		s.reactions[key] = existing
		return core.ReactionUpdated, nil
	}
	if r.ID == "" {
		r.ID = core.NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.reactions[key] = r
	return core.ReactionCreated, nil
}

// ListByThread returns all reactions recorded against a thread.
func (s *InMemoryReactionStore) ListByThread(_ context.Context, threadID string) ([]core.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Reaction
	for _, r := range s.reactions {
		if r.ThreadID == threadID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListByReply returns all reactions recorded against a reply.
func (s *InMemoryReactionStore) ListByReply(_ context.Context, replyID string) ([]core.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Reaction
	for _, r := range s.reactions {
		if r.ReplyID == replyID {
			out = append(out, r)
		}
	}
	return out, nil
}
