package store

import (
	"context"
	"sort"
	"sync"

	"github.com/hupe1980/agora/core"
)

// InMemoryReplyStore is a volatile core.ReplyStore implementation.
type InMemoryReplyStore struct {
	mu      sync.RWMutex
	replies map[string]core.Reply
}

// NewInMemoryReplyStore constructs an empty in-memory reply store.
func NewInMemoryReplyStore() *InMemoryReplyStore {
	return &InMemoryReplyStore{replies: make(map[string]core.Reply)}
}

// Create stores a new reply.
func (s *InMemoryReplyStore) Create(_ context.Context, r core.Reply) (core.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = core.NewID()
	}
	s.replies[r.ID] = r
	return r, nil
}

// Get returns the reply with the given id.
func (s *InMemoryReplyStore) Get(_ context.Context, id string) (core.Reply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.replies[id]
	if !ok {
		return core.Reply{}, core.ErrNotFound
	}
	return r, nil
}

// ListByThread returns the thread's replies in ascending creation-time order,
// per the core.ReplyStore contract the context builder relies on.
func (s *InMemoryReplyStore) ListByThread(_ context.Context, threadID string) ([]core.Reply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Reply
	for _, r := range s.replies {
		if r.ThreadID == threadID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
