package store

import (
	"context"
	"sort"
	"sync"

	"github.com/hupe1980/agora/core"
)

// InMemoryThreadStore is a volatile core.ThreadStore implementation.
type InMemoryThreadStore struct {
	mu      sync.RWMutex
	threads map[string]core.Thread
}

// NewInMemoryThreadStore constructs an empty in-memory thread store.
func NewInMemoryThreadStore() *InMemoryThreadStore {
	return &InMemoryThreadStore{threads: make(map[string]core.Thread)}
}

// Create stores a new thread.
func (s *InMemoryThreadStore) Create(_ context.Context, t core.Thread) (core.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = core.NewID()
	}
	s.threads[t.ID] = t
	return t, nil
}

// Get returns the thread with the given id.
func (s *InMemoryThreadStore) Get(_ context.Context, id string) (core.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.threads[id]
	if !ok {
		return core.Thread{}, core.ErrNotFound
	}
	return t, nil
}

// ListByTopic returns the topic's threads most recent first, per the
// core.ThreadStore contract.
func (s *InMemoryThreadStore) ListByTopic(_ context.Context, topicID string) ([]core.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Thread
	for _, t := range s.threads {
		if t.TopicID == topicID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
