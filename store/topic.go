package store

import (
	"context"
	"sort"
	"sync"

	"github.com/hupe1980/agora/core"
)

// InMemoryTopicStore is a volatile core.TopicStore implementation.
type InMemoryTopicStore struct {
	mu     sync.RWMutex
	topics map[string]core.Topic
}

// NewInMemoryTopicStore constructs an empty in-memory topic store.
func NewInMemoryTopicStore() *InMemoryTopicStore {
	return &InMemoryTopicStore{topics: make(map[string]core.Topic)}
}

// Create stores a new topic.
func (s *InMemoryTopicStore) Create(_ context.Context, t core.Topic) (core.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = core.NewID()
	}
	s.topics[t.ID] = t
	return t, nil
}

// Get returns the topic with the given id.
func (s *InMemoryTopicStore) Get(_ context.Context, id string) (core.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.topics[id]
	if !ok {
		return core.Topic{}, core.ErrNotFound
	}
	return t, nil
}

// List returns all topics ordered by name.
func (s *InMemoryTopicStore) List(_ context.Context) ([]core.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Topic, 0, len(s.topics))
	for _, t := range s.topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
