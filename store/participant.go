package store

import (
	"context"
	"sort"
	"sync"

	"github.com/hupe1980/agora/core"
)

// InMemoryParticipantStore is a volatile core.ParticipantStore implementation
// storing participants in a process-local map. Safe for concurrent access.
// A secondary display-name index backs the idempotent seeding path without
// scanning on the hot path.
type InMemoryParticipantStore struct {
	mu     sync.RWMutex
	byID   map[string]core.Participant
	byName map[string]string // display name -> id
}

// NewInMemoryParticipantStore constructs an empty in-memory participant store.
func NewInMemoryParticipantStore() *InMemoryParticipantStore {
	return &InMemoryParticipantStore{
		byID:   make(map[string]core.Participant),
		byName: make(map[string]string),
	}
}

// Create stores a new participant.
func (s *InMemoryParticipantStore) Create(_ context.Context, p core.Participant) (core.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = core.NewID()
	}
	s.byID[p.ID] = p
	s.byName[p.DisplayName] = p.ID
	return p, nil
}

// Get returns the participant with the given id.
func (s *InMemoryParticipantStore) Get(_ context.Context, id string) (core.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return core.Participant{}, core.ErrNotFound
	}
	return p, nil
}

// GetByName returns the participant with the given display name.
func (s *InMemoryParticipantStore) GetByName(_ context.Context, displayName string) (core.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[displayName]
	if !ok {
		return core.Participant{}, core.ErrNotFound
	}
	return s.byID[id], nil
}

// GetOrCreateByName reuses an existing participant with the display name or
// creates one with the given role and bio. The check and the create run under
// a single write lock so concurrent seeders cannot race a duplicate.
func (s *InMemoryParticipantStore) GetOrCreateByName(_ context.Context, displayName string, role core.ParticipantRole, bio string) (core.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byName[displayName]; ok {
		return s.byID[id], nil
	}
	p := core.NewParticipant(displayName, role, bio)
	s.byID[p.ID] = p
	s.byName[p.DisplayName] = p.ID
	return p, nil
}

// List returns all participants ordered by display name.
func (s *InMemoryParticipantStore) List(_ context.Context) ([]core.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Participant, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}
