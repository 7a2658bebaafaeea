package store

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/agora/core"
)

// InMemoryBookmarkStore is a volatile core.BookmarkStore implementation with
// toggle semantics.
type InMemoryBookmarkStore struct {
	mu        sync.RWMutex
	bookmarks map[string]core.Bookmark // keyed by participant+thread
}

// NewInMemoryBookmarkStore constructs an empty in-memory bookmark store.
func NewInMemoryBookmarkStore() *InMemoryBookmarkStore {
	return &InMemoryBookmarkStore{bookmarks: make(map[string]core.Bookmark)}
}

// Toggle adds the bookmark if absent, removes it if present. The boolean
// reports whether the bookmark exists after the call.
func (s *InMemoryBookmarkStore) Toggle(_ context.Context, b core.Bookmark) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := b.ParticipantID + "|" + b.ThreadID
	if _, ok := s.bookmarks[key]; ok {
		delete(s.bookmarks, key)
		return false, nil
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	s.bookmarks[key] = b
	return true, nil
}

// ListByParticipant returns a participant's bookmarks.
func (s *InMemoryBookmarkStore) ListByParticipant(_ context.Context, participantID string) ([]core.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Bookmark
	for _, b := range s.bookmarks {
		if b.ParticipantID == participantID {
			out = append(out, b)
		}
	}
	return out, nil
}
