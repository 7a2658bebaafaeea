package persona

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/agora/core"
)

// Resolver maps persona ids to their backing agent participants. The mapping
// is built once during seeding and then only read, so lookups on the
// orchestration hot path never touch the participant store. Safe for
// concurrent use.
type Resolver struct {
	mu           sync.RWMutex
	participants map[string]core.Participant // persona id -> participant
}

// Resolve returns the agent participant backing a persona id. A persona that
// was never seeded (or whose identity record is missing) yields
// core.ErrUnknownPersona; callers must surface this rather than dropping the
// response silently.
func (r *Resolver) Resolve(personaID string) (core.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.participants[personaID]
	if !ok {
		return core.Participant{}, fmt.Errorf("resolve persona %q: %w", personaID, core.ErrUnknownPersona)
	}
	return p, nil
}

// Seed idempotently loads every registered persona into the participant
// store: an existing participant with the persona's display name is reused,
// otherwise one is created with the agent role. It returns a Resolver over
// the resulting persona -> participant mapping.
func Seed(ctx context.Context, registry *Registry, participants core.ParticipantStore) (*Resolver, error) {
	resolver := &Resolver{participants: make(map[string]core.Participant, registry.Len())}
	for _, p := range registry.List() {
		participant, err := participants.GetOrCreateByName(ctx, p.DisplayName, core.RoleAgent, p.Description)
		if err != nil {
			return nil, fmt.Errorf("seed persona %q: %w", p.ID, err)
		}
		resolver.participants[p.ID] = participant
	}
	return resolver, nil
}
