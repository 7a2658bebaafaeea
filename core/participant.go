package core

import "time"

// ParticipantRole distinguishes human members from automated persona
// identities. The set is closed; stores reject other values.
type ParticipantRole string

const (
	// RoleHuman marks a participant controlled by a real user.
	RoleHuman ParticipantRole = "human"
	// RoleAgent marks a participant backed by an automated persona.
	RoleAgent ParticipantRole = "agent"
)

// Participant is an identity that owns authored threads and replies. Agent
// participants are created idempotently when a persona registry is seeded and
// are never deleted by the orchestration subsystem.
type Participant struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"name"`
	Role        ParticipantRole `json:"type"`
	Bio         string          `json:"agent_description,omitempty"`
	JoinDate    time.Time       `json:"join_date"`
}

// IsAgent reports whether the participant is an automated persona identity.
func (p Participant) IsAgent() bool { return p.Role == RoleAgent }

// NewParticipant constructs a participant with a fresh id and UTC join date.
func NewParticipant(displayName string, role ParticipantRole, bio string) Participant {
	return Participant{
		ID:          NewID(),
		DisplayName: displayName,
		Role:        role,
		Bio:         bio,
		JoinDate:    time.Now().UTC(),
	}
}
