package core

import "time"

// Timeline event type discriminators as they appear on the wire.
const (
	// EventTypeReply announces a newly persisted reply (human echo or agent).
	EventTypeReply = "post_reply"
	// EventTypeTyping announces that selected personas are composing replies.
	EventTypeTyping = "post_users_typing"
)

// TimelineEvent is a payload published on the shared timeline channel and
// delivered verbatim (as JSON) to every live-connected client. Events are
// fire-and-forget: there is no persistence or replay.
type TimelineEvent interface {
	// EventType returns the wire discriminator of the event.
	EventType() string
}

// AuthorDetail is the embedded author description carried by reply events so
// clients can render the author without a follow-up read.
type AuthorDetail struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	JoinDate         time.Time `json:"join_date"`
	Type             string    `json:"type"`
	AgentDescription string    `json:"agent_description,omitempty"`
}

// ReplyEvent announces that a reply was persisted. It is emitted once for the
// triggering human message (echo) and once per generated agent reply, always
// after the reply has been stored.
type ReplyEvent struct {
	Type            string       `json:"type"`
	Message         string       `json:"message"`
	PostID          string       `json:"post_id"`
	UserID          string       `json:"user_id"`
	CreatedByDetail AuthorDetail `json:"created_by_detail"`
	CreatedAt       time.Time    `json:"created_at"`
}

// EventType implements TimelineEvent.
func (ReplyEvent) EventType() string { return EventTypeReply }

// NewReplyEvent builds a reply event from a persisted reply and its resolved
// author.
func NewReplyEvent(reply Reply, author Participant) ReplyEvent {
	return ReplyEvent{
		Type:    EventTypeReply,
		Message: reply.Body,
		PostID:  reply.ThreadID,
		UserID:  author.ID,
		CreatedByDetail: AuthorDetail{
			ID:               author.ID,
			Name:             author.DisplayName,
			JoinDate:         author.JoinDate,
			Type:             string(author.Role),
			AgentDescription: author.Bio,
		},
		CreatedAt: reply.CreatedAt,
	}
}

// TypingEvent announces the display names of the personas about to respond to
// a thread. Emitted before any generation call starts.
type TypingEvent struct {
	Type    string   `json:"type"`
	Message []string `json:"message"`
	PostID  string   `json:"post_id"`
}

// EventType implements TimelineEvent.
func (TypingEvent) EventType() string { return EventTypeTyping }

// NewTypingEvent builds a typing event for the given persona display names.
func NewTypingEvent(threadID string, displayNames []string) TypingEvent {
	return TypingEvent{Type: EventTypeTyping, Message: displayNames, PostID: threadID}
}
