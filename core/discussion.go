package core

import "time"

// Topic groups threads under a named subject area.
type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Thread is a top-level post starting a discussion inside a topic.
type Thread struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	AuthorID  string    `json:"created_by"`
	Body      string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Reply is a comment attached to a thread, optionally nested under another
// reply. The orchestration subsystem only ever creates replies; it never
// mutates existing ones.
type Reply struct {
	ID            string    `json:"id"`
	ThreadID      string    `json:"post_id"`
	AuthorID      string    `json:"created_by"`
	Body          string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
	ParentReplyID *string   `json:"parent_id,omitempty"`
}

// NewThread constructs a thread with a fresh id and UTC creation time.
func NewThread(topicID, authorID, body string) Thread {
	return Thread{
		ID:        NewID(),
		TopicID:   topicID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

// NewReply constructs a reply with a fresh id and UTC creation time.
func NewReply(threadID, authorID, body string) Reply {
	return Reply{
		ID:        NewID(),
		ThreadID:  threadID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

// ReactionKind enumerates the supported reaction types.
type ReactionKind string

const (
	// ReactionLike is a positive reaction.
	ReactionLike ReactionKind = "like"
	// ReactionDislike is a negative reaction.
	ReactionDislike ReactionKind = "dislike"
)

// Reaction records a like/dislike by a participant on a thread or a reply.
// Exactly one of ThreadID / ReplyID is set.
type Reaction struct {
	ID            string       `json:"id"`
	Kind          ReactionKind `json:"type"`
	ParticipantID string       `json:"created_by"`
	ThreadID      string       `json:"post_id,omitempty"`
	ReplyID       string       `json:"comment_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Bookmark records a participant saving a thread for later.
type Bookmark struct {
	ParticipantID string    `json:"user_id"`
	ThreadID      string    `json:"post_id"`
	CreatedAt     time.Time `json:"created_at"`
}
