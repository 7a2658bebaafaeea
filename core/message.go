package core

// MessageRole tags a conversation message for the decision and generation
// capabilities. The ordering contract of the context builder depends on role
// placement: context messages always precede in-thread messages.
type MessageRole string

const (
	// MessageRoleUser tags content authored by a human participant.
	MessageRoleUser MessageRole = "user"
	// MessageRoleAgent tags content authored by an agent participant.
	MessageRoleAgent MessageRole = "agent"
	// MessageRoleContext tags bounded cross-thread grounding from sibling
	// threads. Never interleaved with in-thread messages.
	MessageRoleContext MessageRole = "context"
)

// Message is a transient, in-memory role-tagged conversation segment produced
// by the context builder and consumed by the router and generator. It is
// never persisted.
type Message struct {
	Role MessageRole `json:"role"`
	Text string      `json:"text"`
}

// NewUserMessage constructs a user-role message.
func NewUserMessage(text string) Message { return Message{Role: MessageRoleUser, Text: text} }

// NewAgentMessage constructs an agent-role message.
func NewAgentMessage(text string) Message { return Message{Role: MessageRoleAgent, Text: text} }

// NewContextMessage constructs a cross-thread context message.
func NewContextMessage(text string) Message { return Message{Role: MessageRoleContext, Text: text} }

// GeneratedResponse is the transient outcome of one persona generation call.
// It is consumed immediately to create a reply and a timeline event, then
// discarded. Succeeded reflects that single call's outcome regardless of
// sibling calls.
type GeneratedResponse struct {
	PersonaID string `json:"persona_id"`
	Text      string `json:"text"`
	Succeeded bool   `json:"succeeded"`
}
