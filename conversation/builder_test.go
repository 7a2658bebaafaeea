package conversation

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/internal/testutil"
)

func TestBuildInThreadOrdering(t *testing.T) {
	fx := testutil.NewFixture(t)
	alice := fx.Human("alice")
	bot := fx.Agent("ProfessorLogic", "logic")
	topic := fx.Topic("ethics")
	thread := fx.Thread(topic, alice, "Is X ethical?")
	fx.Reply(thread, bot, "Define X first.")
	fx.Reply(thread, alice, "X is lying to protect someone.")
	fx.Reply(thread, bot, "Then it depends on the harm prevented.")

	builder := NewBuilder(fx.Threads, fx.Replies, fx.Participants)
	messages, err := builder.Build(context.Background(), thread)
	require.NoError(t, err)

	// One message for the thread plus one per reply, no context (single thread).
	require.Len(t, messages, 4)
	assert.Equal(t, core.MessageRoleUser, messages[0].Role)
	assert.Equal(t, "alice: Is X ethical?", messages[0].Text)
	assert.Equal(t, core.MessageRoleAgent, messages[1].Role)
	assert.Equal(t, "ProfessorLogic: Define X first.", messages[1].Text)
	assert.Equal(t, core.MessageRoleUser, messages[2].Role)
	assert.Equal(t, core.MessageRoleAgent, messages[3].Role)
	assert.Equal(t, "ProfessorLogic: Then it depends on the harm prevented.", messages[3].Text)
}

func TestBuildCrossThreadContext(t *testing.T) {
	fx := testutil.NewFixture(t)
	alice := fx.Human("alice")
	topic := fx.Topic("ethics")
	older := fx.Thread(topic, alice, "first sibling")
	newer := fx.Thread(topic, alice, "second sibling")
	current := fx.Thread(topic, alice, "the question")
	fx.Reply(current, alice, "a reply")

	builder := NewBuilder(fx.Threads, fx.Replies, fx.Participants)
	messages, err := builder.Build(context.Background(), current)
	require.NoError(t, err)
	require.Len(t, messages, 4)

	// Context first, most recent sibling leading, then the in-thread block.
	assert.Equal(t, core.MessageRoleContext, messages[0].Role)
	assert.Contains(t, messages[0].Text, newer.Body)
	assert.True(t, strings.HasPrefix(messages[0].Text, "Recent topic discussion - alice:"))
	assert.Equal(t, core.MessageRoleContext, messages[1].Role)
	assert.Contains(t, messages[1].Text, older.Body)
	assert.Equal(t, core.MessageRoleUser, messages[2].Role)
	assert.Equal(t, core.MessageRoleUser, messages[3].Role)

	// Context never interleaves with in-thread messages.
	for i, msg := range messages {
		if msg.Role == core.MessageRoleContext {
			assert.Less(t, i, 2)
		}
	}
}

func TestBuildContextWindowBounds(t *testing.T) {
	fx := testutil.NewFixture(t)
	alice := fx.Human("alice")
	topic := fx.Topic("ethics")
	for i := 0; i < 5; i++ {
		fx.Thread(topic, alice, "sibling")
	}
	current := fx.Thread(topic, alice, "the question")

	builder := NewBuilder(fx.Threads, fx.Replies, fx.Participants, func(o *BuilderOptions) {
		o.ContextWindow = 2
	})
	messages, err := builder.Build(context.Background(), current)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, core.MessageRoleContext, messages[0].Role)
	assert.Equal(t, core.MessageRoleContext, messages[1].Role)
	assert.Equal(t, core.MessageRoleUser, messages[2].Role)
}

func TestBuildContextWindowDisabled(t *testing.T) {
	fx := testutil.NewFixture(t)
	alice := fx.Human("alice")
	topic := fx.Topic("ethics")
	fx.Thread(topic, alice, "sibling")
	current := fx.Thread(topic, alice, "the question")

	builder := NewBuilder(fx.Threads, fx.Replies, fx.Participants, func(o *BuilderOptions) {
		o.ContextWindow = 0
	})
	messages, err := builder.Build(context.Background(), current)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, core.MessageRoleUser, messages[0].Role)
}

func TestBuildUnknownAuthorFails(t *testing.T) {
	fx := testutil.NewFixture(t)
	topic := fx.Topic("ethics")
	thread := core.NewThread(topic.ID, "missing-author", "body")
	thread, err := fx.Threads.Create(context.Background(), thread)
	require.NoError(t, err)

	builder := NewBuilder(fx.Threads, fx.Replies, fx.Participants)
	_, err = builder.Build(context.Background(), thread)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
