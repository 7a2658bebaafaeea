// Package testutil contains helper builders used across tests to reduce
// boilerplate when constructing discussion fixtures (participants, topics,
// threads, replies) in the in-memory stores. These helpers are intentionally
// minimal and are not intended for production usage.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/store"
)

// Fixture bundles in-memory stores pre-wired for a test and offers fluent
// helpers that fail the test on store errors.
//
// Example:
//
//	fx := testutil.NewFixture(t)
//	alice := fx.Human("alice")
//	topic := fx.Topic("ethics")
//	thread := fx.Thread(topic, alice, "Is X ethical?")
type Fixture struct {
	t *testing.T

	Participants *store.InMemoryParticipantStore
	Topics       *store.InMemoryTopicStore
	Threads      *store.InMemoryThreadStore
	Replies      *store.InMemoryReplyStore

	clock time.Time
}

// NewFixture creates a fixture with empty in-memory stores.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	return &Fixture{
		t:            t,
		Participants: store.NewInMemoryParticipantStore(),
		Topics:       store.NewInMemoryTopicStore(),
		Threads:      store.NewInMemoryThreadStore(),
		Replies:      store.NewInMemoryReplyStore(),
		clock:        time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so creation-time ordering in
// fixtures is deterministic.
func (f *Fixture) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

// Human creates a human participant.
func (f *Fixture) Human(name string) core.Participant {
	f.t.Helper()
	p, err := f.Participants.Create(context.Background(), core.NewParticipant(name, core.RoleHuman, ""))
	require.NoError(f.t, err)
	return p
}

// Agent creates an agent participant.
func (f *Fixture) Agent(name, bio string) core.Participant {
	f.t.Helper()
	p, err := f.Participants.Create(context.Background(), core.NewParticipant(name, core.RoleAgent, bio))
	require.NoError(f.t, err)
	return p
}

// Topic creates a topic.
func (f *Fixture) Topic(name string) core.Topic {
	f.t.Helper()
	topic, err := f.Topics.Create(context.Background(), core.Topic{Name: name})
	require.NoError(f.t, err)
	return topic
}

// Thread creates a thread with a deterministic creation time.
func (f *Fixture) Thread(topic core.Topic, author core.Participant, body string) core.Thread {
	f.t.Helper()
	thread := core.NewThread(topic.ID, author.ID, body)
	thread.CreatedAt = f.tick()
	thread, err := f.Threads.Create(context.Background(), thread)
	require.NoError(f.t, err)
	return thread
}

// Reply creates a reply with a deterministic creation time.
func (f *Fixture) Reply(thread core.Thread, author core.Participant, body string) core.Reply {
	f.t.Helper()
	reply := core.NewReply(thread.ID, author.ID, body)
	reply.CreatedAt = f.tick()
	reply, err := f.Replies.Create(context.Background(), reply)
	require.NoError(f.t, err)
	return reply
}
