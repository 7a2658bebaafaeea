package agora

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agora/core"
	"github.com/hupe1980/agora/model"
)

func TestNewDefaults(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	assert.NotNil(t, a.Hub())
	assert.NotNil(t, a.Handler())
	assert.Equal(t, 11, a.Registry().Len())
}

func TestCreateThreadEndToEnd(t *testing.T) {
	routerModel := model.NewMockModel("decision", "mock")
	routerModel.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return `{"personas":["optimist"]}`, nil
	}
	generatorModel := model.NewMockModel("completion", "mock")
	generatorModel.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return "Look at the upside here!", nil
	}

	a, err := New(func(o *Options) {
		o.RouterModel = routerModel
		o.GeneratorModel = generatorModel
	})
	require.NoError(t, err)

	ctx := context.Background()
	topic, err := a.CreateTopic(ctx, "ethics", "")
	require.NoError(t, err)
	alice, err := a.CreateParticipant(ctx, "alice", "")
	require.NoError(t, err)

	sub := a.Hub().Subscribe()
	defer sub.Close()

	thread, run, err := a.CreateThread(ctx, topic.ID, alice.ID, "Is X ethical?")
	require.NoError(t, err)
	require.NotNil(t, run)
	run.Wait()

	var events []core.TimelineEvent
	for len(events) < 2 {
		select {
		case event := <-sub.Events():
			events = append(events, event)
		case <-time.After(time.Second):
			t.Fatalf("timed out with %d events", len(events))
		}
	}
	assert.Equal(t, core.EventTypeTyping, events[0].EventType())
	assert.Equal(t, core.EventTypeReply, events[1].EventType())

	replies, err := a.opts.Replies.ListByThread(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "Look at the upside here!", replies[0].Body)
}

func TestCreateThreadValidatesReferences(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	topic, err := a.CreateTopic(ctx, "ethics", "")
	require.NoError(t, err)
	alice, err := a.CreateParticipant(ctx, "alice", "")
	require.NoError(t, err)

	_, _, err = a.CreateThread(ctx, "nope", alice.ID, "body")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, _, err = a.CreateThread(ctx, topic.ID, "nope", "body")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateReplyEchoAndOrchestration(t *testing.T) {
	routerModel := model.NewMockModel("decision", "mock")
	routerModel.CompleteFn = func(_ context.Context, _ model.Request) (string, error) {
		return `{"personas":[]}`, nil
	}

	a, err := New(func(o *Options) {
		o.RouterModel = routerModel
	})
	require.NoError(t, err)

	ctx := context.Background()
	topic, err := a.CreateTopic(ctx, "ethics", "")
	require.NoError(t, err)
	alice, err := a.CreateParticipant(ctx, "alice", "")
	require.NoError(t, err)
	thread, run, err := a.CreateThread(ctx, topic.ID, alice.ID, "question")
	require.NoError(t, err)
	run.Wait()

	sub := a.Hub().Subscribe()
	defer sub.Close()

	reply, run, err := a.CreateReply(ctx, thread.ID, alice.ID, "a human follow-up")
	require.NoError(t, err)
	require.NotNil(t, run, "human replies trigger orchestration")
	run.Wait()

	select {
	case event := <-sub.Events():
		replyEvent, ok := event.(core.ReplyEvent)
		require.True(t, ok)
		assert.Equal(t, reply.Body, replyEvent.Message)
		assert.Equal(t, alice.ID, replyEvent.UserID)
	case <-time.After(time.Second):
		t.Fatal("expected an echo event for the human reply")
	}
}

func TestCreateReplyByAgentDoesNotOrchestrate(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	topic, err := a.CreateTopic(ctx, "ethics", "")
	require.NoError(t, err)
	alice, err := a.CreateParticipant(ctx, "alice", "")
	require.NoError(t, err)
	thread, run, err := a.CreateThread(ctx, topic.ID, alice.ID, "question")
	require.NoError(t, err)
	run.Wait()

	agent, err := a.opts.Participants.GetByName(ctx, "ProfessorLogic")
	require.NoError(t, err)

	_, run, err = a.CreateReply(ctx, thread.ID, agent.ID, "an agent-authored reply")
	require.NoError(t, err)
	assert.Nil(t, run, "agent replies must not re-trigger orchestration")
}
