package timeline

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agora/core"
)

func drain(t *testing.T, sub *Subscriber) []core.TimelineEvent {
	t.Helper()
	var out []core.TimelineEvent
	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return out
			}
			out = append(out, event)
		case <-time.After(100 * time.Millisecond):
			return out
		}
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe()
	second := hub.Subscribe()
	assert.Equal(t, 2, hub.Len())

	hub.Publish(core.NewTypingEvent("thread-1", []string{"ProfessorLogic"}))
	hub.Publish(core.NewTypingEvent("thread-1", []string{"RazorTongue"}))

	for _, sub := range []*Subscriber{first, second} {
		events := drain(t, sub)
		require.Len(t, events, 2)
		assert.Equal(t, core.EventTypeTyping, events[0].EventType())
	}
}

func TestHubNoReplayForLateSubscriber(t *testing.T) {
	hub := NewHub()
	hub.Publish(core.NewTypingEvent("thread-1", nil))

	late := hub.Subscribe()
	assert.Empty(t, drain(t, late))
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()
	sub.Close()
	assert.Equal(t, 0, hub.Len())

	_, ok := <-sub.Events()
	assert.False(t, ok)

	// Idempotent: a second close must not panic.
	sub.Close()
	hub.Unsubscribe(sub)
}

func TestHubSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	hub := NewHub(func(o *HubOptions) {
		o.BufferSize = 1
	})
	slow := hub.Subscribe()
	fast := hub.Subscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			hub.Publish(core.NewTypingEvent(fmt.Sprintf("thread-%d", i), nil))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber buffer")
	}

	// The fast subscriber drains concurrently-ish; with buffer 1 and no
	// reader it also drops, so only the bound matters for slow.
	assert.Len(t, drain(t, slow), 1)
	assert.Len(t, drain(t, fast), 1)
}

func TestHubConcurrentPublishSubscribe(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := hub.Subscribe()
			drain(t, sub)
			sub.Close()
		}()
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Publish(core.NewTypingEvent("thread-1", nil))
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, hub.Len())
}
