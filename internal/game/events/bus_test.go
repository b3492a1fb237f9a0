package events

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
)

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var receivedEvent Event
	bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		receivedEvent = e
	})

	bus.Publish(NewGameStartedEvent("test-game", 6, 7, 4, core.PlayerA, nil))

	require.NotNil(t, receivedEvent, "Event should have been received")
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())
	started, ok := receivedEvent.(*GameStartedEvent)
	require.True(t, ok)
	assert.Equal(t, 7, started.Cols)
	assert.WithinDuration(t, time.Now(), started.Timestamp(), time.Second)
}

func TestEventBusMultipleHandlers(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	handler1Called := false
	handler2Called := false
	id1 := bus.SubscribeFunc(TypeMoveApplied, func(e Event) { handler1Called = true })
	id2 := bus.SubscribeFunc(TypeMoveApplied, func(e Event) { handler2Called = true })

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, bus.FuncHandlerCount(TypeMoveApplied))

	bus.Publish(NewMoveAppliedEvent("test-game", core.PlayerB, 3, 5, 1, SourceAI))

	assert.True(t, handler1Called, "Handler 1 should have been called")
	assert.True(t, handler2Called, "Handler 2 should have been called")
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameEnded:   true,
		},
	}
	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.SubscriberCount())

	bus.Publish(NewGameStartedEvent("test-game", 6, 7, 4, core.PlayerA, []int{3}))
	bus.Publish(NewMoveAppliedEvent("test-game", core.PlayerA, 2, 5, 2, SourceHuman))
	bus.Publish(NewGameEndedEvent("test-game", core.PlayerA, 11, time.Minute))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameEnded, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewGameStartedEvent("test-game", 6, 7, 4, core.PlayerA, nil))
	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestEventBusRecoversFromPanics(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	bus.SubscribeFunc(TypeMoveRejected, func(e Event) { panic("boom") })
	called := false
	bus.SubscribeFunc(TypeMoveRejected, func(e Event) { called = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewMoveRejectedEvent("test-game", core.PlayerA, 9, "column out of range"))
	})
	assert.True(t, called)
}
