package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	_, ch1 := bus.Subscribe()
	_, ch2 := bus.Subscribe()

	bus.Publish(Event{Type: TypeSeriesCreated, Data: map[string]interface{}{"name": "Dark"}})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case evt := <-ch:
			assert.Equal(t, TypeSeriesCreated, evt.Type)
			assert.False(t, evt.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBusDropsWhenSubscriberBufferFull(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	_, ch := bus.Subscribe()

	// Second publish overflows the buffer and is dropped, not blocked on.
	bus.Publish(Event{Type: TypeMovieCreated})
	bus.Publish(Event{Type: TypeMovieDeleted})

	evt := <-ch
	assert.Equal(t, TypeMovieCreated, evt.Type)

	select {
	case evt, ok := <-ch:
		require.True(t, ok)
		t.Fatalf("unexpected event %q", evt.Type)
	default:
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	id, ch := bus.Subscribe()
	bus.Unsubscribe(id)

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after unsubscribe must not panic.
	bus.Publish(Event{Type: TypeSeasonUpdated})
}

func TestBusCloseClosesAllChannels(t *testing.T) {
	bus := NewBus(4)

	_, ch1 := bus.Subscribe()
	_, ch2 := bus.Subscribe()
	bus.Close()

	_, ok := <-ch1
	assert.False(t, ok)
	_, ok = <-ch2
	assert.False(t, ok)

	// Subscribing after close yields a closed channel.
	_, ch3 := bus.Subscribe()
	_, ok = <-ch3
	assert.False(t, ok)
}
