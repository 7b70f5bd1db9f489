package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})
	dispatcher.Subscribe(EventTicketDeleted, func(_ context.Context, event Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "t-1"})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "t-1", received[0].TicketID)
}

func TestDispatcherIgnoresHandlerErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventTicketCommented, func(context.Context, Event) error {
		calls++
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(EventTicketCommented, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCommented})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
