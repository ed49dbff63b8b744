package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTerminalSubscribers(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("kasir-1")
	defer cleanup()
	other, cleanupOther := hub.Subscribe("kasir-2")
	defer cleanupOther()

	hub.Publish("kasir-1", EventCheckoutCompleted, map[string]string{"invoice_code": "INV-1"})

	select {
	case ev := <-ch:
		assert.Equal(t, "kasir-1", ev.TerminalID)
		assert.Equal(t, EventCheckoutCompleted, ev.Name)
	default:
		t.Fatal("expected an event")
	}

	select {
	case ev := <-other:
		t.Fatalf("unexpected event for other terminal: %v", ev)
	default:
	}
}

func TestHub_PublishDropsWhenFull(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("kasir-1")
	defer cleanup()

	for i := 0; i < hub.bufferSize+5; i++ {
		hub.Publish("kasir-1", EventCartUpdated, i)
	}
	assert.Len(t, ch, hub.bufferSize)
}

func TestHub_Cleanup(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("kasir-1")
	require.Equal(t, 1, hub.SubscriberCount("kasir-1"))

	cleanup()
	cleanup()

	assert.Equal(t, 0, hub.SubscriberCount("kasir-1"))
	_, open := <-ch
	assert.False(t, open)

	hub.Publish("kasir-1", EventShiftClosed, nil)
}
