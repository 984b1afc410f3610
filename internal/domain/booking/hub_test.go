package booking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsLocallyWithoutRedis(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 4)}
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	svc := NewService(NewMemoryRepository(), hub, nil, false)
	b, err := svc.Create(context.Background(), ana())
	require.NoError(t, err)

	select {
	case msg := <-client.Send:
		var event Event
		require.NoError(t, json.Unmarshal(msg, &event))
		assert.Equal(t, Event{Type: EventBookingCreated, BookingID: b.ID.String(), Date: "2024-06-10", Time: "10:00"}, event)
	case <-time.After(time.Second):
		t.Fatal("expected booking event")
	}

	hub.Unregister(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open, "unregister closes the send channel")
}
