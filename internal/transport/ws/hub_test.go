package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samvad/internal/model"
)

func TestHubBroadcastsToRegisteredConnections(t *testing.T) {
	hub := NewHub()

	conn := &Connection{HostID: "host_test", Send: make(chan []byte, 8), Hub: hub}
	hub.Register(conn)

	hub.BroadcastAnalysisCompleted(model.DashboardEvent{
		AnalysisID:    "analysis-1",
		NumSpeakers:   3,
		NumAgreements: 2,
		SourceType:    model.SourceText,
	})

	select {
	case data := <-conn.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, MsgAnalysisCompleted, msg.Type)

		var event model.DashboardEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, "analysis-1", event.AnalysisID)
		assert.Equal(t, 2, event.NumAgreements)
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()

	conn := &Connection{HostID: "host_test", Send: make(chan []byte, 1), Hub: hub}
	hub.Register(conn)
	hub.Unregister(conn)

	select {
	case _, open := <-conn.Send:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()

	conn := &Connection{HostID: "host_test", Send: make(chan []byte), Hub: hub}
	hub.Register(conn)

	// Nothing reads conn.Send; the broadcast must not block the hub.
	hub.BroadcastAnalysisCompleted(model.DashboardEvent{AnalysisID: "analysis-1"})
	hub.BroadcastAnalysisCompleted(model.DashboardEvent{AnalysisID: "analysis-2"})

	done := make(chan struct{})
	go func() {
		hub.Unregister(conn)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub blocked on a full connection buffer")
	}
}
