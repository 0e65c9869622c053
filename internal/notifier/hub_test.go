//go:build unit

package notifier_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courtbook/internal/notifier"
	"courtbook/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *notifier.Hub {
	return notifier.NewHub(config.EventsConfig{
		ClientBuffer: 8,
		WriteTimeout: time.Second,
		PingInterval: 10 * time.Second,
	})
}

// dialHub spins up a server that hands every connection to hub.Serve and
// returns a connected client.
func dialHub(t *testing.T, hub *notifier.Hub, filter *uuid.UUID) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		go hub.Serve(conn, filter)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *notifier.Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", want, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) notifier.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev notifier.Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHub_DeliversPublishedEvents(t *testing.T) {
	hub := newTestHub()
	conn := dialHub(t, hub, nil)
	waitForClients(t, hub, 1)

	resourceID := uuid.New()
	ev, err := notifier.NewEvent(notifier.EventSlotAvailable, resourceID, map[string]string{"slot_start": "2026-07-02T10:00:00Z"})
	require.NoError(t, err)

	hub.Publish(ev)

	got := readEvent(t, conn)
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, notifier.EventSlotAvailable, got.Type)
	assert.Equal(t, resourceID, got.ResourceID)
	assert.JSONEq(t, `{"slot_start": "2026-07-02T10:00:00Z"}`, string(got.Payload))
}

func TestHub_ResourceFilter(t *testing.T) {
	hub := newTestHub()
	watched := uuid.New()
	other := uuid.New()

	filtered := dialHub(t, hub, &watched)
	waitForClients(t, hub, 1)

	skip, err := notifier.NewEvent(notifier.EventBookingCancelled, other, nil)
	require.NoError(t, err)
	match, err := notifier.NewEvent(notifier.EventBookingCancelled, watched, nil)
	require.NoError(t, err)

	hub.Publish(skip)
	hub.Publish(match)

	// The filtered-out event must never arrive; the first frame read is the
	// matching one.
	got := readEvent(t, filtered)
	assert.Equal(t, match.ID, got.ID)
}

func TestHub_PublishWithoutClientsDoesNotBlock(t *testing.T) {
	hub := newTestHub()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ev, err := notifier.NewEvent(notifier.EventMaintenanceStart, uuid.New(), nil)
		require.NoError(t, err)
		hub.Publish(ev)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no clients connected")
	}
}

func TestHub_DisconnectedClientIsRemoved(t *testing.T) {
	hub := newTestHub()
	conn := dialHub(t, hub, nil)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}
