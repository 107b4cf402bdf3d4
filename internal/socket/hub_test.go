package socket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastNoClients(t *testing.T) {
	hub := NewHub()
	hub.Broadcast(Event{Tipo: EventOrderCreated})
}

// Concurrent handlers broadcast without coordination; every write on a
// connection must be serialized. Run with -race.
func TestBroadcastConcurrent(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}
	registered := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register("u1", conn)
		close(registered)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()

	select {
	case <-registered:
	case <-time.After(5 * time.Second):
		t.Fatal("client never registered")
	}

	const writers = 8
	const perWriter = 50

	readErr := make(chan error, 1)
	go func() {
		for i := 0; i < writers*perWriter; i++ {
			_, message, err := client.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			var event Event
			if err := json.Unmarshal(message, &event); err != nil {
				readErr <- err
				return
			}
			if event.Tipo != EventOrderCreated {
				readErr <- fmt.Errorf("unexpected event type %q", event.Tipo)
				return
			}
		}
		readErr <- nil
	}()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Broadcast(Event{Tipo: EventOrderCreated})
			}
		}()
	}
	wg.Wait()

	select {
	case err := <-readErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for broadcast messages")
	}

	hub.Unregister("u1")
	assert.Empty(t, hub.clients)
}
