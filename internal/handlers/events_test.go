package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"marquee/internal/store"
	"marquee/internal/utils"
)

func newTestHub(t *testing.T) (*EventsHub, *store.Store, *websocket.Conn) {
	t.Helper()

	logger := utils.NewLogger(false, io.Discard)
	st := store.NewStore(t.TempDir(), logger)
	hub := NewEventsHub(st, logger)

	ts := httptest.NewServer(hub)
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	// The server registers the connection just after the handshake; wait
	// for it so a broadcast cannot slip in between.
	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.mu.Lock()
		registered := len(hub.conns) > 0
		hub.mu.Unlock()
		if registered {
			return hub, st, conn
		}
		if time.Now().After(deadline) {
			t.Fatal("websocket client never registered with the hub")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestEventsHubBroadcast(t *testing.T) {
	hub, _, conn := newTestHub(t)

	hub.broadcast(CatalogEvent{
		Event:     "catalog_changed",
		File:      store.MoviesFile,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got CatalogEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatal(err)
	}
	if got.Event != "catalog_changed" || got.File != store.MoviesFile {
		t.Errorf("unexpected event: %+v", got)
	}
}

func TestEventsHubRunForwardsStoreEvents(t *testing.T) {
	hub, st, conn := newTestHub(t)
	go hub.Run()

	// Run subscribes asynchronously; notifications sent before that are
	// dropped by design, so keep poking until one lands.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				st.NotifyChanged(store.SeriesFile)
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got CatalogEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatal(err)
	}
	if got.Event != "catalog_changed" || got.File != store.SeriesFile {
		t.Errorf("unexpected event: %+v", got)
	}
}
