package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"marquee/internal/store"
	"marquee/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI is served from the same origin; tooling like wscat has none.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// CatalogEvent is pushed to websocket clients when a data file changes.
type CatalogEvent struct {
	Event     string `json:"event"`
	File      string `json:"file"`
	Timestamp string `json:"timestamp"`
}

// EventsHub fans catalog-change notifications out to websocket clients.
type EventsHub struct {
	store  *store.Store
	logger *utils.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewEventsHub(st *store.Store, logger *utils.Logger) *EventsHub {
	return &EventsHub{
		store:  st,
		logger: logger,
		conns:  make(map[*websocket.Conn]bool),
	}
}

// Run consumes store change notifications and broadcasts them. Returns
// when the store's subscription channel closes.
func (h *EventsHub) Run() {
	ch := h.store.Subscribe()
	for file := range ch {
		h.broadcast(CatalogEvent{
			Event:     "catalog_changed",
			File:      file,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (h *EventsHub) broadcast(event CatalogEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug("Dropping events client:", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the
// client goes away.
func (h *EventsHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed:", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	// Drain incoming messages; the hub only pushes.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				delete(h.conns, conn)
				h.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}
