// Package hub fans service events out to Server-Sent Events clients.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"gasnet/internal/service"
)

// DefaultKeepAlive is the interval between keep-alive comments
const DefaultKeepAlive = 30 * time.Second

// client is one connected SSE stream
type client struct {
	id     uint64
	events chan []byte
}

// Hub manages SSE client connections
type Hub struct {
	mu         sync.RWMutex
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan service.Event
	done       chan struct{}
	nextID     atomic.Uint64

	// KeepAlive is the interval between keep-alive comments
	KeepAlive time.Duration
}

// New creates a new Hub
func New() *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan service.Event, 256),
		done:       make(chan struct{}),
		KeepAlive:  DefaultKeepAlive,
	}
}

// Attach subscribes the hub to an event bus. Events are forwarded until
// ctx is done.
func (h *Hub) Attach(ctx context.Context, bus *service.EventBus) {
	events := make(chan service.Event, 64)
	bus.Subscribe(events)

	go func() {
		for {
			select {
			case ev := <-events:
				h.Broadcast(ev)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run starts the hub's event loop and returns when ctx is done. Open
// streams are closed on return.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("SSE client connected: %d (total: %d)", c.id, n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.events)
			}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("SSE client disconnected: %d (total: %d)", c.id, n)

		case ev := <-h.broadcast:
			msg, err := encode(ev)
			if err != nil {
				log.Printf("Failed to marshal event: %v", err)
				continue
			}

			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.events <- msg:
				default:
					log.Printf("SSE client %d is slow, skipping %s", c.id, ev.Type)
				}
			}
			h.mu.RUnlock()

		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.events)
			}
			h.mu.Unlock()
			return
		}
	}
}

// encode renders an event as one SSE frame named after its type
func encode(ev service.Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", ev.Type, data)), nil
}

// Broadcast queues an event for all connected clients
func (h *Hub) Broadcast(ev service.Event) {
	select {
	case h.broadcast <- ev:
	default:
		log.Printf("Broadcast channel full, dropping %s", ev.Type)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP streams events to one client until it disconnects
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	c := &client{
		id:     h.nextID.Add(1),
		events: make(chan []byte, 64),
	}

	select {
	case h.register <- c:
	case <-h.done:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.KeepAlive)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.events:
			if !ok {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
