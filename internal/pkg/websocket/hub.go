package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/openedx/programs-admin/internal/app/services"
)

// MessageTypeProgramChanged is the only message the hub sends
const MessageTypeProgramChanged = "program_changed"

// Hub fans program change notifications out to the pages watching that program
type Hub struct {
	// Registered clients organized by program ID
	clients map[int64]map[*Client]bool

	// Notifications waiting to be delivered
	broadcast chan *Message

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Guards clients for readers outside the Run goroutine
	mu sync.RWMutex

	logger zerolog.Logger
	now    func() time.Time
}

// Message is a change notification sent to the browser
type Message struct {
	Type      string    `json:"type"`
	ProgramID int64     `json:"program_id"`
	Change    string    `json:"change"`
	ViewID    string    `json:"view_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

var _ services.ChangeNotifier = (*Hub)(nil)

// Run handles registrations and broadcasts until ctx is cancelled, then disconnects every
// client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.programID]; !ok {
		h.clients[client.programID] = make(map[*Client]bool)
	}
	h.clients[client.programID][client] = true

	h.logger.Debug().
		Int64("programID", client.programID).
		Int64("userID", client.userID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(client)
}

// removeLocked drops client and closes its send channel. h.mu must be held.
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.programID]
	if !ok || !clients[client] {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.programID)
	}

	h.logger.Debug().
		Int64("programID", client.programID).
		Int64("userID", client.userID).
		Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[message.ProgramID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("programID", message.ProgramID).
			Msg("Failed to marshal message for broadcast")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Slow reader; drop it rather than stall the other pages
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Int64("programID", message.ProgramID).
		Str("change", message.Change).
		Int("clientCount", len(clients)).
		Msg("Change broadcasted")
}

// ProgramChanged queues a notification for every page open on programID. It never blocks;
// when the queue is full the notification is dropped.
func (h *Hub) ProgramChanged(ctx context.Context, programID int64, change string) {
	message := &Message{
		Type:      MessageTypeProgramChanged,
		ProgramID: programID,
		Change:    change,
		ViewID:    services.OriginFrom(ctx),
		Timestamp: h.now().UTC(),
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn().
			Int64("programID", programID).
			Str("change", change).
			Msg("Dropped change notification")
	}
}

// GetClientsCount returns the number of pages connected for a program
func (h *Hub) GetClientsCount(programID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[programID])
}

func (h *Hub) enqueue(ch chan *Client, client *Client) bool {
	select {
	case ch <- client:
		return true
	case <-h.done:
		return false
	}
}
