package hub

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/NajimuddinS/ChatMate/internal/domain"
)

// Hub maps authenticated user ids to their single live connection and
// pushes newly created messages to recipients. The binding table is
// process-local and is not a source of truth: a user with no binding
// simply catches up from the message log.
type Hub struct {
	bindings   map[uuid.UUID]*Client
	register   chan *Client
	unregister chan *Client
	deliveries chan delivery
}

type delivery struct {
	recipientID uuid.UUID
	payload     []byte
}

// NewHub creates a Hub. Call Run in its own goroutine before use.
func NewHub() *Hub {
	return &Hub{
		bindings:   make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliveries: make(chan delivery, 64),
	}
}

// Run owns the binding table. All register/unregister/delivery traffic
// is serialized here, so no locking is needed anywhere else.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)
		case client := <-h.unregister:
			h.handleUnregister(client)
		case d := <-h.deliveries:
			h.handleDelivery(d)
		}
	}
}

// ServeWs binds an upgraded connection to a user and starts its pumps.
func (h *Hub) ServeWs(conn *websocket.Conn, userID uuid.UUID) {
	client := &Client{UserID: userID, Hub: h, Conn: conn, Send: make(chan []byte, 256)}
	h.Register(client)
	go client.writePump()
	go client.readPump()
}

// Register binds a client, replacing any prior binding for the same
// user (last-connect-wins: only the newest tab/device receives pushes).
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client's binding. Safe to call when the binding
// was already replaced or removed.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Push delivers a message to the recipient's connection if one exists.
// With no binding the push is silently dropped; the recipient sees the
// message on the next history fetch.
func (h *Hub) Push(recipientID uuid.UUID, message *domain.Message) {
	event, err := domain.NewEvent(domain.EventNewMessage, message)
	if err != nil {
		log.Printf("hub: could not encode message event: %v", err)
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("hub: could not encode message event: %v", err)
		return
	}
	h.deliveries <- delivery{recipientID: recipientID, payload: payload}
}

func (h *Hub) handleRegister(client *Client) {
	if prior, ok := h.bindings[client.UserID]; ok && prior != client {
		close(prior.Send)
	}
	h.bindings[client.UserID] = client
	h.broadcastPresence()
}

func (h *Hub) handleUnregister(client *Client) {
	// Only drop the binding if this client still owns it; a replaced
	// client's late unregister must not evict its successor.
	if h.bindings[client.UserID] != client {
		return
	}
	delete(h.bindings, client.UserID)
	close(client.Send)
	h.broadcastPresence()
}

func (h *Hub) handleDelivery(d delivery) {
	client, ok := h.bindings[d.recipientID]
	if !ok {
		return
	}
	h.send(client, d.payload)
}

// broadcastPresence emits the current set of connected user ids to
// every connected client.
func (h *Hub) broadcastPresence() {
	ids := make([]string, 0, len(h.bindings))
	for id := range h.bindings {
		ids = append(ids, id.String())
	}
	event, err := domain.NewEvent(domain.EventPresenceSet, domain.PresencePayload{UserIDs: ids})
	if err != nil {
		log.Printf("hub: could not encode presence event: %v", err)
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("hub: could not encode presence event: %v", err)
		return
	}
	for _, client := range h.bindings {
		h.send(client, payload)
	}
}

// send writes to a client's channel without blocking. A full channel
// means a stuck or gone client: drop its binding rather than the hub.
func (h *Hub) send(client *Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		log.Printf("hub: dropping slow client %s", client.UserID)
		delete(h.bindings, client.UserID)
		close(client.Send)
	}
}
