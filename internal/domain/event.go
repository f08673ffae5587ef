package domain

import "encoding/json"

// Websocket event types pushed from server to client.
const (
	EventNewMessage  = "new_message"
	EventPresenceSet = "presence_set"
)

// Event is the envelope for everything sent over the push channel.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PresencePayload carries the full set of currently connected user ids.
type PresencePayload struct {
	UserIDs []string `json:"userIds"`
}

// NewEvent wraps payload in an Event envelope.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{Type: eventType, Payload: encoded}, nil
}
