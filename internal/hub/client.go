package hub

import (
	"log"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is the binding between one authenticated user and one live
// websocket connection.
type Client struct {
	UserID uuid.UUID
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
}

// readPump drains the connection until it closes. Clients send nothing
// over the socket after the handshake (sends go over REST); reading is
// only how we notice the peer went away.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards the Send channel to the websocket. A write failure
// is terminal for the connection: the event is dropped, not re-queued,
// and the recipient recovers it from the message log.
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("hub: write to %s failed: %v", c.UserID, err)
			return
		}
	}
}
