package chatclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/NajimuddinS/ChatMate/internal/domain"
)

// Client talks to a running server over REST for sends and queries and
// over the websocket for pushed events.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	conn    *websocket.Conn

	// Events receives decoded push events after Connect. Closed when
	// the connection drops.
	Events chan domain.Event
}

// NewClient creates a client for the server at baseURL
// (e.g. http://localhost:8080).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 90 * time.Second},
		Events:  make(chan domain.Event, 256),
	}
}

type credentialsRequest struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sendRequest struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	UserMessage *domain.Message `json:"userMessage"`
	AIMessage   *domain.Message `json:"aiMessage"`
}

// Signup registers a new account and keeps the session token.
func (c *Client) Signup(fullName, email, password string) (*domain.User, error) {
	var user domain.User
	resp, err := c.do(http.MethodPost, "/api/auth/signup", credentialsRequest{FullName: fullName, Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	c.captureToken(resp)
	return &user, nil
}

// Login authenticates and keeps the session token for later calls.
func (c *Client) Login(email, password string) (*domain.User, error) {
	var user domain.User
	resp, err := c.do(http.MethodPost, "/api/auth/login", credentialsRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	c.captureToken(resp)
	return &user, nil
}

// ListPeers returns every other user, assistant included.
func (c *Client) ListPeers() ([]*domain.User, error) {
	var users []*domain.User
	if _, err := c.do(http.MethodGet, "/api/messages/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// History returns the conversation with the given peer, oldest first.
func (c *Client) History(peerID string) ([]*domain.Message, error) {
	var messages []*domain.Message
	if _, err := c.do(http.MethodGet, "/api/messages/"+peerID, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage sends a direct message to a peer and returns the stored
// record.
func (c *Client) SendMessage(peerID, text, image string) (*domain.Message, error) {
	var message domain.Message
	if _, err := c.do(http.MethodPost, "/api/messages/send/"+peerID, sendRequest{Text: text, Image: image}, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// SendToAssistant sends a message to the assistant and returns both
// stored turns: the user's and the assistant's reply.
func (c *Client) SendToAssistant(text string) (*domain.Message, *domain.Message, error) {
	var resp chatResponse
	if _, err := c.do(http.MethodPost, "/api/ai/chat", chatRequest{Text: text}, &resp); err != nil {
		return nil, nil, err
	}
	return resp.UserMessage, resp.AIMessage, nil
}

// ToggleAIChat flips the caller's assistant flag on the server.
func (c *Client) ToggleAIChat() (bool, error) {
	var resp struct {
		Enabled bool `json:"aiChatEnabled"`
	}
	if _, err := c.do(http.MethodPost, "/api/ai/toggle", nil, &resp); err != nil {
		return false, err
	}
	return resp.Enabled, nil
}

// Connect opens the websocket with the stored session token and starts
// the read pump feeding Events.
func (c *Client) Connect() error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	q := u.Query()
	q.Set("token", c.token)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return err
	}
	c.conn = conn

	go c.readPump()
	return nil
}

// Close shuts down the websocket connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) readPump() {
	defer close(c.Events)
	for {
		var event domain.Event
		if err := c.conn.ReadJSON(&event); err != nil {
			log.Printf("chatclient: connection closed: %v", err)
			return
		}
		c.Events <- event
	}
}

func (c *Client) captureToken(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" && cookie.Value != "" {
			c.token = cookie.Value
		}
	}
}

// do performs a JSON round-trip and decodes either the response body
// into out or the server's {"error": ...} body into an error.
func (c *Client) do(method, path string, body, out interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			return nil, fmt.Errorf("server returned %s", resp.Status)
		}
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, apiErr.Error)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
