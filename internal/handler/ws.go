package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/NajimuddinS/ChatMate/internal/auth"
	"github.com/NajimuddinS/ChatMate/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebsocketHandler upgrades authenticated connections and hands them
// to the hub.
type WebsocketHandler struct {
	hub    *hub.Hub
	tokens *auth.TokenManager
}

// NewWebsocketHandler creates a new WebsocketHandler.
func NewWebsocketHandler(h *hub.Hub, tokens *auth.TokenManager) *WebsocketHandler {
	return &WebsocketHandler{hub: h, tokens: tokens}
}

// HandleConnection handles GET /ws. The credential comes from the jwt
// cookie or, for non-browser clients, a token query parameter.
func (h *WebsocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r)
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized - No Token Provided")
		return
	}
	userID, err := h.tokens.Verify(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized - Invalid Token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("handler: websocket upgrade failed: %v", err)
		return
	}
	h.hub.ServeWs(conn, userID)
}
