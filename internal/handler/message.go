package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/NajimuddinS/ChatMate/internal/domain"
	"github.com/NajimuddinS/ChatMate/internal/service"
)

// MessageHandler serves the sidebar user list, conversation history,
// and direct sends.
type MessageHandler struct {
	messages service.IMessageService
	users    service.IUserService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messages service.IMessageService, users service.IUserService) *MessageHandler {
	return &MessageHandler{messages: messages, users: users}
}

type sendRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// ListPeers handles GET /api/messages/users.
func (h *MessageHandler) ListPeers(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized - No Token Provided")
		return
	}
	peers, err := h.users.ListPeers(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, peers)
}

// GetHistory handles GET /api/messages/{id}.
func (h *MessageHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized - No Token Provided")
		return
	}
	peerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	history, err := h.messages.History(r.Context(), userID, peerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// Send handles POST /api/messages/send/{id}.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized - No Token Provided")
		return
	}
	receiverID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req sendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	message, err := h.messages.Send(r.Context(), userID, receiverID, req.Text, req.Image)
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, message)
}
