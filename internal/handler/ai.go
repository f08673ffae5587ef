package handler

import (
	"errors"
	"net/http"

	"github.com/NajimuddinS/ChatMate/internal/domain"
	"github.com/NajimuddinS/ChatMate/internal/service"
)

// AIHandler serves assistant conversations and the per-user assistant
// toggle.
type AIHandler struct {
	assistant service.IAssistantService
	users     service.IUserService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(assistant service.IAssistantService, users service.IUserService) *AIHandler {
	return &AIHandler{assistant: assistant, users: users}
}

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	UserMessage *domain.Message `json:"userMessage"`
	AIMessage   *domain.Message `json:"aiMessage"`
}

// Chat handles POST /api/ai/chat.
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized - No Token Provided")
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized - Invalid Token")
		return
	}
	if !user.AIChatEnabled {
		writeError(w, http.StatusForbidden, "AI chat is disabled")
		return
	}

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userMsg, aiMsg, err := h.assistant.Chat(r.Context(), userID, req.Text)
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "Message text is required")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{UserMessage: userMsg, AIMessage: aiMsg})
}

// Toggle handles POST /api/ai/toggle.
func (h *AIHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized - No Token Provided")
		return
	}
	enabled, err := h.users.ToggleAIChat(userID)
	switch {
	case errors.Is(err, service.ErrUnknownUser):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"aiChatEnabled": enabled})
}
