package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/NajimuddinS/ChatMate/internal/auth"
)

// requestsPerSecond bounds the whole-process request rate.
const (
	requestsPerSecond = 50
	requestBurst      = 100
)

// NewRouter assembles the HTTP surface: public auth routes, protected
// API routes, and the websocket endpoint.
func NewRouter(
	authHandler *AuthHandler,
	messageHandler *MessageHandler,
	aiHandler *AIHandler,
	wsHandler *WebsocketHandler,
	tokens *auth.TokenManager,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(Logging)
	r.Use(RateLimit(rate.NewLimiter(requestsPerSecond, requestBurst)))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(Auth(tokens))
	protected.HandleFunc("/auth/check", authHandler.Check).Methods(http.MethodGet)
	protected.HandleFunc("/auth/update-profile", authHandler.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/messages/users", messageHandler.ListPeers).Methods(http.MethodGet)
	protected.HandleFunc("/messages/send/{id}", messageHandler.Send).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{id}", messageHandler.GetHistory).Methods(http.MethodGet)
	protected.HandleFunc("/ai/chat", aiHandler.Chat).Methods(http.MethodPost)
	protected.HandleFunc("/ai/toggle", aiHandler.Toggle).Methods(http.MethodPost)

	r.HandleFunc("/ws", wsHandler.HandleConnection).Methods(http.MethodGet)

	return r
}
