package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NajimuddinS/ChatMate/internal/auth"
	"github.com/NajimuddinS/ChatMate/internal/domain"
	"github.com/NajimuddinS/ChatMate/internal/hub"
	"github.com/NajimuddinS/ChatMate/internal/repository/memory"
	"github.com/NajimuddinS/ChatMate/internal/service"
)

const strongPassword = "correct horse battery staple 9!"

type fakeGenerator struct {
	reply string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) string {
	return g.reply
}

type fixture struct {
	srv   *httptest.Server
	users service.IUserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := memory.NewUserRepository()
	messages := memory.NewMessageRepository()

	h := hub.NewHub()
	go h.Run()

	userSvc := service.NewUserService(users)
	messageSvc := service.NewMessageService(messages, h)
	assistantSvc := service.NewAssistantService(messages, users, &fakeGenerator{reply: "hello from the model"})
	tokens := auth.NewTokenManager("test-secret")

	router := NewRouter(
		NewAuthHandler(userSvc, tokens),
		NewMessageHandler(messageSvc, userSvc),
		NewAIHandler(assistantSvc, userSvc),
		NewWebsocketHandler(h, tokens),
		tokens,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, users: userSvc}
}

func (f *fixture) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// signup registers a user over the API and returns it with its token.
func (f *fixture) signup(t *testing.T, name, email string) (*domain.User, string) {
	t.Helper()
	resp := f.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"fullName": name, "email": email, "password": strongPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := ""
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" {
			token = cookie.Value
		}
	}
	require.NotEmpty(t, token, "signup must set the jwt cookie")

	var user domain.User
	decodeBody(t, resp, &user)
	return &user, token
}

func TestSignupLoginCheck(t *testing.T) {
	f := newFixture(t)
	user, token := f.signup(t, "Alice Kim", "alice@example.com")

	t.Run("check returns current user", func(t *testing.T) {
		resp := f.request(t, http.MethodGet, "/api/auth/check", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got domain.User
		decodeBody(t, resp, &got)
		assert.Equal(t, user.ID, got.ID)
		assert.Empty(t, got.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp := f.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"fullName": "Alice Again", "email": "alice@example.com", "password": strongPassword,
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("login wrong password", func(t *testing.T) {
		resp := f.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "wrong",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("login ok", func(t *testing.T) {
		resp := f.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": strongPassword,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got domain.User
		decodeBody(t, resp, &got)
		assert.Equal(t, user.ID, got.ID)
	})
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/api/auth/check", "/api/messages/users"} {
		resp := f.request(t, http.MethodGet, path, "", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp := f.request(t, http.MethodGet, "/api/auth/check", "garbage-token", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSendAndHistory(t *testing.T) {
	f := newFixture(t)
	alice, aliceToken := f.signup(t, "Alice", "alice@example.com")
	bob, bobToken := f.signup(t, "Bob", "bob@example.com")

	t.Run("peer list excludes caller", func(t *testing.T) {
		resp := f.request(t, http.MethodGet, "/api/messages/users", aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var peers []*domain.User
		decodeBody(t, resp, &peers)
		require.Len(t, peers, 1)
		assert.Equal(t, bob.ID, peers[0].ID)
	})

	t.Run("send and read back", func(t *testing.T) {
		resp := f.request(t, http.MethodPost, "/api/messages/send/"+bob.ID.String(), aliceToken, map[string]string{"text": "hi bob"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var sent domain.Message
		decodeBody(t, resp, &sent)
		assert.Equal(t, alice.ID.String(), sent.SenderID)

		resp = f.request(t, http.MethodGet, "/api/messages/"+alice.ID.String(), bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var history []*domain.Message
		decodeBody(t, resp, &history)
		require.Len(t, history, 1)
		assert.Equal(t, "hi bob", history[0].Text)
	})

	t.Run("empty send rejected", func(t *testing.T) {
		resp := f.request(t, http.MethodPost, "/api/messages/send/"+bob.ID.String(), aliceToken, map[string]string{})
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad peer id rejected", func(t *testing.T) {
		resp := f.request(t, http.MethodGet, "/api/messages/not-a-uuid", aliceToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown peer yields empty history", func(t *testing.T) {
		resp := f.request(t, http.MethodGet, "/api/messages/"+strings.ToLower("3b241101-e2bb-4255-8caf-4136c566a962"), aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var history []*domain.Message
		decodeBody(t, resp, &history)
		assert.NotNil(t, history)
		assert.Empty(t, history)
	})
}

func TestAIChatAndToggle(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.EnsureAssistant("ai@chatmate.com", "ChaTai", "/ChatAi.jpg")
	require.NoError(t, err)
	_, token := f.signup(t, "Alice", "alice@example.com")

	t.Run("chat needs the toggle on", func(t *testing.T) {
		resp := f.request(t, http.MethodPost, "/api/ai/chat", token, map[string]string{"text": "hello"})
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("toggle on", func(t *testing.T) {
		resp := f.request(t, http.MethodPost, "/api/ai/toggle", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]bool
		decodeBody(t, resp, &result)
		assert.True(t, result["aiChatEnabled"])
	})

	t.Run("chat returns both turns", func(t *testing.T) {
		resp := f.request(t, http.MethodPost, "/api/ai/chat", token, map[string]string{"text": "hello"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result struct {
			UserMessage *domain.Message `json:"userMessage"`
			AIMessage   *domain.Message `json:"aiMessage"`
		}
		decodeBody(t, resp, &result)
		require.NotNil(t, result.UserMessage)
		require.NotNil(t, result.AIMessage)
		assert.Equal(t, "hello", result.UserMessage.Text)
		assert.Equal(t, "hello from the model", result.AIMessage.Text)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		resp := f.request(t, http.MethodPost, "/api/ai/chat", token, map[string]string{"text": ""})
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	_, token := f.signup(t, "Alice", "alice@example.com")

	resp := f.request(t, http.MethodPut, "/api/auth/update-profile", token, map[string]string{"profilePic": "https://example.com/new.png"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user domain.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "https://example.com/new.png", user.ProfilePic)

	resp = f.request(t, http.MethodPut, "/api/auth/update-profile", token, map[string]string{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebsocketPush(t *testing.T) {
	f := newFixture(t)
	alice, aliceToken := f.signup(t, "Alice", "alice@example.com")
	_, bobToken := f.signup(t, "Bob", "bob@example.com")

	wsURL := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws?token=" + aliceToken
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration triggers a presence broadcast first.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event domain.Event
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, domain.EventPresenceSet, event.Type)

	resp := f.request(t, http.MethodPost, "/api/messages/send/"+alice.ID.String(), bobToken, map[string]string{"text": "ping"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, domain.EventNewMessage, event.Type)
	var message domain.Message
	require.NoError(t, json.Unmarshal(event.Payload, &message))
	assert.Equal(t, "ping", message.Text)
}

func TestWebsocketRejectsBadToken(t *testing.T) {
	f := newFixture(t)
	wsURL := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws?token=garbage"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
