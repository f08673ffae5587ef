package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NajimuddinS/ChatMate/internal/repository/memory"
)

type generatorStub struct {
	reply string
}

func (g *generatorStub) Generate(ctx context.Context, prompt string) string {
	return g.reply
}

func newAssistantFixture(t *testing.T, reply string) (*AssistantService, *memory.MessageRepository, uuid.UUID, uuid.UUID) {
	t.Helper()
	users := memory.NewUserRepository()
	messages := memory.NewMessageRepository()

	userSvc := NewUserService(users)
	user, err := userSvc.Signup("Alice", "alice@example.com", strongPassword)
	require.NoError(t, err)
	assistant, err := userSvc.EnsureAssistant("ai@chatmate.com", "ChaTai", "/ChatAi.jpg")
	require.NoError(t, err)

	svc := NewAssistantService(messages, users, &generatorStub{reply: reply})
	return svc, messages, user.ID, assistant.ID
}

func TestChatStoresBothTurns(t *testing.T) {
	svc, messages, userID, assistantID := newAssistantFixture(t, "the answer is 42")

	userMsg, assistantMsg, err := svc.Chat(context.Background(), userID, "what is the answer?")
	require.NoError(t, err)

	assert.Equal(t, userID.String(), userMsg.SenderID)
	assert.Equal(t, assistantID.String(), userMsg.ReceiverID)
	assert.Equal(t, "what is the answer?", userMsg.Text)

	assert.Equal(t, assistantID.String(), assistantMsg.SenderID)
	assert.Equal(t, userID.String(), assistantMsg.ReceiverID)
	assert.Equal(t, "the answer is 42", assistantMsg.Text)

	assert.Equal(t, 2, messages.Len())

	history, err := messages.History(context.Background(), userID.String(), assistantID.String())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, userMsg.Text, history[0].Text)
	assert.Equal(t, assistantMsg.Text, history[1].Text)
}

func TestChatPersistsFallbackReply(t *testing.T) {
	fallback := "Sorry, I couldn't process your request at the moment. Please try again later."
	svc, messages, userID, _ := newAssistantFixture(t, fallback)

	_, assistantMsg, err := svc.Chat(context.Background(), userID, "hello?")
	require.NoError(t, err)
	assert.Equal(t, fallback, assistantMsg.Text)
	assert.Equal(t, 2, messages.Len())
}

func TestChatRejectsEmptyText(t *testing.T) {
	svc, messages, userID, _ := newAssistantFixture(t, "unused")

	_, _, err := svc.Chat(context.Background(), userID, "")
	require.Error(t, err)
	assert.Equal(t, 0, messages.Len())
}

func TestChatWithoutAssistantAccount(t *testing.T) {
	users := memory.NewUserRepository()
	messages := memory.NewMessageRepository()
	svc := NewAssistantService(messages, users, &generatorStub{reply: "unused"})

	_, _, err := svc.Chat(context.Background(), uuid.New(), "hello")
	assert.ErrorIs(t, err, ErrAssistantMissing)
}
