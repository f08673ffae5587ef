package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrEmptyMessage is returned when a message carries neither text nor an image.
var ErrEmptyMessage = errors.New("message must contain text or an image")

// Message represents a single direct message, stored in MongoDB.
// Messages are immutable once persisted; there is no edit or delete.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   string             `bson:"sender_id" json:"senderId"`
	ReceiverID string             `bson:"receiver_id" json:"receiverId"`
	Text       string             `bson:"text,omitempty" json:"text,omitempty"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// NewMessage builds an unsaved message with a server-assigned timestamp.
// At least one of text/image must be non-empty.
func NewMessage(senderID, receiverID uuid.UUID, text, image string) (*Message, error) {
	if text == "" && image == "" {
		return nil, ErrEmptyMessage
	}
	return &Message{
		ID:         primitive.NewObjectID(),
		SenderID:   senderID.String(),
		ReceiverID: receiverID.String(),
		Text:       text,
		Image:      image,
		CreatedAt:  time.Now(),
	}, nil
}

// Concerns reports whether the given user is the sender or the receiver.
func (m *Message) Concerns(userID string) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}
