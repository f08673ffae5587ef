package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NajimuddinS/ChatMate/internal/domain"
)

const messageCollection = "messages"

// MessageRepository handles database operations for direct messages.
// The message log is append-only: there is no update or delete.
type MessageRepository struct {
	DB *mongo.Database
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{DB: db}
}

// Append inserts a new message into the log.
func (r *MessageRepository) Append(ctx context.Context, message *domain.Message) error {
	collection := r.DB.Collection(messageCollection)
	_, err := collection.InsertOne(ctx, message)
	return err
}

// History retrieves all messages exchanged between two users, in either
// direction, ordered by creation time ascending. The ordering is part of
// the contract: clients render the result as-is without re-sorting.
func (r *MessageRepository) History(ctx context.Context, userA, userB string) ([]*domain.Message, error) {
	collection := r.DB.Collection(messageCollection)

	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userA, "receiver_id": userB},
		bson.M{"sender_id": userB, "receiver_id": userA},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*domain.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
