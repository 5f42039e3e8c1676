package mongodb

import (
	"context"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.MessageRepository = (*MessageRepository)(nil)

// MessageRepository handles MongoDB operations for Message
type MessageRepository struct {
	collection *mongo.Collection
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		collection: db.Collection("messages"),
	}
}

// Create inserts a message
func (r *MessageRepository) Create(ctx context.Context, m *models.Message) error {
	m.ID = primitive.NewObjectID()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, m)
	return err
}

// FindByConversation returns one page of messages in chronological order
func (r *MessageRepository) FindByConversation(ctx context.Context, conversationID primitive.ObjectID, page, limit int) ([]models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(pageSkip(page, limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	msgs := []models.Message{}
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead adds readerID to readBy on every message the reader did not send
func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, readerID primitive.ObjectID) error {
	filter := bson.M{"conversationId": conversationID, "senderId": bson.M{"$ne": readerID}}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$addToSet": bson.M{"readBy": readerID}})
	return err
}
