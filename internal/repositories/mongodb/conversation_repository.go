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

var _ repositories.ConversationRepository = (*ConversationRepository)(nil)

// ConversationRepository handles MongoDB operations for Conversation
type ConversationRepository struct {
	collection *mongo.Collection
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *mongo.Database) *ConversationRepository {
	return &ConversationRepository{
		collection: db.Collection("conversations"),
	}
}

// Create inserts a conversation. Participant validation happens in the service.
func (r *ConversationRepository) Create(ctx context.Context, c *models.Conversation) error {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	if c.UnreadCount == nil {
		c.UnreadCount = map[string]int{}
	}
	_, err := r.collection.InsertOne(ctx, c)
	return err
}

// FindByID finds a conversation by ID
func (r *ConversationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByPair finds the conversation between a and b, in either order
func (r *ConversationRepository) FindByPair(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	return r.findOne(ctx, bson.M{"participants": bson.M{"$all": bson.A{a, b}, "$size": 2}})
}

// FindByParticipant lists a member's conversations, most recently active first
func (r *ConversationRepository) FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	convs := []models.Conversation{}
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// RecordMessage updates the lastMessage snapshot and increments the recipient's unread counter
func (r *ConversationRepository) RecordMessage(ctx context.Context, id primitive.ObjectID, last models.LastMessage, recipient primitive.ObjectID) error {
	return updateOne(ctx, r.collection, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"lastMessage": last, "updatedAt": last.SentAt},
		"$inc": bson.M{"unreadCount." + recipient.Hex(): 1},
	})
}

// ResetUnread zeroes a participant's unread counter
func (r *ConversationRepository) ResetUnread(ctx context.Context, id, userID primitive.ObjectID) error {
	return updateOne(ctx, r.collection, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"unreadCount." + userID.Hex(): 0},
	})
}

func (r *ConversationRepository) findOne(ctx context.Context, filter bson.M) (*models.Conversation, error) {
	var c models.Conversation
	if err := r.collection.FindOne(ctx, filter).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
