package models

import (
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LastMessage is a denormalized snapshot of the newest message
type LastMessage struct {
	Content  string             `bson:"content" json:"content"`
	SenderID primitive.ObjectID `bson:"senderId" json:"senderId"`
	SentAt   time.Time          `bson:"sentAt" json:"sentAt"`
}

// Conversation is a direct conversation between exactly two members
type Conversation struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	LastMessage  *LastMessage         `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	// UnreadCount is keyed by participant id hex
	UnreadCount map[string]int `bson:"unreadCount" json:"unreadCount"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// HasParticipant reports whether id takes part in the conversation
func (c *Conversation) HasParticipant(id primitive.ObjectID) bool {
	for _, p := range c.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not id
func (c *Conversation) OtherParticipant(id primitive.ObjectID) primitive.ObjectID {
	for _, p := range c.Participants {
		if p != id {
			return p
		}
	}
	return primitive.NilObjectID
}

// Message belongs to a Conversation
type Message struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	ConversationID primitive.ObjectID   `bson:"conversationId" json:"conversationId"`
	SenderID       primitive.ObjectID   `bson:"senderId" json:"senderId"`
	Content        string               `bson:"content" json:"content"`
	ReadBy         []primitive.ObjectID `bson:"readBy,omitempty" json:"readBy,omitempty"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
}

// ValidateConversationParticipants enforces exactly two distinct, non-nil participants.
func ValidateConversationParticipants(ids []primitive.ObjectID) error {
	if len(ids) != 2 {
		return apperrors.Validation("A conversation must have exactly 2 participants",
			map[string]string{"participants": "must contain exactly 2 members"})
	}
	if ids[0].IsZero() || ids[1].IsZero() {
		return apperrors.Validation("Invalid participant",
			map[string]string{"participants": "must be valid member ids"})
	}
	if ids[0] == ids[1] {
		return apperrors.Validation("Cannot start a conversation with yourself",
			map[string]string{"participants": "must be two different members"})
	}
	return nil
}
