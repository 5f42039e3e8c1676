package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const maxMessageLength = 2000

// MessageService handles direct conversations between members
type MessageService struct {
	conversations repositories.ConversationRepository
	messages      repositories.MessageRepository
	users         repositories.UserRepository
	now           func() time.Time
}

// NewMessageService creates a new MessageService
func NewMessageService(
	conversations repositories.ConversationRepository,
	messages repositories.MessageRepository,
	users repositories.UserRepository,
) *MessageService {
	return &MessageService{
		conversations: conversations,
		messages:      messages,
		users:         users,
		now:           time.Now,
	}
}

// CreateConversation opens a conversation between exactly two members, one of
// them the viewer. An existing conversation for the same pair is returned
// instead of creating a second one; created reports which happened.
func (s *MessageService) CreateConversation(ctx context.Context, viewerID primitive.ObjectID, participants []primitive.ObjectID) (conv *models.Conversation, created bool, err error) {
	if err := models.ValidateConversationParticipants(participants); err != nil {
		return nil, false, err
	}
	var other primitive.ObjectID
	switch viewerID {
	case participants[0]:
		other = participants[1]
	case participants[1]:
		other = participants[0]
	default:
		return nil, false, apperrors.Forbidden("You can only start conversations you take part in")
	}

	recipient, err := s.users.FindByID(ctx, other)
	if err != nil {
		return nil, false, apperrors.Wrap(err, "User not found")
	}
	if !recipient.IsActive {
		return nil, false, apperrors.NotFound("User not found")
	}
	if recipient.Privacy != nil && !recipient.Privacy.AllowMessages {
		return nil, false, apperrors.Forbidden("This member does not accept messages")
	}

	existing, err := s.conversations.FindByPair(ctx, viewerID, other)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, apperrors.Internal(err)
	}

	conv = &models.Conversation{
		Participants: []primitive.ObjectID{viewerID, other},
		UnreadCount:  map[string]int{viewerID.Hex(): 0, other.Hex(): 0},
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, false, apperrors.Internal(err)
	}
	return conv, true, nil
}

// ListConversations returns the viewer's conversations with the other participant's public profile
func (s *MessageService) ListConversations(ctx context.Context, viewerID primitive.ObjectID) ([]models.ConversationSummary, error) {
	convs, err := s.conversations.FindByParticipant(ctx, viewerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(convs) == 0 {
		return []models.ConversationSummary{}, nil
	}

	otherIDs := make([]primitive.ObjectID, 0, len(convs))
	for i := range convs {
		otherIDs = append(otherIDs, convs[i].OtherParticipant(viewerID))
	}
	users, err := s.users.FindByIDs(ctx, otherIDs)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]models.ConversationSummary, 0, len(convs))
	for i := range convs {
		c := &convs[i]
		other := c.OtherParticipant(viewerID)
		summary := models.ConversationSummary{
			ID:          c.ID,
			LastMessage: c.LastMessage,
			Unread:      c.UnreadCount[viewerID.Hex()],
		}
		if u, ok := byID[other]; ok {
			summary.Other = ToPublicProfile(u)
		} else {
			summary.Other = models.PublicProfile{ID: other}
		}
		out = append(out, summary)
	}
	return out, nil
}

// GetMessages returns a page of messages and marks the conversation read for the viewer
func (s *MessageService) GetMessages(ctx context.Context, viewerID, conversationID primitive.ObjectID, page, limit int) (*models.ConversationThread, error) {
	conv, err := s.participantConversation(ctx, viewerID, conversationID)
	if err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)
	msgs, err := s.messages.FindByConversation(ctx, conv.ID, page, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if conv.UnreadCount[viewerID.Hex()] > 0 {
		if err := s.conversations.ResetUnread(ctx, conv.ID, viewerID); err != nil {
			logger.Warn("failed to reset unread count", "conversation", conv.ID.Hex(), "error", err)
		} else {
			conv.UnreadCount[viewerID.Hex()] = 0
		}
		if err := s.messages.MarkRead(ctx, conv.ID, viewerID); err != nil {
			logger.Warn("failed to mark messages read", "conversation", conv.ID.Hex(), "error", err)
		}
	}
	return &models.ConversationThread{Conversation: conv, Messages: msgs}, nil
}

// SendMessage stores a message and updates the conversation snapshot and the recipient's unread count
func (s *MessageService) SendMessage(ctx context.Context, viewerID, conversationID primitive.ObjectID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("Validation failed", map[string]string{"content": "is required"})
	}
	if len([]rune(content)) > maxMessageLength {
		return nil, apperrors.Validation("Validation failed", map[string]string{"content": "must be at most 2000 characters"})
	}

	conv, err := s.participantConversation(ctx, viewerID, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       viewerID,
		Content:        content,
		ReadBy:         []primitive.ObjectID{viewerID},
		CreatedAt:      s.now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.Internal(err)
	}

	last := models.LastMessage{Content: content, SenderID: viewerID, SentAt: msg.CreatedAt}
	if err := s.conversations.RecordMessage(ctx, conv.ID, last, conv.OtherParticipant(viewerID)); err != nil {
		return nil, apperrors.Internal(err)
	}
	return msg, nil
}

func (s *MessageService) participantConversation(ctx context.Context, viewerID, conversationID primitive.ObjectID) (*models.Conversation, error) {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "Conversation not found")
	}
	if !conv.HasParticipant(viewerID) {
		return nil, apperrors.Forbidden("You are not a participant in this conversation")
	}
	if conv.UnreadCount == nil {
		conv.UnreadCount = map[string]int{}
	}
	return conv, nil
}
