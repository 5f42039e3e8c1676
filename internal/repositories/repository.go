package repositories

import (
	"context"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserListFilter scopes an admin listing of users
type UserListFilter struct {
	Search string
	Page   int
	Limit  int
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// FindActive returns active users not in exclude, newest joinDate first. limit <= 0 means no limit.
	FindActive(ctx context.Context, exclude []primitive.ObjectID, limit int) ([]*models.User, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	AddConnection(ctx context.Context, a, b primitive.ObjectID) error
	AddPrayerRequest(ctx context.Context, userID primitive.ObjectID, req models.PrayerRequest) error
	MarkPrayerAnswered(ctx context.Context, userID, requestID primitive.ObjectID, at time.Time) error
	List(ctx context.Context, filter UserListFilter) ([]*models.User, int64, error)
	Count(ctx context.Context, activeOnly bool, joinedSince *time.Time) (int64, error)
}

// AdvertiserRepository defines the interface for advertiser accounts
type AdvertiserRepository interface {
	Create(ctx context.Context, advertiser *models.Advertiser) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Advertiser, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Advertiser, error)
	FindByEmail(ctx context.Context, email string) (*models.Advertiser, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AccountStatus, reason string, at time.Time) error
	Count(ctx context.Context, status models.AccountStatus) (int64, error)
}

// MetricsDelta holds counter increments for one advertisement
type MetricsDelta struct {
	Impressions int64
	Clicks      int64
	Conversions int64
	Shares      int64
	Spent       float64
}

// AdvertisementRepository defines the interface for advertisement data operations
type AdvertisementRepository interface {
	Create(ctx context.Context, ad *models.Advertisement) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Advertisement, error)
	FindByAdvertiser(ctx context.Context, advertiserID primitive.ObjectID) ([]models.Advertisement, error)
	FindApproved(ctx context.Context) ([]models.Advertisement, error)
	Update(ctx context.Context, ad *models.Advertisement) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// IncrementMetrics applies delta atomically and returns the updated document
	IncrementMetrics(ctx context.Context, id primitive.ObjectID, delta MetricsDelta) (*models.Advertisement, error)
	SetCTR(ctx context.Context, id primitive.ObjectID, ctr float64, at time.Time) error
	Count(ctx context.Context, status models.AdStatus) (int64, error)
}

// AdInteractionRepository stores append-only interaction events
type AdInteractionRepository interface {
	Create(ctx context.Context, interaction *models.AdInteraction) error
}

// ConversationRepository defines the interface for conversations
type ConversationRepository interface {
	Create(ctx context.Context, conv *models.Conversation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error)
	FindByPair(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error)
	FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error)
	// RecordMessage stores the lastMessage snapshot and bumps the recipient's unread count
	RecordMessage(ctx context.Context, id primitive.ObjectID, last models.LastMessage, recipient primitive.ObjectID) error
	ResetUnread(ctx context.Context, id, userID primitive.ObjectID) error
}

// MessageRepository defines the interface for messages
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	FindByConversation(ctx context.Context, conversationID primitive.ObjectID, page, limit int) ([]models.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID primitive.ObjectID) error
}

// PostRepository defines the interface for posts
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// FindVisible returns posts the viewer may read, newest first
	FindVisible(ctx context.Context, viewerID primitive.ObjectID, connections []primitive.ObjectID, page, limit int) ([]models.Post, error)
	AddLike(ctx context.Context, id primitive.ObjectID, like models.Like) error
	RemoveLike(ctx context.Context, id, userID primitive.ObjectID) error
	AddComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// PrayerGroupRepository defines the interface for prayer groups
type PrayerGroupRepository interface {
	Create(ctx context.Context, group *models.PrayerGroup) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.PrayerGroup, error)
	FindVisible(ctx context.Context, viewerID primitive.ObjectID) ([]models.PrayerGroup, error)
	AddMember(ctx context.Context, id, userID primitive.ObjectID) error
	RemoveMember(ctx context.Context, id, userID primitive.ObjectID) error
}
