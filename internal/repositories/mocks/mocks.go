// Package mocks provides testify mocks of the repository interfaces for service and handler tests.
package mocks

import (
	"context"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repositories.UserRepository          = (*UserRepository)(nil)
	_ repositories.AdvertiserRepository    = (*AdvertiserRepository)(nil)
	_ repositories.AdvertisementRepository = (*AdvertisementRepository)(nil)
	_ repositories.AdInteractionRepository = (*AdInteractionRepository)(nil)
	_ repositories.ConversationRepository  = (*ConversationRepository)(nil)
	_ repositories.MessageRepository       = (*MessageRepository)(nil)
	_ repositories.PostRepository          = (*PostRepository)(nil)
	_ repositories.PrayerGroupRepository   = (*PrayerGroupRepository)(nil)
)

// userOrNil avoids a panic when a test returns a nil *models.User
func userOrNil(args mock.Arguments, i int) *models.User {
	if v := args.Get(i); v != nil {
		return v.(*models.User)
	}
	return nil
}

// UserRepository mocks repositories.UserRepository
type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args, 0), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args, 0), args.Error(1)
}

func (m *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) FindActive(ctx context.Context, exclude []primitive.ObjectID, limit int) ([]*models.User, error) {
	args := m.Called(ctx, exclude, limit)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *UserRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *UserRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *UserRepository) AddConnection(ctx context.Context, a, b primitive.ObjectID) error {
	return m.Called(ctx, a, b).Error(0)
}

func (m *UserRepository) AddPrayerRequest(ctx context.Context, userID primitive.ObjectID, req models.PrayerRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *UserRepository) MarkPrayerAnswered(ctx context.Context, userID, requestID primitive.ObjectID, at time.Time) error {
	return m.Called(ctx, userID, requestID, at).Error(0)
}

func (m *UserRepository) List(ctx context.Context, filter repositories.UserListFilter) ([]*models.User, int64, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepository) Count(ctx context.Context, activeOnly bool, joinedSince *time.Time) (int64, error) {
	args := m.Called(ctx, activeOnly, joinedSince)
	return args.Get(0).(int64), args.Error(1)
}

// AdvertiserRepository mocks repositories.AdvertiserRepository
type AdvertiserRepository struct{ mock.Mock }

func (m *AdvertiserRepository) Create(ctx context.Context, advertiser *models.Advertiser) error {
	return m.Called(ctx, advertiser).Error(0)
}

func (m *AdvertiserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Advertiser, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Advertiser)
	return a, args.Error(1)
}

func (m *AdvertiserRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Advertiser, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*models.Advertiser)
	return a, args.Error(1)
}

func (m *AdvertiserRepository) FindByEmail(ctx context.Context, email string) (*models.Advertiser, error) {
	args := m.Called(ctx, email)
	a, _ := args.Get(0).(*models.Advertiser)
	return a, args.Error(1)
}

func (m *AdvertiserRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AccountStatus, reason string, at time.Time) error {
	return m.Called(ctx, id, status, reason, at).Error(0)
}

func (m *AdvertiserRepository) Count(ctx context.Context, status models.AccountStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// AdvertisementRepository mocks repositories.AdvertisementRepository
type AdvertisementRepository struct{ mock.Mock }

func (m *AdvertisementRepository) Create(ctx context.Context, ad *models.Advertisement) error {
	return m.Called(ctx, ad).Error(0)
}

func (m *AdvertisementRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Advertisement, error) {
	args := m.Called(ctx, id)
	ad, _ := args.Get(0).(*models.Advertisement)
	return ad, args.Error(1)
}

func (m *AdvertisementRepository) FindByAdvertiser(ctx context.Context, advertiserID primitive.ObjectID) ([]models.Advertisement, error) {
	args := m.Called(ctx, advertiserID)
	ads, _ := args.Get(0).([]models.Advertisement)
	return ads, args.Error(1)
}

func (m *AdvertisementRepository) FindApproved(ctx context.Context) ([]models.Advertisement, error) {
	args := m.Called(ctx)
	ads, _ := args.Get(0).([]models.Advertisement)
	return ads, args.Error(1)
}

func (m *AdvertisementRepository) Update(ctx context.Context, ad *models.Advertisement) error {
	return m.Called(ctx, ad).Error(0)
}

func (m *AdvertisementRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AdvertisementRepository) IncrementMetrics(ctx context.Context, id primitive.ObjectID, delta repositories.MetricsDelta) (*models.Advertisement, error) {
	args := m.Called(ctx, id, delta)
	ad, _ := args.Get(0).(*models.Advertisement)
	return ad, args.Error(1)
}

func (m *AdvertisementRepository) SetCTR(ctx context.Context, id primitive.ObjectID, ctr float64, at time.Time) error {
	return m.Called(ctx, id, ctr, at).Error(0)
}

func (m *AdvertisementRepository) Count(ctx context.Context, status models.AdStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// AdInteractionRepository mocks repositories.AdInteractionRepository
type AdInteractionRepository struct{ mock.Mock }

func (m *AdInteractionRepository) Create(ctx context.Context, interaction *models.AdInteraction) error {
	return m.Called(ctx, interaction).Error(0)
}

// ConversationRepository mocks repositories.ConversationRepository
type ConversationRepository struct{ mock.Mock }

func (m *ConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	return m.Called(ctx, conv).Error(0)
}

func (m *ConversationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Conversation)
	return c, args.Error(1)
}

func (m *ConversationRepository) FindByPair(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	args := m.Called(ctx, a, b)
	c, _ := args.Get(0).(*models.Conversation)
	return c, args.Error(1)
}

func (m *ConversationRepository) FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	args := m.Called(ctx, userID)
	convs, _ := args.Get(0).([]models.Conversation)
	return convs, args.Error(1)
}

func (m *ConversationRepository) RecordMessage(ctx context.Context, id primitive.ObjectID, last models.LastMessage, recipient primitive.ObjectID) error {
	return m.Called(ctx, id, last, recipient).Error(0)
}

func (m *ConversationRepository) ResetUnread(ctx context.Context, id, userID primitive.ObjectID) error {
	return m.Called(ctx, id, userID).Error(0)
}

// MessageRepository mocks repositories.MessageRepository
type MessageRepository struct{ mock.Mock }

func (m *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MessageRepository) FindByConversation(ctx context.Context, conversationID primitive.ObjectID, page, limit int) ([]models.Message, error) {
	args := m.Called(ctx, conversationID, page, limit)
	msgs, _ := args.Get(0).([]models.Message)
	return msgs, args.Error(1)
}

func (m *MessageRepository) MarkRead(ctx context.Context, conversationID, readerID primitive.ObjectID) error {
	return m.Called(ctx, conversationID, readerID).Error(0)
}

// PostRepository mocks repositories.PostRepository
type PostRepository struct{ mock.Mock }

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Post)
	return p, args.Error(1)
}

func (m *PostRepository) FindVisible(ctx context.Context, viewerID primitive.ObjectID, connections []primitive.ObjectID, page, limit int) ([]models.Post, error) {
	args := m.Called(ctx, viewerID, connections, page, limit)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *PostRepository) AddLike(ctx context.Context, id primitive.ObjectID, like models.Like) error {
	return m.Called(ctx, id, like).Error(0)
}

func (m *PostRepository) RemoveLike(ctx context.Context, id, userID primitive.ObjectID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *PostRepository) AddComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) error {
	return m.Called(ctx, id, comment).Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PostRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// PrayerGroupRepository mocks repositories.PrayerGroupRepository
type PrayerGroupRepository struct{ mock.Mock }

func (m *PrayerGroupRepository) Create(ctx context.Context, group *models.PrayerGroup) error {
	return m.Called(ctx, group).Error(0)
}

func (m *PrayerGroupRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PrayerGroup, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*models.PrayerGroup)
	return g, args.Error(1)
}

func (m *PrayerGroupRepository) FindVisible(ctx context.Context, viewerID primitive.ObjectID) ([]models.PrayerGroup, error) {
	args := m.Called(ctx, viewerID)
	groups, _ := args.Get(0).([]models.PrayerGroup)
	return groups, args.Error(1)
}

func (m *PrayerGroupRepository) AddMember(ctx context.Context, id, userID primitive.ObjectID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *PrayerGroupRepository) RemoveMember(ctx context.Context, id, userID primitive.ObjectID) error {
	return m.Called(ctx, id, userID).Error(0)
}
