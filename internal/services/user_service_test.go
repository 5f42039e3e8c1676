package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/cache"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/config"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newUserService(repo *mocks.UserRepository, c MembersCache) *UserService {
	s := NewUserService(repo, c)
	s.now = func() time.Time { return testNow }
	return s
}

func TestCleanInterests(t *testing.T) {
	assert.Equal(t, []string{"Worship", "missions"}, CleanInterests([]string{" Worship ", "", "worship", "missions", "  "}))
	assert.Empty(t, CleanInterests(nil))
}

func TestUpdateInterests_InvalidatesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisCache(config.RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	t.Cleanup(func() { _ = rc.Close() })
	require.NoError(t, rc.SetNewestMembers(context.Background(), 8, []models.PublicProfile{}))

	user := &models.User{ID: primitive.NewObjectID(), IsActive: true}
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	got, err := newUserService(repo, rc).UpdateInterests(context.Background(), user.ID, []string{"choir", "Choir", "outreach"})
	require.NoError(t, err)
	assert.Equal(t, []string{"choir", "outreach"}, got.Interests)
	assert.False(t, mr.Exists(rc.KeyForNewestMembers(8)))
}

func TestUpdateInterests_EmptyListClears(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), IsActive: true, Interests: []string{"choir", "outreach"}}
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ID == user.ID && len(u.Interests) == 0
	})).Return(nil)

	got, err := newUserService(repo, nil).UpdateInterests(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Interests)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), FirstName: "Naomi", LastName: "Bethlehem", Bio: "keep"}
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	last := " Mara "
	status := models.RelationshipWidowed
	got, err := newUserService(repo, nil).UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{
		LastName:           &last,
		RelationshipStatus: &status,
		Location:           &models.Location{City: " Moab "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Naomi", got.FirstName)
	assert.Equal(t, "Mara", got.LastName)
	assert.Equal(t, "keep", got.Bio)
	assert.Equal(t, "Moab", got.Location.City)
	assert.Equal(t, models.RelationshipWidowed, got.RelationshipStatus)
}

func TestUpdateProfile_InvalidStatus(t *testing.T) {
	status := models.RelationshipStatus("it's complicated")
	_, err := newUserService(new(mocks.UserRepository), nil).UpdateProfile(context.Background(), primitive.NewObjectID(),
		&models.UpdateProfileRequest{RelationshipStatus: &status})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdatePrivacy_StartsFromDefaults(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	show := true
	got, err := newUserService(repo, nil).UpdatePrivacy(context.Background(), user.ID, &models.UpdatePrivacyRequest{ShowRelationshipStatus: &show})
	require.NoError(t, err)
	assert.True(t, got.ShowRelationshipStatus)
	assert.True(t, got.ShowLocation)
	assert.True(t, got.ShowInterests)
}

func TestGetPublicProfile_Inactive(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), IsActive: false}
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	_, err := newUserService(repo, nil).GetPublicProfile(context.Background(), user.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeactivate(t *testing.T) {
	id := primitive.NewObjectID()
	repo := new(mocks.UserRepository)
	repo.On("SetActive", mock.Anything, id, false).Return(nil)

	require.NoError(t, newUserService(repo, nil).Deactivate(context.Background(), id))
	repo.AssertExpectations(t)
}

func TestConnect(t *testing.T) {
	viewer, other := primitive.NewObjectID(), primitive.NewObjectID()
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, other).Return(&models.User{ID: other, IsActive: true}, nil)
	repo.On("AddConnection", mock.Anything, viewer, other).Return(nil)

	s := newUserService(repo, nil)
	require.NoError(t, s.Connect(context.Background(), viewer, other))
	assert.True(t, apperrors.IsKind(s.Connect(context.Background(), viewer, viewer), apperrors.KindValidation))
}

func TestPrayerRequests(t *testing.T) {
	owner := &models.User{
		ID:       primitive.NewObjectID(),
		IsActive: true,
		PrayerRequests: []models.PrayerRequest{
			{ID: primitive.NewObjectID(), Request: "healing for my mother"},
			{ID: primitive.NewObjectID(), Request: "private matter", IsPrivate: true},
		},
	}
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
	s := newUserService(repo, nil)

	mine, err := s.ListPrayerRequests(context.Background(), owner.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := s.ListPrayerRequests(context.Background(), primitive.NewObjectID(), owner.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.False(t, theirs[0].IsPrivate)
}

func TestAddPrayerRequestAndAnswer(t *testing.T) {
	id := primitive.NewObjectID()
	repo := new(mocks.UserRepository)
	repo.On("AddPrayerRequest", mock.Anything, id, mock.MatchedBy(func(pr models.PrayerRequest) bool {
		return pr.Request == "guidance" && !pr.IsAnswered && pr.CreatedAt.Equal(testNow)
	})).Return(nil)
	missing := primitive.NewObjectID()
	repo.On("MarkPrayerAnswered", mock.Anything, id, missing, testNow).Return(mongo.ErrNoDocuments)

	s := newUserService(repo, nil)
	pr, err := s.AddPrayerRequest(context.Background(), id, &models.PrayerRequestInput{Request: " guidance "})
	require.NoError(t, err)
	assert.False(t, pr.ID.IsZero())

	err = s.MarkPrayerAnswered(context.Background(), id, missing)
	assert.True(t, apperrors.IsNotFound(err))
}
