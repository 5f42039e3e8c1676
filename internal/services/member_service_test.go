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

var feedConfig = config.FeedConfig{PageSize: 6, MinPersonalized: 4, NewestLimit: 8}

func newMemberService(repo *mocks.UserRepository, c MembersCache) *MemberService {
	s := NewMemberService(repo, c, feedConfig)
	s.now = func() time.Time { return testNow }
	return s
}

func feedViewer() *models.User {
	return &models.User{
		ID:                 primitive.NewObjectID(),
		FirstName:          "Viewer",
		Interests:          []string{"worship", "missions", "youth"},
		Location:           &models.Location{City: "Austin", State: "TX"},
		RelationshipStatus: models.RelationshipSingle,
		IsActive:           true,
		JoinDate:           daysAgo(400),
	}
}

// member builds an active candidate. joined is days before testNow.
func member(name string, joined int, interests ...string) *models.User {
	return &models.User{
		ID:        primitive.NewObjectID(),
		FirstName: name,
		Interests: interests,
		Location:  &models.Location{City: "Denver", State: "CO"},
		IsActive:  true,
		JoinDate:  daysAgo(joined),
		Privacy:   models.DefaultPrivacy(),
	}
}

func ids(members []models.FeaturedMember) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		out = append(out, m.ID)
	}
	return out
}

func TestPersonalizedFeatured_BackfillsWithNewest(t *testing.T) {
	viewer := feedViewer()
	strong := member("Strong", 100, "worship", "missions") // 20
	weak := member("Weak", 200, "youth")                   // 10
	newest := member("Newest", 40)                         // 0
	older := member("Older", 60)                           // 0
	oldest := member("Oldest", 90)                         // 0

	// joinDate descending, the viewer slipping through must be ignored
	candidates := []*models.User{newest, older, oldest, strong, weak, viewer}

	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, viewer.ID).Return(viewer, nil)
	repo.On("FindActive", mock.Anything, []primitive.ObjectID{viewer.ID}, 0).Return(candidates, nil)

	feed, err := newMemberService(repo, nil).PersonalizedFeatured(context.Background(), viewer.ID, 6)
	require.NoError(t, err)

	assert.Equal(t, []primitive.ObjectID{strong.ID, weak.ID, newest.ID, older.ID, oldest.ID}, ids(feed.Members))
	assert.Equal(t, 5, feed.Count)
	assert.Equal(t, 2, feed.PersonalizedCount)

	assert.Equal(t, 20, feed.Members[0].CompatibilityScore)
	assert.True(t, feed.Members[0].IsPersonalized)
	assert.Equal(t, 10, feed.Members[1].CompatibilityScore)
	for _, m := range feed.Members[2:] {
		assert.Zero(t, m.CompatibilityScore)
		assert.False(t, m.IsPersonalized)
	}
	assert.NotContains(t, ids(feed.Members), viewer.ID)
	repo.AssertExpectations(t)
}

func TestPersonalizedFeatured_TruncatesWithoutBackfill(t *testing.T) {
	viewer := feedViewer()
	var candidates []*models.User
	// scores 10,20,30,10,20,30,10 plus two non-matching members
	interestSets := [][]string{
		{"worship"}, {"worship", "youth"}, {"worship", "youth", "missions"},
		{"missions"}, {"youth", "missions"}, {"missions", "worship", "youth"}, {"youth"},
	}
	for i, set := range interestSets {
		candidates = append(candidates, member("m", 50+i, set...))
	}
	candidates = append(candidates, member("none1", 80), member("none2", 81))

	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, viewer.ID).Return(viewer, nil)
	repo.On("FindActive", mock.Anything, []primitive.ObjectID{viewer.ID}, 0).Return(candidates, nil)

	feed, err := newMemberService(repo, nil).PersonalizedFeatured(context.Background(), viewer.ID, 6)
	require.NoError(t, err)

	require.Len(t, feed.Members, 6)
	assert.Equal(t, 6, feed.PersonalizedCount)
	// equal scores keep store order (newest first)
	assert.Equal(t, []primitive.ObjectID{
		candidates[2].ID, candidates[5].ID,
		candidates[1].ID, candidates[4].ID,
		candidates[0].ID, candidates[3].ID,
	}, ids(feed.Members))
	for i := 1; i < len(feed.Members); i++ {
		assert.GreaterOrEqual(t, feed.Members[i-1].CompatibilityScore, feed.Members[i].CompatibilityScore)
		assert.True(t, feed.Members[i].IsPersonalized)
	}
}

func TestPersonalizedFeatured_ExactlyThresholdSkipsBackfill(t *testing.T) {
	viewer := feedViewer()
	candidates := []*models.User{
		member("a", 50, "worship"), member("b", 51, "youth"),
		member("c", 52, "missions"), member("d", 53, "worship"),
		member("zero", 54),
	}
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, viewer.ID).Return(viewer, nil)
	repo.On("FindActive", mock.Anything, []primitive.ObjectID{viewer.ID}, 0).Return(candidates, nil)

	feed, err := newMemberService(repo, nil).PersonalizedFeatured(context.Background(), viewer.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, feed.Count)
	assert.Equal(t, 4, feed.PersonalizedCount)
}

func TestPersonalizedFeatured_AppliesPrivacy(t *testing.T) {
	viewer := feedViewer()
	hidden := member("Hidden", 100, "worship")
	hidden.Privacy = &models.PrivacySettings{}

	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, viewer.ID).Return(viewer, nil)
	repo.On("FindActive", mock.Anything, []primitive.ObjectID{viewer.ID}, 0).Return([]*models.User{hidden}, nil)

	feed, err := newMemberService(repo, nil).PersonalizedFeatured(context.Background(), viewer.ID, 6)
	require.NoError(t, err)
	require.Len(t, feed.Members, 1)
	assert.Equal(t, 10, feed.Members[0].CompatibilityScore)
	assert.Nil(t, feed.Members[0].Interests)
	assert.Nil(t, feed.Members[0].Location)
	assert.Equal(t, "Hidden", feed.Members[0].FirstName)
}

func TestPersonalizedFeatured_ViewerNotFound(t *testing.T) {
	id := primitive.NewObjectID()
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, id).Return(nil, mongo.ErrNoDocuments)

	_, err := newMemberService(repo, nil).PersonalizedFeatured(context.Background(), id, 6)
	assert.True(t, apperrors.IsNotFound(err))
	repo.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestPersonalizedFeatured_InactiveViewer(t *testing.T) {
	viewer := feedViewer()
	viewer.IsActive = false
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, viewer.ID).Return(viewer, nil)

	_, err := newMemberService(repo, nil).PersonalizedFeatured(context.Background(), viewer.ID, 6)
	assert.True(t, apperrors.IsNotFound(err))
	repo.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewestMembers_UsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisCache(config.RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	t.Cleanup(func() { _ = rc.Close() })

	users := []*models.User{member("One", 1, "worship"), member("Two", 2)}
	users[1].Privacy = &models.PrivacySettings{}
	users[1].Location = &models.Location{City: "Secret"}

	repo := new(mocks.UserRepository)
	repo.On("FindActive", mock.Anything, []primitive.ObjectID(nil), 8).Return(users, nil).Once()

	s := newMemberService(repo, rc)
	first, err := s.NewestMembers(context.Background(), 0)
	require.NoError(t, err)
	second, err := s.NewestMembers(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Count)
	assert.Nil(t, first.Members[1].Location)
	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, first.Members[0].ID, second.Members[0].ID)
	repo.AssertExpectations(t)
}

func TestNewestMembers_CacheDownFallsBackToStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisCache(config.RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	t.Cleanup(func() { _ = rc.Close() })
	mr.Close()

	repo := new(mocks.UserRepository)
	repo.On("FindActive", mock.Anything, []primitive.ObjectID(nil), 3).Return([]*models.User{member("One", 1)}, nil)

	list, err := newMemberService(repo, rc).NewestMembers(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
}
