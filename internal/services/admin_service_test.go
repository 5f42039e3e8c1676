package services

import (
	"context"
	"testing"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type adminFixture struct {
	users       *mocks.UserRepository
	advertisers *mocks.AdvertiserRepository
	ads         *mocks.AdvertisementRepository
	posts       *mocks.PostRepository
	svc         *AdminService
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		users:       new(mocks.UserRepository),
		advertisers: new(mocks.AdvertiserRepository),
		ads:         new(mocks.AdvertisementRepository),
		posts:       new(mocks.PostRepository),
	}
	f.svc = NewAdminService(f.users, f.advertisers, f.ads, f.posts, nil)
	f.svc.now = func() time.Time { return testNow }
	return f
}

func TestAdminStats(t *testing.T) {
	f := newAdminFixture()
	since := testNow.AddDate(0, 0, -30)
	f.users.On("Count", mock.Anything, false, (*time.Time)(nil)).Return(int64(10), nil)
	f.users.On("Count", mock.Anything, true, (*time.Time)(nil)).Return(int64(8), nil)
	f.users.On("Count", mock.Anything, false, &since).Return(int64(3), nil)
	f.posts.On("Count", mock.Anything).Return(int64(42), nil)
	f.advertisers.On("Count", mock.Anything, models.AccountStatus("")).Return(int64(5), nil)
	f.advertisers.On("Count", mock.Anything, models.AccountPending).Return(int64(2), nil)
	f.ads.On("Count", mock.Anything, models.AdStatus("")).Return(int64(7), nil)
	f.ads.On("Count", mock.Anything, models.AdPendingReview).Return(int64(1), nil)
	f.ads.On("FindApproved", mock.Anything).Return([]models.Advertisement{
		{Status: models.AdApproved, IsActive: true},
		{Status: models.AdApproved, IsActive: false},
	}, nil)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.AdminStats{
		TotalUsers: 10, ActiveUsers: 8, NewUsersLast30Days: 3, TotalPosts: 42,
		TotalAdvertisers: 5, PendingAdvertisers: 2, TotalAdvertisements: 7, PendingReviews: 1, ActiveAds: 1,
	}, *stats)
}

func TestAdminListUsers_ClampsPaging(t *testing.T) {
	f := newAdminFixture()
	f.users.On("List", mock.Anything, repositories.UserListFilter{Search: "ruth", Page: 1, Limit: 100}).
		Return([]*models.User{{FirstName: "Ruth"}}, int64(1), nil)

	page, err := f.svc.ListUsers(context.Background(), " ruth ", -3, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 100, page.Limit)
}

func TestAdminDeactivateSelf(t *testing.T) {
	f := newAdminFixture()
	admin := Viewer{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	err := f.svc.DeactivateUser(context.Background(), admin, admin.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestReviewAd(t *testing.T) {
	f := newAdminFixture()
	pending := &models.Advertisement{ID: primitive.NewObjectID(), Status: models.AdPendingReview}
	draft := &models.Advertisement{ID: primitive.NewObjectID(), Status: models.AdDraft}
	f.ads.On("FindByID", mock.Anything, pending.ID).Return(pending, nil)
	f.ads.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)
	f.ads.On("Update", mock.Anything, pending).Return(nil)

	_, err := f.svc.ReviewAd(context.Background(), pending.ID, &models.AdReviewRequest{Approve: false})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.svc.ReviewAd(context.Background(), draft.ID, &models.AdReviewRequest{Approve: true})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	ad, err := f.svc.ReviewAd(context.Background(), pending.ID, &models.AdReviewRequest{Approve: true, Notes: "looks good"})
	require.NoError(t, err)
	assert.Equal(t, models.AdApproved, ad.Status)
	assert.Equal(t, testNow, *ad.ReviewedAt)
}

func TestSetAdvertiserStatus(t *testing.T) {
	f := newAdminFixture()
	id := primitive.NewObjectID()
	f.advertisers.On("UpdateStatus", mock.Anything, id, models.AccountApproved, "verified", testNow).Return(nil)
	f.advertisers.On("FindByID", mock.Anything, id).Return(&models.Advertiser{ID: id, AccountStatus: models.AccountApproved}, nil)

	adv, err := f.svc.SetAdvertiserStatus(context.Background(), id, &models.AdvertiserStatusRequest{Status: models.AccountApproved, Reason: " verified "})
	require.NoError(t, err)
	assert.Equal(t, models.AccountApproved, adv.AccountStatus)
}
