package services

import (
	"context"
	"strings"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminService backs the moderation back office
type AdminService struct {
	users       repositories.UserRepository
	advertisers repositories.AdvertiserRepository
	ads         repositories.AdvertisementRepository
	posts       repositories.PostRepository
	cache       MembersCache
	now         func() time.Time
}

// NewAdminService creates a new AdminService. cache may be nil.
func NewAdminService(
	users repositories.UserRepository,
	advertisers repositories.AdvertiserRepository,
	ads repositories.AdvertisementRepository,
	posts repositories.PostRepository,
	cache MembersCache,
) *AdminService {
	return &AdminService{
		users:       users,
		advertisers: advertisers,
		ads:         ads,
		posts:       posts,
		cache:       cache,
		now:         time.Now,
	}
}

// Stats counts the main collections for the dashboard
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	var (
		stats models.AdminStats
		err   error
	)
	since := s.now().AddDate(0, 0, -30)

	if stats.TotalUsers, err = s.users.Count(ctx, false, nil); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.ActiveUsers, err = s.users.Count(ctx, true, nil); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.NewUsersLast30Days, err = s.users.Count(ctx, false, &since); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.TotalPosts, err = s.posts.Count(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.TotalAdvertisers, err = s.advertisers.Count(ctx, ""); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.PendingAdvertisers, err = s.advertisers.Count(ctx, models.AccountPending); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.TotalAdvertisements, err = s.ads.Count(ctx, ""); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.PendingReviews, err = s.ads.Count(ctx, models.AdPendingReview); err != nil {
		return nil, apperrors.Internal(err)
	}

	approved, err := s.ads.FindApproved(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	now := s.now()
	for i := range approved {
		if ShouldBeActive(&approved[i], now) {
			stats.ActiveAds++
		}
	}
	return &stats, nil
}

// ListUsers pages through all members, including deactivated ones
func (s *AdminService) ListUsers(ctx context.Context, search string, page, limit int) (*models.Page[*models.User], error) {
	page, limit = normalizePage(page, limit)
	users, total, err := s.users.List(ctx, repositories.UserListFilter{
		Search: strings.TrimSpace(search),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.Page[*models.User]{Items: users, Total: total, Page: page, Limit: limit}, nil
}

// DeactivateUser soft-deletes a member on behalf of an admin
func (s *AdminService) DeactivateUser(ctx context.Context, admin Viewer, userID primitive.ObjectID) error {
	if admin.ID == userID {
		return apperrors.Validation("Admins cannot deactivate their own account", nil)
	}
	if err := s.users.SetActive(ctx, userID, false); err != nil {
		return apperrors.Wrap(err, "User not found")
	}
	logger.Info("user deactivated by admin", "user", userID.Hex(), "admin", admin.ID.Hex())
	invalidateMembers(ctx, s.cache)
	return nil
}

// SetAdvertiserStatus approves, suspends or cancels an advertiser account
func (s *AdminService) SetAdvertiserStatus(ctx context.Context, advertiserID primitive.ObjectID, req *models.AdvertiserStatusRequest) (*models.Advertiser, error) {
	if !req.Status.Valid() {
		return nil, apperrors.Validation("Validation failed", map[string]string{"status": "is not a valid account status"})
	}
	if err := s.advertisers.UpdateStatus(ctx, advertiserID, req.Status, strings.TrimSpace(req.Reason), s.now()); err != nil {
		return nil, apperrors.Wrap(err, "Advertiser not found")
	}
	advertiser, err := s.advertisers.FindByID(ctx, advertiserID)
	if err != nil {
		return nil, apperrors.Wrap(err, "Advertiser not found")
	}
	logger.Info("advertiser status changed", "advertiser", advertiserID.Hex(), "status", req.Status)
	return advertiser, nil
}

// ReviewAd approves or rejects an advertisement waiting for review
func (s *AdminService) ReviewAd(ctx context.Context, adID primitive.ObjectID, req *models.AdReviewRequest) (*models.Advertisement, error) {
	ad, err := s.ads.FindByID(ctx, adID)
	if err != nil {
		return nil, apperrors.Wrap(err, "Advertisement not found")
	}
	if ad.Status != models.AdPendingReview {
		return nil, apperrors.Validation("Only advertisements pending review can be reviewed", nil)
	}
	notes := strings.TrimSpace(req.Notes)
	if !req.Approve && notes == "" {
		return nil, apperrors.Validation("Validation failed", map[string]string{"notes": "a reason is required when rejecting"})
	}

	now := s.now()
	ad.Status = models.AdRejected
	if req.Approve {
		ad.Status = models.AdApproved
	}
	ad.ReviewNotes = notes
	ad.ReviewedAt = &now
	RecalculateMetrics(ad, now)
	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, apperrors.Wrap(err, "Advertisement not found")
	}
	logger.Info("advertisement reviewed", "advertisement", ad.ID.Hex(), "status", ad.Status)
	return ad, nil
}
