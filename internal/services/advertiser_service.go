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

const defaultPlan = "basic"

// InteractionContext is request metadata stored with an ad interaction
type InteractionContext struct {
	UserID    *primitive.ObjectID
	IPAddress string
	UserAgent string
}

// AdvertiserService handles advertiser accounts, campaigns and ad tracking
type AdvertiserService struct {
	advertisers  repositories.AdvertiserRepository
	ads          repositories.AdvertisementRepository
	interactions repositories.AdInteractionRepository
	users        repositories.UserRepository
	now          func() time.Time
}

// NewAdvertiserService creates a new AdvertiserService
func NewAdvertiserService(
	advertisers repositories.AdvertiserRepository,
	ads repositories.AdvertisementRepository,
	interactions repositories.AdInteractionRepository,
	users repositories.UserRepository,
) *AdvertiserService {
	return &AdvertiserService{
		advertisers:  advertisers,
		ads:          ads,
		interactions: interactions,
		users:        users,
		now:          time.Now,
	}
}

// Register creates a pending advertiser account for the viewer. One account per member email.
func (s *AdvertiserService) Register(ctx context.Context, viewerID primitive.ObjectID, req *models.AdvertiserRegisterRequest) (*models.Advertiser, error) {
	user, err := s.users.FindByID(ctx, viewerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "User not found")
	}

	_, err = s.advertisers.FindByEmail(ctx, user.Email)
	if err == nil {
		return nil, apperrors.Conflict("An advertiser account already exists for this email")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Internal(err)
	}

	plan := req.Plan
	if plan == "" {
		plan = defaultPlan
	}
	advertiser := &models.Advertiser{
		UserID:             user.ID,
		Email:              user.Email,
		BusinessName:       strings.TrimSpace(req.BusinessName),
		BusinessType:       strings.TrimSpace(req.BusinessType),
		Website:            req.Website,
		Phone:              strings.TrimSpace(req.Phone),
		Description:        strings.TrimSpace(req.Description),
		Address:            req.Address,
		AccountStatus:      models.AccountPending,
		CurrentPlan:        plan,
		SubscriptionStatus: models.SubscriptionInactive,
	}
	if err := s.advertisers.Create(ctx, advertiser); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("An advertiser account already exists for this email")
		}
		return nil, apperrors.Internal(err)
	}
	logger.Info("advertiser registered", "advertiser", advertiser.ID.Hex(), "user", user.ID.Hex())
	return advertiser, nil
}

// Dashboard returns the viewer's advertiser account, ads and totals across all ads
func (s *AdvertiserService) Dashboard(ctx context.Context, viewerID primitive.ObjectID) (*models.AdvertiserDashboard, error) {
	advertiser, err := s.advertiserFor(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	ads, err := s.ads.FindByAdvertiser(ctx, advertiser.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	var totals models.AdMetrics
	for _, ad := range ads {
		totals.Impressions += ad.Metrics.Impressions
		totals.Clicks += ad.Metrics.Clicks
		totals.Conversions += ad.Metrics.Conversions
		totals.Shares += ad.Metrics.Shares
		totals.TotalSpent += ad.Metrics.TotalSpent
	}
	totals.CTR = ComputeCTR(totals.Impressions, totals.Clicks, 0)

	return &models.AdvertiserDashboard{Advertiser: advertiser, Advertisements: ads, Totals: totals}, nil
}

// ListAds lists the viewer's advertisements
func (s *AdvertiserService) ListAds(ctx context.Context, viewerID primitive.ObjectID) ([]models.Advertisement, error) {
	advertiser, err := s.advertiserFor(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	ads, err := s.ads.FindByAdvertiser(ctx, advertiser.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return ads, nil
}

// CreateAd creates a draft advertisement. The advertiser account must be approved.
func (s *AdvertiserService) CreateAd(ctx context.Context, viewerID primitive.ObjectID, in *models.AdvertisementInput) (*models.Advertisement, error) {
	advertiser, err := s.advertiserFor(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if advertiser.AccountStatus != models.AccountApproved {
		return nil, apperrors.Forbidden("Your advertiser account must be approved before creating advertisements")
	}
	if err := validateAdInput(in); err != nil {
		return nil, err
	}

	ad := &models.Advertisement{
		AdvertiserID: advertiser.ID,
		Status:       models.AdDraft,
		IsActive:     true,
	}
	applyAdInput(ad, in)
	RecalculateMetrics(ad, s.now())
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, apperrors.Internal(err)
	}
	return ad, nil
}

// GetAd returns one of the viewer's advertisements
func (s *AdvertiserService) GetAd(ctx context.Context, viewerID, adID primitive.ObjectID) (*models.Advertisement, error) {
	_, ad, err := s.ownedAd(ctx, viewerID, adID)
	return ad, err
}

// UpdateAd edits an advertisement. Changing the content of an approved or
// pending ad sends it back to review.
func (s *AdvertiserService) UpdateAd(ctx context.Context, viewerID, adID primitive.ObjectID, in *models.AdvertisementInput) (*models.Advertisement, error) {
	_, ad, err := s.ownedAd(ctx, viewerID, adID)
	if err != nil {
		return nil, err
	}
	if err := validateAdInput(in); err != nil {
		return nil, err
	}

	before := *ad
	applyAdInput(ad, in)
	contentChanged := ad.Title != before.Title || ad.Description != before.Description ||
		ad.ImageURL != before.ImageURL || ad.TargetURL != before.TargetURL || ad.CallToAction != before.CallToAction
	if contentChanged && (ad.Status == models.AdApproved || ad.Status == models.AdPendingReview) {
		ad.Status = models.AdPendingReview
		ad.ReviewedAt = nil
	}

	RecalculateMetrics(ad, s.now())
	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, apperrors.Wrap(err, "Advertisement not found")
	}
	return ad, nil
}

// DeleteAd removes one of the viewer's advertisements
func (s *AdvertiserService) DeleteAd(ctx context.Context, viewerID, adID primitive.ObjectID) error {
	_, ad, err := s.ownedAd(ctx, viewerID, adID)
	if err != nil {
		return err
	}
	if err := s.ads.Delete(ctx, ad.ID); err != nil {
		return apperrors.Wrap(err, "Advertisement not found")
	}
	return nil
}

// SubmitAd sends a draft or rejected advertisement for review
func (s *AdvertiserService) SubmitAd(ctx context.Context, viewerID, adID primitive.ObjectID) (*models.Advertisement, error) {
	_, ad, err := s.ownedAd(ctx, viewerID, adID)
	if err != nil {
		return nil, err
	}
	if ad.Status != models.AdDraft && ad.Status != models.AdRejected {
		return nil, apperrors.Validation("Only draft or rejected advertisements can be submitted for review", nil)
	}
	ad.Status = models.AdPendingReview
	ad.ReviewNotes = ""
	RecalculateMetrics(ad, s.now())
	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, apperrors.Wrap(err, "Advertisement not found")
	}
	return ad, nil
}

// ActiveAds lists the advertisements that may be served right now
func (s *AdvertiserService) ActiveAds(ctx context.Context) ([]models.Advertisement, error) {
	ads, err := s.ads.FindApproved(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	now := s.now()
	active := make([]models.Advertisement, 0, len(ads))
	for i := range ads {
		if ShouldBeActive(&ads[i], now) {
			active = append(active, ads[i])
		}
	}
	return active, nil
}

// TrackInteraction appends an interaction event and bumps the ad's counters.
// Counters are incremented atomically in the store; the CTR is then recomputed
// from the returned document.
func (s *AdvertiserService) TrackInteraction(ctx context.Context, adID primitive.ObjectID, req *models.InteractionRequest, ic InteractionContext) (*models.AdMetrics, error) {
	if !req.Type.Valid() {
		return nil, apperrors.Validation("Validation failed", map[string]string{"type": "must be one of: impression click conversion share"})
	}
	ad, err := s.ads.FindByID(ctx, adID)
	if err != nil {
		return nil, apperrors.Wrap(err, "Advertisement not found")
	}
	now := s.now()
	if !ShouldBeActive(ad, now) {
		return nil, apperrors.Validation("Advertisement is not currently active", nil)
	}

	device := req.Device
	if device.UserAgent == "" {
		device.UserAgent = ic.UserAgent
	}
	interaction := &models.AdInteraction{
		AdvertisementID: ad.ID,
		UserID:          ic.UserID,
		Type:            req.Type,
		Device:          device,
		IPAddress:       ic.IPAddress,
		Location:        req.Location,
		Referrer:        req.Referrer,
		CreatedAt:       now,
	}
	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, apperrors.Internal(err)
	}

	var delta repositories.MetricsDelta
	switch req.Type {
	case models.InteractionImpression:
		delta.Impressions = 1
	case models.InteractionClick:
		delta.Clicks = 1
		delta.Spent = ad.Budget.CostPerClick
	case models.InteractionConversion:
		delta.Conversions = 1
	case models.InteractionShare:
		delta.Shares = 1
	}

	updated, err := s.ads.IncrementMetrics(ctx, ad.ID, delta)
	if err != nil {
		return nil, apperrors.Wrap(err, "Advertisement not found")
	}
	RecalculateMetrics(updated, now)
	if err := s.ads.SetCTR(ctx, updated.ID, updated.Metrics.CTR, now); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &updated.Metrics, nil
}

func (s *AdvertiserService) advertiserFor(ctx context.Context, viewerID primitive.ObjectID) (*models.Advertiser, error) {
	advertiser, err := s.advertisers.FindByUserID(ctx, viewerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "Advertiser account not found")
	}
	return advertiser, nil
}

func (s *AdvertiserService) ownedAd(ctx context.Context, viewerID, adID primitive.ObjectID) (*models.Advertiser, *models.Advertisement, error) {
	advertiser, err := s.advertiserFor(ctx, viewerID)
	if err != nil {
		return nil, nil, err
	}
	ad, err := s.ads.FindByID(ctx, adID)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "Advertisement not found")
	}
	if ad.AdvertiserID != advertiser.ID {
		return nil, nil, apperrors.Forbidden("You do not own this advertisement")
	}
	return advertiser, ad, nil
}

func validateAdInput(in *models.AdvertisementInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "is required"
	}
	if in.Budget.TotalBudget < 0 {
		fields["budget.totalBudget"] = "must not be negative"
	}
	if in.Budget.CostPerClick < 0 {
		fields["budget.costPerClick"] = "must not be negative"
	}
	s := in.Targeting.Schedule
	if s.StartDate != nil && s.EndDate != nil && s.EndDate.Before(*s.StartDate) {
		fields["targeting.schedule.endDate"] = "must be after the start date"
	}
	if len(fields) > 0 {
		return apperrors.Validation("Validation failed", fields)
	}
	return nil
}

func applyAdInput(ad *models.Advertisement, in *models.AdvertisementInput) {
	ad.Title = strings.TrimSpace(in.Title)
	ad.Description = strings.TrimSpace(in.Description)
	ad.ImageURL = in.ImageURL
	ad.TargetURL = in.TargetURL
	ad.CallToAction = strings.TrimSpace(in.CallToAction)
	ad.AdType = in.AdType
	if ad.AdType == "" {
		ad.AdType = models.AdTypeBanner
	}
	ad.Targeting = in.Targeting
	ad.Budget = in.Budget
}
