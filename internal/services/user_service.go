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

const maxInterests = 20

// UserService handles profile-related business logic
type UserService struct {
	userRepo repositories.UserRepository
	cache    MembersCache
	now      func() time.Time
}

// NewUserService creates a new UserService. cache may be nil.
func NewUserService(userRepo repositories.UserRepository, cache MembersCache) *UserService {
	return &UserService{
		userRepo: userRepo,
		cache:    cache,
		now:      time.Now,
	}
}

// GetMe returns the caller's full profile
func (s *UserService) GetMe(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "User not found")
	}
	return user, nil
}

// GetPublicProfile returns another member's privacy-filtered profile.
// Deactivated members are reported as not found.
func (s *UserService) GetPublicProfile(ctx context.Context, id primitive.ObjectID) (*models.PublicProfile, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "User not found")
	}
	if !user.IsActive {
		return nil, apperrors.NotFound("User not found")
	}
	profile := ToPublicProfile(user)
	return &profile, nil
}

// UpdateProfile applies the non-nil fields of req
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	if req.RelationshipStatus != nil && !req.RelationshipStatus.Valid() {
		return nil, apperrors.Validation("Validation failed", map[string]string{"relationshipStatus": "is not a valid relationship status"})
	}

	user, err := s.GetMe(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Bio != nil {
		user.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.Denomination != nil {
		user.Denomination = strings.TrimSpace(*req.Denomination)
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}
	if req.Location != nil {
		loc := trimLocation(*req.Location)
		user.Location = &loc
	}
	if req.RelationshipStatus != nil {
		user.RelationshipStatus = *req.RelationshipStatus
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.invalidate(ctx)
	return user, nil
}

// UpdateInterests replaces the caller's interests
func (s *UserService) UpdateInterests(ctx context.Context, id primitive.ObjectID, interests []string) (*models.User, error) {
	cleaned := CleanInterests(interests)
	if len(cleaned) > maxInterests {
		return nil, apperrors.Validation("Validation failed", map[string]string{"interests": "must contain at most 20 items"})
	}

	user, err := s.GetMe(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Interests = cleaned
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.invalidate(ctx)
	return user, nil
}

// UpdatePrivacy toggles the caller's privacy flags
func (s *UserService) UpdatePrivacy(ctx context.Context, id primitive.ObjectID, req *models.UpdatePrivacyRequest) (*models.PrivacySettings, error) {
	user, err := s.GetMe(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Privacy == nil {
		user.Privacy = models.DefaultPrivacy()
	}
	if req.ShowLocation != nil {
		user.Privacy.ShowLocation = *req.ShowLocation
	}
	if req.ShowRelationshipStatus != nil {
		user.Privacy.ShowRelationshipStatus = *req.ShowRelationshipStatus
	}
	if req.ShowInterests != nil {
		user.Privacy.ShowInterests = *req.ShowInterests
	}
	if req.AllowMessages != nil {
		user.Privacy.AllowMessages = *req.AllowMessages
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.invalidate(ctx)
	return user.Privacy, nil
}

// Deactivate soft-deletes a member
func (s *UserService) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	if err := s.userRepo.SetActive(ctx, id, false); err != nil {
		return apperrors.Wrap(err, "User not found")
	}
	logger.Info("user deactivated", "user", id.Hex())
	s.invalidate(ctx)
	return nil
}

// Connect links the viewer and another active member in both directions
func (s *UserService) Connect(ctx context.Context, viewerID, otherID primitive.ObjectID) error {
	if viewerID == otherID {
		return apperrors.Validation("You cannot connect with yourself", nil)
	}
	if _, err := s.GetPublicProfile(ctx, otherID); err != nil {
		return err
	}
	if err := s.userRepo.AddConnection(ctx, viewerID, otherID); err != nil {
		return apperrors.Wrap(err, "User not found")
	}
	return nil
}

// AddPrayerRequest appends a prayer request to the caller's profile
func (s *UserService) AddPrayerRequest(ctx context.Context, id primitive.ObjectID, in *models.PrayerRequestInput) (*models.PrayerRequest, error) {
	text := strings.TrimSpace(in.Request)
	if text == "" {
		return nil, apperrors.Validation("Validation failed", map[string]string{"request": "is required"})
	}
	req := models.PrayerRequest{
		ID:        primitive.NewObjectID(),
		Request:   text,
		IsPrivate: in.IsPrivate,
		CreatedAt: s.now(),
	}
	if err := s.userRepo.AddPrayerRequest(ctx, id, req); err != nil {
		return nil, apperrors.Wrap(err, "User not found")
	}
	return &req, nil
}

// MarkPrayerAnswered flips isAnswered on one of the caller's prayer requests
func (s *UserService) MarkPrayerAnswered(ctx context.Context, id, requestID primitive.ObjectID) error {
	if err := s.userRepo.MarkPrayerAnswered(ctx, id, requestID, s.now()); err != nil {
		return apperrors.Wrap(err, "Prayer request not found")
	}
	return nil
}

// ListPrayerRequests returns owner's prayer requests, hiding private ones from everyone else
func (s *UserService) ListPrayerRequests(ctx context.Context, viewerID, ownerID primitive.ObjectID) ([]models.PrayerRequest, error) {
	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "User not found")
	}
	if viewerID != ownerID && !owner.IsActive {
		return nil, apperrors.NotFound("User not found")
	}

	out := make([]models.PrayerRequest, 0, len(owner.PrayerRequests))
	for _, pr := range owner.PrayerRequests {
		if pr.IsPrivate && viewerID != ownerID {
			continue
		}
		out = append(out, pr)
	}
	return out, nil
}

func (s *UserService) invalidate(ctx context.Context) {
	invalidateMembers(ctx, s.cache)
}

// CleanInterests trims entries, drops empties and removes case-insensitive duplicates, keeping first spelling
func CleanInterests(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func trimLocation(l models.Location) models.Location {
	return models.Location{
		City:    strings.TrimSpace(l.City),
		State:   strings.TrimSpace(l.State),
		Country: strings.TrimSpace(l.Country),
	}
}
