package services

import (
	"context"
	"strings"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrayerGroupService handles prayer groups
type PrayerGroupService struct {
	groups repositories.PrayerGroupRepository
}

// NewPrayerGroupService creates a new PrayerGroupService
func NewPrayerGroupService(groups repositories.PrayerGroupRepository) *PrayerGroupService {
	return &PrayerGroupService{groups: groups}
}

// CreateGroup creates a group with the viewer as its first member
func (s *PrayerGroupService) CreateGroup(ctx context.Context, viewerID primitive.ObjectID, req *models.CreatePrayerGroupRequest) (*models.PrayerGroup, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("Validation failed", map[string]string{"name": "is required"})
	}
	group := &models.PrayerGroup{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   viewerID,
		Members:     []primitive.ObjectID{viewerID},
		IsPrivate:   req.IsPrivate,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, apperrors.Internal(err)
	}
	return group, nil
}

// ListGroups returns public groups and the private groups the viewer belongs to
func (s *PrayerGroupService) ListGroups(ctx context.Context, viewerID primitive.ObjectID) ([]models.PrayerGroup, error) {
	groups, err := s.groups.FindVisible(ctx, viewerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return groups, nil
}

// Join adds the viewer to a public group
func (s *PrayerGroupService) Join(ctx context.Context, viewerID, groupID primitive.ObjectID) error {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return apperrors.Wrap(err, "Prayer group not found")
	}
	if group.HasMember(viewerID) {
		return nil
	}
	if group.IsPrivate {
		return apperrors.Forbidden("This prayer group is private")
	}
	if err := s.groups.AddMember(ctx, group.ID, viewerID); err != nil {
		return apperrors.Wrap(err, "Prayer group not found")
	}
	return nil
}

// Leave removes the viewer from a group they belong to
func (s *PrayerGroupService) Leave(ctx context.Context, viewerID, groupID primitive.ObjectID) error {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return apperrors.Wrap(err, "Prayer group not found")
	}
	if !group.HasMember(viewerID) {
		return apperrors.Validation("You are not a member of this prayer group", nil)
	}
	if err := s.groups.RemoveMember(ctx, group.ID, viewerID); err != nil {
		return apperrors.Wrap(err, "Prayer group not found")
	}
	return nil
}
