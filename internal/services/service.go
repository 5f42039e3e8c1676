package services

import (
	"context"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// MembersCache caches the public newest-members list. A nil MembersCache disables caching.
type MembersCache interface {
	GetNewestMembers(ctx context.Context, limit int) ([]models.PublicProfile, bool, error)
	SetNewestMembers(ctx context.Context, limit int, members []models.PublicProfile) error
	InvalidateMembers(ctx context.Context) error
}

// TokenIssuer signs tokens for authenticated members
type TokenIssuer interface {
	Generate(id jwt.Identity) (string, error)
}

// Viewer is the authenticated caller of a service operation
type Viewer struct {
	ID   primitive.ObjectID
	Role models.Role
}

// IsAdmin reports whether the viewer holds the admin role
func (v Viewer) IsAdmin() bool {
	return v.Role == models.RoleAdmin
}

// normalizePage clamps paging input to sane bounds
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// ParseID parses a hex object id from a path or body field
func ParseID(hex, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("Invalid ID format", map[string]string{field: "must be a valid id"})
	}
	return id, nil
}

// invalidateMembers drops cached member lists after a change that affects them
func invalidateMembers(ctx context.Context, cache MembersCache) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateMembers(ctx); err != nil {
		logger.Warn("newest members cache invalidation failed", "error", err)
	}
}
