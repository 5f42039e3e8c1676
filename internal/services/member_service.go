package services

import (
	"context"
	"sort"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/config"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxFeedSize = 50

// MemberService builds the member directory feeds
type MemberService struct {
	userRepo repositories.UserRepository
	cache    MembersCache
	cfg      config.FeedConfig
	now      func() time.Time
}

// NewMemberService creates a new MemberService. cache may be nil.
func NewMemberService(userRepo repositories.UserRepository, cache MembersCache, cfg config.FeedConfig) *MemberService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 6
	}
	if cfg.MinPersonalized <= 0 {
		cfg.MinPersonalized = 4
	}
	if cfg.NewestLimit <= 0 {
		cfg.NewestLimit = 8
	}
	return &MemberService{
		userRepo: userRepo,
		cache:    cache,
		cfg:      cfg,
		now:      time.Now,
	}
}

// PersonalizedFeatured ranks active members by compatibility with the viewer.
// When fewer than MinPersonalized members score above zero the page is
// backfilled with the newest members. Returns a NotFound error when the viewer
// does not exist.
func (s *MemberService) PersonalizedFeatured(ctx context.Context, viewerID primitive.ObjectID, pageSize int) (*models.FeaturedFeed, error) {
	pageSize = clampSize(pageSize, s.cfg.PageSize)

	viewer, err := s.userRepo.FindByID(ctx, viewerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "User not found")
	}
	if !viewer.IsActive {
		return nil, apperrors.NotFound("User not found")
	}

	// newest first, so equal scores keep the newer member ahead
	candidates, err := s.userRepo.FindActive(ctx, []primitive.ObjectID{viewer.ID}, 0)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := s.now()
	type scored struct {
		user  *models.User
		score int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == viewer.ID {
			continue
		}
		if score := CompatibilityScore(viewer, c, now); score > 0 {
			ranked = append(ranked, scored{user: c, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > pageSize {
		ranked = ranked[:pageSize]
	}

	members := make([]models.FeaturedMember, 0, pageSize)
	selected := make(map[primitive.ObjectID]struct{}, pageSize)
	for _, r := range ranked {
		members = append(members, models.FeaturedMember{
			PublicProfile:      ToPublicProfile(r.user),
			CompatibilityScore: r.score,
			IsPersonalized:     true,
		})
		selected[r.user.ID] = struct{}{}
	}
	personalized := len(members)

	if personalized < s.cfg.MinPersonalized {
		for _, c := range candidates {
			if len(members) >= pageSize {
				break
			}
			if _, ok := selected[c.ID]; ok || c.ID == viewer.ID {
				continue
			}
			members = append(members, models.FeaturedMember{PublicProfile: ToPublicProfile(c)})
			selected[c.ID] = struct{}{}
		}
	}

	logger.Debug("featured feed built",
		"viewer", viewer.ID.Hex(), "candidates", len(candidates),
		"personalized", personalized, "total", len(members))

	return &models.FeaturedFeed{
		Members:           members,
		Count:             len(members),
		PersonalizedCount: personalized,
	}, nil
}

// NewestMembers lists the most recently joined active members, privacy filtered.
// The list is served from cache when one is configured.
func (s *MemberService) NewestMembers(ctx context.Context, limit int) (*models.MemberList, error) {
	limit = clampSize(limit, s.cfg.NewestLimit)

	if s.cache != nil {
		members, ok, err := s.cache.GetNewestMembers(ctx, limit)
		if err != nil {
			logger.Warn("newest members cache read failed", "error", err)
		} else if ok {
			return &models.MemberList{Members: members, Count: len(members)}, nil
		}
	}

	users, err := s.userRepo.FindActive(ctx, nil, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	members := FilterProfiles(users)

	if s.cache != nil {
		if err := s.cache.SetNewestMembers(ctx, limit, members); err != nil {
			logger.Warn("newest members cache write failed", "error", err)
		}
	}
	return &models.MemberList{Members: members, Count: len(members)}, nil
}

func clampSize(n, def int) int {
	if n <= 0 {
		n = def
	}
	if n > maxFeedSize {
		n = maxFeedSize
	}
	return n
}
