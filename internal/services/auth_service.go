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
	"github.com/spiritualpurity/spiritual-purity-backend/pkg/jwt"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = apperrors.Unauthorized("Invalid email or password")

// AuthService handles registration and login
type AuthService struct {
	userRepo   repositories.UserRepository
	tokens     TokenIssuer
	cache      MembersCache
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates a new AuthService. cache may be nil.
func NewAuthService(userRepo repositories.UserRepository, tokens TokenIssuer, cache MembersCache) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		cache:      cache,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Register creates a member account and signs them in
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResult, error) {
	if !req.RelationshipStatus.Valid() {
		return nil, apperrors.Validation("Validation failed", map[string]string{"relationshipStatus": "is not a valid relationship status"})
	}
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.Conflict("A user with this email already exists")
	case err != nil && !errors.Is(err, mongo.ErrNoDocuments):
		return nil, apperrors.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := s.now()
	user := &models.User{
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              email,
		PasswordHash:       string(hash),
		Denomination:       strings.TrimSpace(req.Denomination),
		Interests:          CleanInterests(req.Interests),
		RelationshipStatus: req.RelationshipStatus,
		Privacy:            models.DefaultPrivacy(),
		Role:               models.RoleUser,
		IsActive:           true,
		JoinDate:           now,
	}
	if req.Location != nil {
		loc := trimLocation(*req.Location)
		user.Location = &loc
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("A user with this email already exists")
		}
		return nil, apperrors.Internal(err)
	}
	logger.Info("user registered", "user", user.ID.Hex())
	invalidateMembers(ctx, s.cache)

	return s.issue(user)
}

// Login checks credentials and returns a fresh token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errInvalidCredentials
		}
		return nil, apperrors.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.Forbidden("This account has been deactivated")
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn("failed to record last login", "user", user.ID.Hex(), "error", err)
	} else {
		user.LastLogin = &now
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*models.AuthResult, error) {
	token, err := s.tokens.Generate(jwt.Identity{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
