package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
	"github.com/spiritualpurity/spiritual-purity-backend/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	bearerSchema = "Bearer "

	ctxUserID = "userID"
	ctxRole   = "userRole"
	ctxEmail  = "userEmail"
)

// TokenVerifier checks a bearer token and returns the identity it carries
type TokenVerifier interface {
	Verify(token string) (*jwt.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			abort(c, http.StatusUnauthorized, "Authorization header must start with Bearer")
			return
		}

		if err := authenticate(c, tokens, strings.TrimSpace(authHeader[len(bearerSchema):])); err != nil {
			logger.Debug("token rejected", "path", c.FullPath(), "error", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				abort(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abort(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present and never rejects
func OptionalAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, bearerSchema) {
			_ = authenticate(c, tokens, strings.TrimSpace(authHeader[len(bearerSchema):]))
		}
		c.Next()
	}
}

// RequireRole only lets callers with the given role through. Use after RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := CurrentViewer(c)
		if !ok || viewer.Role != role {
			abort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// CurrentViewer returns the authenticated caller, if any
func CurrentViewer(c *gin.Context) (services.Viewer, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return services.Viewer{}, false
	}
	id, ok := v.(primitive.ObjectID)
	if !ok {
		return services.Viewer{}, false
	}
	role, _ := c.Get(ctxRole)
	r, _ := role.(models.Role)
	return services.Viewer{ID: id, Role: r}, true
}

func authenticate(c *gin.Context, tokens TokenVerifier, token string) error {
	identity, err := tokens.Verify(token)
	if err != nil {
		return err
	}
	id, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		return jwt.ErrTokenInvalid
	}
	c.Set(ctxUserID, id)
	c.Set(ctxRole, models.Role(identity.Role))
	c.Set(ctxEmail, identity.Email)
	return nil
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Success: false, Message: message})
}
