package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/config"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type verifierFunc func(string) (*jwt.Identity, error)

func (f verifierFunc) Verify(token string) (*jwt.Identity, error) { return f(token) }

func newTokens() *jwt.TokenService {
	return jwt.NewTokenService(config.JWTConfig{Secret: "test-secret", Issuer: "test", ExpiresIn: time.Hour})
}

func protectedRouter(tokens TokenVerifier, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		v, ok := CurrentViewer(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": v.ID.Hex(), "role": v.Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Message
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := newTokens()
	id := primitive.NewObjectID()
	token, err := tokens.Generate(jwt.Identity{UserID: id.Hex(), Email: "ruth@example.com", Role: string(models.RoleUser)})
	require.NoError(t, err)

	w := do(protectedRouter(tokens), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.Hex())
}

func TestRequireAuth_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Authorization header is required"},
		{"wrong scheme", "Basic abc", "Authorization header must start with Bearer"},
		{"garbage token", "Bearer not-a-token", "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(protectedRouter(newTokens()), tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.message, errorMessage(t, w))
		})
	}
}

func TestRequireAuth_Expired(t *testing.T) {
	expired := verifierFunc(func(string) (*jwt.Identity, error) { return nil, jwt.ErrTokenExpired })
	w := do(protectedRouter(expired), "Bearer x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has expired", errorMessage(t, w))
}

func TestRequireAuth_NonObjectIDSubject(t *testing.T) {
	bad := verifierFunc(func(string) (*jwt.Identity, error) { return &jwt.Identity{UserID: "42"}, nil })
	w := do(protectedRouter(bad), "Bearer x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	asUser := verifierFunc(func(string) (*jwt.Identity, error) { return &jwt.Identity{UserID: id, Role: "user"}, nil })
	asAdmin := verifierFunc(func(string) (*jwt.Identity, error) { return &jwt.Identity{UserID: id, Role: "admin"}, nil })

	w := do(protectedRouter(asUser, RequireRole(models.RoleAdmin)), "Bearer x")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(protectedRouter(asAdmin, RequireRole(models.RoleAdmin)), "Bearer x")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	r := gin.New()
	r.GET("/protected", OptionalAuth(newTokens()), func(c *gin.Context) {
		_, ok := CurrentViewer(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = do(r, "Bearer broken")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RecoveryMiddleware())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", errorMessage(t, w))
}
