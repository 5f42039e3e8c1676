package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/config"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/handlers"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories/mocks"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
	"github.com/spiritualpurity/spiritual-purity-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	router *gin.Engine
	tokens *jwt.TokenService
	users  *mocks.UserRepository
	ads    *mocks.AdvertisementRepository
}

func newFixture() *fixture {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode, AllowedOrigins: []string{"http://localhost:3000"}},
		JWT:    config.JWTConfig{Secret: "routes-secret", Issuer: "test", ExpiresIn: time.Hour},
		Feed:   config.FeedConfig{PageSize: 6, MinPersonalized: 4, NewestLimit: 8},
	}
	f := &fixture{
		tokens: jwt.NewTokenService(cfg.JWT),
		users:  new(mocks.UserRepository),
		ads:    new(mocks.AdvertisementRepository),
	}
	advertisers := new(mocks.AdvertiserRepository)
	posts := new(mocks.PostRepository)
	convs := new(mocks.ConversationRepository)

	f.router = SetupRouter(cfg, &Handlers{
		Health:      handlers.NewHealthHandler(nil),
		Auth:        handlers.NewAuthHandler(services.NewAuthService(f.users, f.tokens, nil)),
		User:        handlers.NewUserHandler(services.NewUserService(f.users, nil), services.NewMemberService(f.users, nil, cfg.Feed)),
		Message:     handlers.NewMessageHandler(services.NewMessageService(convs, new(mocks.MessageRepository), f.users)),
		Post:        handlers.NewPostHandler(services.NewPostService(posts, f.users)),
		PrayerGroup: handlers.NewPrayerGroupHandler(services.NewPrayerGroupService(new(mocks.PrayerGroupRepository))),
		Advertiser:  handlers.NewAdvertiserHandler(services.NewAdvertiserService(advertisers, f.ads, new(mocks.AdInteractionRepository), f.users)),
		Admin:       handlers.NewAdminHandler(services.NewAdminService(f.users, advertisers, f.ads, posts, nil)),
	}, f.tokens)
	return f
}

func (f *fixture) token(t *testing.T, role models.Role) string {
	t.Helper()
	tok, err := f.tokens.Generate(jwt.Identity{UserID: primitive.NewObjectID().Hex(), Role: string(role)})
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHealthIsPublic(t *testing.T) {
	w := newFixture().do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture()
	id := primitive.NewObjectID().Hex()
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/users/personalized-featured"},
		{http.MethodPut, "/api/users/profile"},
		{http.MethodPut, "/api/users/privacy"},
		{http.MethodPost, "/api/users/" + id + "/connect"},
		{http.MethodGet, "/api/messages/conversations"},
		{http.MethodPost, "/api/messages/" + id},
		{http.MethodGet, "/api/posts"},
		{http.MethodPost, "/api/prayer-groups/" + id + "/join"},
		{http.MethodGet, "/api/advertisers/dashboard"},
		{http.MethodPost, "/api/advertisers/advertisements/" + id + "/submit"},
		{http.MethodGet, "/api/admin/stats"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, f.do(rt.method, rt.path, "").Code)
		})
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/api/admin/stats", f.token(t, models.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPublicNewestMembers(t *testing.T) {
	f := newFixture()
	f.users.On("FindActive", mock.Anything, []primitive.ObjectID(nil), 8).Return([]*models.User{}, nil)

	w := f.do(http.MethodGet, "/api/users/newest-members", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"members":[],"count":0}}`, w.Body.String())
}

func TestPublicActiveAds(t *testing.T) {
	f := newFixture()
	f.ads.On("FindApproved", mock.Anything).Return([]models.Advertisement{}, nil)

	w := f.do(http.MethodGet, "/api/ads/active", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
