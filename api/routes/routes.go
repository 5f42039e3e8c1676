package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/config"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/handlers"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/middleware"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Message     *handlers.MessageHandler
	Post        *handlers.PostHandler
	PrayerGroup *handlers.PrayerGroupHandler
	Advertiser  *handlers.AdvertiserHandler
	Admin       *handlers.AdminHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers, tokens middleware.TokenVerifier) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server))

	requireAuth := middleware.RequireAuth(tokens)

	api := router.Group("/api")
	api.GET("/health", h.Health.Health)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	users := api.Group("/users")
	{
		users.GET("/newest-members", h.User.NewestMembers)
		users.GET("/personalized-featured", requireAuth, h.User.PersonalizedFeatured)
		users.GET("/me", requireAuth, h.User.GetMe)
		users.DELETE("/me", requireAuth, h.User.DeleteMe)
		users.PUT("/profile", requireAuth, h.User.UpdateProfile)
		users.PUT("/interests", requireAuth, h.User.UpdateInterests)
		users.PUT("/privacy", requireAuth, h.User.UpdatePrivacy)
		users.GET("/prayer-requests", requireAuth, h.User.MyPrayerRequests)
		users.POST("/prayer-requests", requireAuth, h.User.AddPrayerRequest)
		users.PUT("/prayer-requests/:requestId/answered", requireAuth, h.User.MarkPrayerAnswered)
		users.GET("/:id", h.User.GetProfile)
		users.POST("/:id/connect", requireAuth, h.User.Connect)
		users.GET("/:id/prayer-requests", requireAuth, h.User.MemberPrayerRequests)
	}

	messages := api.Group("/messages", requireAuth)
	{
		messages.GET("/conversations", h.Message.ListConversations)
		messages.POST("/conversations", h.Message.CreateConversation)
		messages.GET("/:conversationId", h.Message.GetMessages)
		messages.POST("/:conversationId", h.Message.SendMessage)
	}

	posts := api.Group("/posts", requireAuth)
	{
		posts.GET("", h.Post.ListFeed)
		posts.POST("", h.Post.CreatePost)
		posts.POST("/:id/like", h.Post.ToggleLike)
		posts.POST("/:id/comments", h.Post.AddComment)
		posts.DELETE("/:id", h.Post.DeletePost)
	}

	groups := api.Group("/prayer-groups", requireAuth)
	{
		groups.GET("", h.PrayerGroup.ListGroups)
		groups.POST("", h.PrayerGroup.CreateGroup)
		groups.POST("/:id/join", h.PrayerGroup.Join)
		groups.POST("/:id/leave", h.PrayerGroup.Leave)
	}

	advertisers := api.Group("/advertisers", requireAuth)
	{
		advertisers.POST("/register", h.Advertiser.Register)
		advertisers.GET("/dashboard", h.Advertiser.Dashboard)
		advertisers.GET("/advertisements", h.Advertiser.ListAds)
		advertisers.POST("/advertisements", h.Advertiser.CreateAd)
		advertisers.GET("/advertisements/:id", h.Advertiser.GetAd)
		advertisers.PUT("/advertisements/:id", h.Advertiser.UpdateAd)
		advertisers.DELETE("/advertisements/:id", h.Advertiser.DeleteAd)
		advertisers.POST("/advertisements/:id/submit", h.Advertiser.SubmitAd)
	}

	ads := api.Group("/ads")
	{
		ads.GET("/active", h.Advertiser.ActiveAds)
		ads.POST("/:id/interactions", middleware.OptionalAuth(tokens), h.Advertiser.TrackInteraction)
	}

	admin := api.Group("/admin", requireAuth, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/stats", h.Admin.Stats)
		admin.GET("/users", h.Admin.ListUsers)
		admin.PUT("/users/:id/deactivate", h.Admin.DeactivateUser)
		admin.PUT("/advertisers/:id/status", h.Admin.SetAdvertiserStatus)
		admin.PUT("/advertisements/:id/review", h.Admin.ReviewAd)
		admin.DELETE("/posts/:id", h.Post.DeletePost)
	}

	return router
}
