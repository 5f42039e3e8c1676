package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spiritualpurity/spiritual-purity-backend/api/routes"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/cache"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/config"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/handlers"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	mongorepo "github.com/spiritualpurity/spiritual-purity-backend/internal/repositories/mongodb"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/validation"
	"github.com/spiritualpurity/spiritual-purity-backend/pkg/jwt"
	"github.com/spiritualpurity/spiritual-purity-backend/pkg/mongodb"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load(".")
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.InitFromConfig(cfg)
	validation.Register()

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Warn("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)
	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
	err = mongodb.EnsureIndexes(indexCtx, db)
	cancelIndexes()
	if err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	// a nil interface disables caching; never assign a nil *RedisCache
	var membersCache services.MembersCache
	healthDeps := map[string]handlers.Pinger{"mongodb": mongoClient}
	if cfg.Redis.Enabled {
		rc := cache.NewRedisCache(cfg.Redis)
		if err := rc.Ping(context.Background()); err != nil {
			logger.Warn("redis unavailable, newest members cache disabled", "addr", cfg.Redis.Addr, "error", err)
			_ = rc.Close()
		} else {
			defer rc.Close()
			membersCache = rc
			healthDeps["redis"] = rc
		}
	}

	userRepo := mongorepo.NewUserRepository(db)
	advertiserRepo := mongorepo.NewAdvertiserRepository(db)
	adRepo := mongorepo.NewAdvertisementRepository(db)
	interactionRepo := mongorepo.NewAdInteractionRepository(db)
	conversationRepo := mongorepo.NewConversationRepository(db)
	messageRepo := mongorepo.NewMessageRepository(db)
	postRepo := mongorepo.NewPostRepository(db)
	groupRepo := mongorepo.NewPrayerGroupRepository(db)

	tokens := jwt.NewTokenService(cfg.JWT)

	authService := services.NewAuthService(userRepo, tokens, membersCache)
	userService := services.NewUserService(userRepo, membersCache)
	memberService := services.NewMemberService(userRepo, membersCache, cfg.Feed)
	messageService := services.NewMessageService(conversationRepo, messageRepo, userRepo)
	postService := services.NewPostService(postRepo, userRepo)
	groupService := services.NewPrayerGroupService(groupRepo)
	advertiserService := services.NewAdvertiserService(advertiserRepo, adRepo, interactionRepo, userRepo)
	adminService := services.NewAdminService(userRepo, advertiserRepo, adRepo, postRepo, membersCache)

	router := routes.SetupRouter(cfg, &routes.Handlers{
		Health:      handlers.NewHealthHandler(healthDeps),
		Auth:        handlers.NewAuthHandler(authService),
		User:        handlers.NewUserHandler(userService, memberService),
		Message:     handlers.NewMessageHandler(messageService),
		Post:        handlers.NewPostHandler(postService),
		PrayerGroup: handlers.NewPrayerGroupHandler(groupService),
		Advertiser:  handlers.NewAdvertiserHandler(advertiserService),
		Admin:       handlers.NewAdminHandler(adminService),
	}, tokens)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("server exiting")
}
