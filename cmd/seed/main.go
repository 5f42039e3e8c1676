package main

import (
	"context"
	"flag"
	"os"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/cache"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/config"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/importer"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	mongorepo "github.com/spiritualpurity/spiritual-purity-backend/internal/repositories/mongodb"
	"github.com/spiritualpurity/spiritual-purity-backend/pkg/mongodb"
)

func main() {
	file := flag.String("file", "", "CSV file with members to import")
	password := flag.String("password", "", "initial password for created members (random when empty)")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing")
	flag.Parse()

	if *file == "" {
		logger.Error("-file is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadDotEnv(); err != nil {
		logger.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load(".")
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg.Log.Component = "seed"
	logger.InitFromConfig(cfg)

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("failed to open CSV file", "file", *file, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	client, err := mongodb.NewClient(cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	ctx := context.Background()
	db := client.Database(cfg.MongoDB.Database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	imp := importer.NewMemberImporter(mongorepo.NewUserRepository(db))
	imp.Password = *password
	imp.DryRun = *dryRun

	res, err := imp.Import(ctx, f)
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}
	for _, e := range res.Errors {
		logger.Warn("row skipped", "detail", e)
	}

	// cached newest-members lists are stale after an import
	if cfg.Redis.Enabled && !*dryRun && res.Created > 0 {
		rc := cache.NewRedisCache(cfg.Redis)
		if err := rc.InvalidateMembers(ctx); err != nil {
			logger.Warn("failed to invalidate newest members cache", "error", err)
		}
		_ = rc.Close()
	}
}
