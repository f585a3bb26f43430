package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "github.com/byiitians/portal-api/api/swagger"
	"github.com/byiitians/portal-api/internal/handler"
	"github.com/byiitians/portal-api/internal/repository"
	"github.com/byiitians/portal-api/internal/router"
	"github.com/byiitians/portal-api/internal/service"
	"github.com/byiitians/portal-api/pkg/cache"
	"github.com/byiitians/portal-api/pkg/config"
	"github.com/byiitians/portal-api/pkg/database"
	"github.com/byiitians/portal-api/pkg/jobs"
	"github.com/byiitians/portal-api/pkg/logger"
	"github.com/byiitians/portal-api/pkg/storage"
)

// @title Institute Portal API
// @version 1.0.0
// @description Content portal backend for the institute website
// @BasePath /api/v1
// @schemes http

const jobTypeCatalogRefresh = "catalog-refresh"

// catalogRefreshNotifier feeds section change events into the background queue.
type catalogRefreshNotifier struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

func (n *catalogRefreshNotifier) ContentChanged(sectionID string) {
	err := n.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeCatalogRefresh,
		Payload: sectionID,
	})
	if err != nil {
		n.logger.Warn("failed to enqueue catalog refresh", zap.String("section_id", sectionID), zap.Error(err))
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog caching disabled", "error", err)
		redisClient = nil
	}

	sectionRepo := repository.NewSectionRepository(db)
	contentRepo := repository.NewContentRepository(db)
	userRepo := repository.NewUserRepository(db)

	var cacheRepo *repository.CacheRepository
	if cfg.Catalog.CacheEnabled {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	metricsSvc := service.NewMetricsService()

	var catalogCache service.CatalogCache
	if cacheRepo != nil {
		catalogCache = cacheRepo
	}
	catalogSvc := service.NewCatalogService(sectionRepo, contentRepo, catalogCache, cfg.Catalog.CacheTTL, metricsSvc, logr)

	refreshQueue := jobs.NewQueue(jobTypeCatalogRefresh, func(ctx context.Context, job jobs.Job) error {
		sectionID, ok := job.Payload.(string)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", job.Payload)
		}
		if err := catalogSvc.InvalidateSection(ctx, sectionID); err != nil {
			return err
		}
		return catalogSvc.RefreshSection(ctx, sectionID)
	}, jobs.QueueConfig{
		Workers:    cfg.Catalog.RefreshWorkers,
		MaxRetries: cfg.Catalog.RefreshRetries,
		Logger:     logr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refreshQueue.Start(ctx)
	defer refreshQueue.Stop()

	notifier := &catalogRefreshNotifier{queue: refreshQueue, logger: logr}

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "portal-api",
	})
	sectionSvc := service.NewSectionService(sectionRepo, notifier, nil, logr)
	contentSvc := service.NewContentService(contentRepo, sectionRepo, notifier, nil, logr)
	exportSvc := service.NewExportService(contentRepo, sectionRepo, logr)

	assetStore, err := storage.NewLocalStorage(cfg.Brochure.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init asset storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Brochure.SignedURLSecret, cfg.Brochure.SignedURLTTL)

	engine := router.New(router.Deps{
		Config:         cfg,
		Logger:         logr,
		AuthService:    authSvc,
		MetricsService: metricsSvc,
		Auth:           handler.NewAuthHandler(authSvc),
		Sections:       handler.NewSectionHandler(catalogSvc, sectionSvc, cfg.APIPrefix),
		StudyMaterial:  handler.NewStudyMaterialHandler(catalogSvc),
		Contents:       handler.NewContentHandler(contentSvc),
		Exports:        handler.NewExportHandler(exportSvc),
		Assets:         handler.NewAssetHandler(assetStore, signer, cfg.Brochure.TestSeriesFile, cfg.APIPrefix),
		Metrics:        handler.NewMetricsHandler(metricsSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: engine}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
