package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/syndicate-plus/syndicate-service/internal/api/http"
	"github.com/syndicate-plus/syndicate-service/internal/api/http/handlers"
	"github.com/syndicate-plus/syndicate-service/internal/auth"
	"github.com/syndicate-plus/syndicate-service/internal/config"
	"github.com/syndicate-plus/syndicate-service/internal/enrichment"
	"github.com/syndicate-plus/syndicate-service/internal/events"
	"github.com/syndicate-plus/syndicate-service/internal/observability"
	"github.com/syndicate-plus/syndicate-service/internal/persistence"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	"github.com/syndicate-plus/syndicate-service/internal/service"
	"github.com/syndicate-plus/syndicate-service/internal/storage"
	"github.com/syndicate-plus/syndicate-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	blobs, err := storage.NewFSBlobStore(cfg.Storage, cfg.App.BaseURL)
	if err != nil {
		logger.Fatal("failed to init blob store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	txRunner := persistence.NewTxRunner(pool)
	firmRepo := repository.NewFirmRepository(pool)
	dealRepo := repository.NewDealRepository(pool)
	invitationRepo := repository.NewInvitationRepository(pool)
	ndaRepo := repository.NewNDARepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	interestRepo := repository.NewInterestRepository(pool)
	monitoredRepo := repository.NewMonitoredFirmRepository(pool)
	jobRepo := repository.NewEnrichmentJobRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		FirmRepo:          firmRepo,
		PasswordResetRepo: resetRepo,
		TxRunner:          txRunner,
		Dispatcher:        dispatcher,
		Logger:            logger,
	})
	firmService := service.NewFirmService(firmRepo)
	dealService := service.NewDealService(dealRepo, dispatcher, logger)
	syndicateService := service.NewSyndicateService(service.SyndicateDependencies{
		DealRepo: dealRepo,
		FirmRepo: firmRepo,
		Cache:    redis.Client,
		CacheTTL: cfg.Redis.RecommendTTL(),
		Logger:   logger,
	})
	invitationService := service.NewInvitationService(service.InvitationDependencies{
		InvitationRepo: invitationRepo,
		DealRepo:       dealRepo,
		FirmRepo:       firmRepo,
		NDARepo:        ndaRepo,
		TxRunner:       txRunner,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	documentService := service.NewDocumentService(service.DocumentDependencies{
		DocumentRepo: documentRepo,
		DealRepo:     dealRepo,
		Blobs:        blobs,
		MaxFileSize:  cfg.Storage.MaxFileSize,
		Logger:       logger,
	})
	interestService := service.NewInterestService(interestRepo)
	adminService := service.NewAdminService(firmRepo, dealRepo)

	enrichmentService := service.NewEnrichmentService(service.EnrichmentDependencies{
		Jobs:     jobRepo,
		Firms:    monitoredRepo,
		Registry: enrichment.NewCompaniesHouseClient(cfg.Enrichment.CompaniesHouseURL, cfg.Enrichment.CompaniesHouseKey),
		News:     enrichment.NewNewsAPIClient(cfg.Enrichment.NewsAPIURL, cfg.Enrichment.NewsAPIKey),
		Logger:   logger,
		Config:   cfg.Enrichment,
	})
	enrichmentWorker := worker.NewEnrichmentWorker(enrichmentService, logger, cfg.Enrichment)
	enrichmentWorker.Start(ctx)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), firmRepo)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Storage.MaxFileSize),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Firms:          handlers.NewFirmsHandler(firmService),
		Deals:          handlers.NewDealsHandler(dealService),
		Syndicate:      handlers.NewSyndicateHandler(syndicateService),
		Invitations:    handlers.NewInvitationsHandler(invitationService),
		Documents:      handlers.NewDocumentsHandler(documentService),
		Interest:       handlers.NewInterestHandler(interestService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: authMiddleware,
		RateLimit:      cfg.RateLimit,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	enrichmentWorker.Stop()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
