package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/service-desk/helpdesk/internal/api/http"
	"github.com/service-desk/helpdesk/internal/api/http/handlers"
	"github.com/service-desk/helpdesk/internal/auth"
	"github.com/service-desk/helpdesk/internal/config"
	"github.com/service-desk/helpdesk/internal/events"
	"github.com/service-desk/helpdesk/internal/observability"
	"github.com/service-desk/helpdesk/internal/persistence"
	"github.com/service-desk/helpdesk/internal/repository"
	"github.com/service-desk/helpdesk/internal/service"
	"github.com/service-desk/helpdesk/internal/worker"
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

	store, err := newBlobStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}
	defer store.Close()

	ticketRepo := repository.NewTicketRepository(store, cfg.Storage.MaxBlobMB)
	historyRepo := repository.NewTicketHistoryRepository(store, cfg.Storage.MaxBlobMB)
	commentRepo := repository.NewTicketCommentRepository(store, cfg.Storage.MaxBlobMB)
	userRepo := repository.NewUserRepository(store, cfg.Storage.MaxBlobMB)

	authService := service.NewAuthService(*cfg, userRepo)
	if err := authService.Seed(ctx); err != nil {
		logger.Fatal("failed to seed accounts", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		HistoryRepo: historyRepo,
		CommentRepo: commentRepo,
		Dispatcher:  dispatcher,
	})

	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, metrics),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newBlobStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (persistence.BlobStore, error) {
	switch cfg.Driver {
	case config.StorageDriverRedis:
		return persistence.NewRedisStore(cfg, logger), nil
	case config.StorageDriverPostgres:
		return persistence.NewPostgresStore(ctx, cfg, logger)
	case config.StorageDriverMemory:
		return persistence.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
