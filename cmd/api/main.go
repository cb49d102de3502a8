package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/incident-response/internal/api/http"
	"github.com/spec-kit/incident-response/internal/api/http/handlers"
	"github.com/spec-kit/incident-response/internal/auth"
	"github.com/spec-kit/incident-response/internal/config"
	"github.com/spec-kit/incident-response/internal/notify"
	"github.com/spec-kit/incident-response/internal/observability"
	"github.com/spec-kit/incident-response/internal/persistence"
	"github.com/spec-kit/incident-response/internal/repository"
	"github.com/spec-kit/incident-response/internal/service"
	"github.com/spec-kit/incident-response/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	agentRepo := repository.NewAgentRepository(pool)
	responderRepo := repository.NewResponderRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	lifecycleRepo := repository.NewLifecycleRepository(pool)
	txManager := repository.NewTxManager(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	identity := service.NewIdentityLookup(userRepo, agentRepo, responderRepo)
	notifier := notify.NewQueuePublisher(redis.Client, cfg.Notification.QueueKey)
	mailer := notify.NewLogMailer(logger, cfg.Notification)

	ticketService := service.NewTicketService(service.TicketDependencies{
		Tickets:    ticketRepo,
		Lifecycle:  lifecycleRepo,
		Users:      userRepo,
		Responders: responderRepo,
		Identity:   identity,
		Tx:         txManager,
		Notifier:   notifier,
		Logger:     logger,
	})
	userService := service.NewUserService(service.UserDependencies{
		Users:      userRepo,
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	agentService := service.NewAgentService(service.AgentDependencies{
		Agents:   agentRepo,
		Tokens:   tokens,
		TokenTTL: time.Duration(cfg.Auth.AgentTokenTTLDays) * 24 * time.Hour,
		Logger:   logger,
	})
	responderService := service.NewResponderService(service.ResponderDependencies{
		Responders: responderRepo,
		Tokens:     tokens,
		Logger:     logger,
	})
	categoryService := service.NewCategoryService(categoryRepo)

	authMiddleware := auth.NewAuthMiddleware(tokens, userRepo, agentRepo, responderRepo)
	metrics := observability.NewMetrics()

	notificationWorker := worker.NewNotificationWorker(
		redis.Client, cfg.Notification.QueueKey, cfg.Notification.ConsumeTimeout(), mailer, logger)
	go notificationWorker.Run(ctx)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(userService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Agents:         handlers.NewAgentsHandler(agentService),
		Responders:     handlers.NewRespondersHandler(responderService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
