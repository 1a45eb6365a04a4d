package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/kol-marketplace/backend/internal/config"
	"github.com/kol-marketplace/backend/internal/db"
	"github.com/kol-marketplace/backend/internal/events"
	apphttp "github.com/kol-marketplace/backend/internal/http"
	"github.com/kol-marketplace/backend/internal/http/handlers"
	"github.com/kol-marketplace/backend/internal/matching"
	"github.com/kol-marketplace/backend/internal/repositories"
	"github.com/kol-marketplace/backend/internal/services"
	"github.com/kol-marketplace/backend/internal/socialstats"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Matching taxonomy
	taxonomy, err := matching.LoadTaxonomy(cfg.MatchingTaxonomyPath)
	if err != nil {
		log.Fatal("failed to load matching taxonomy", zap.Error(err))
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	kolRepo := repositories.NewKOLRepo(pool)
	appRepo := repositories.NewApplicationRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	parser := socialstats.NewParser(cfg.ProfileFetchTimeoutMS, cfg.ProfileFetchMaxRetries, log)
	llm := services.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, log)
	explainer := matching.NewExplainer(taxonomy)

	campaignService := services.NewCampaignService(campaignRepo, appRepo, auditRepo, publisher, log)
	applicationService := services.NewApplicationService(appRepo, campaignRepo, kolRepo, auditRepo, publisher, log)
	matchingService := services.NewMatchingService(campaignRepo, kolRepo, cfg.HistoricalScore, log)
	kolService := services.NewKOLService(kolRepo, parser, log)
	aiService := services.NewAIService(kolRepo, campaignRepo, explainer, llm, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	userHandler := handlers.NewUserHandler(userRepo, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	kolHandler := handlers.NewKOLHandler(kolService, log)
	applicationHandler := handlers.NewApplicationHandler(applicationService, log)
	matchingHandler := handlers.NewMatchingHandler(matchingService, applicationService, log)
	aiHandler := handlers.NewAIHandler(aiService, log)
	metaHandler := handlers.NewMetaHandler(cfg, taxonomy)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		authHandler, userHandler, campaignHandler, kolHandler,
		applicationHandler, matchingHandler, aiHandler, metaHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
