package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kol-marketplace/backend/internal/config"
	"github.com/kol-marketplace/backend/internal/http/handlers"
	"github.com/kol-marketplace/backend/internal/middleware"
	"github.com/kol-marketplace/backend/internal/rbac"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	campaignHandler *handlers.CampaignHandler,
	kolHandler *handlers.KOLHandler,
	applicationHandler *handlers.ApplicationHandler,
	matchingHandler *handlers.MatchingHandler,
	aiHandler *handlers.AIHandler,
	metaHandler *handlers.MetaHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Rate-limited endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))

	// Meta (public, no auth required)
	api.Get("/meta/categories", metaHandler.GetCategories)
	api.Get("/meta/platforms", metaHandler.GetPlatforms)
	api.Get("/meta/fee-preview", metaHandler.FeePreview)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// User
	protected.Get("/me", userHandler.GetMe)
	protected.Post("/me/ping", userHandler.Ping)

	// Campaigns (business side)
	protected.Post("/campaigns", middleware.RequirePermission(rbac.PermManageCampaign), campaignHandler.CreateCampaign)
	protected.Get("/campaigns", campaignHandler.ListCampaigns)
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)
	protected.Put("/campaigns/:id", middleware.RequirePermission(rbac.PermManageCampaign), campaignHandler.UpdateCampaign)
	protected.Delete("/campaigns/:id", middleware.RequirePermission(rbac.PermManageCampaign), campaignHandler.DeleteCampaign)
	protected.Post("/campaigns/:id/activate", middleware.RequirePermission(rbac.PermManageCampaign), campaignHandler.ActivateCampaign)
	protected.Post("/campaigns/:id/complete", middleware.RequirePermission(rbac.PermManageCampaign), campaignHandler.CompleteCampaign)
	protected.Post("/campaigns/:id/cancel", middleware.RequirePermission(rbac.PermCancelCampaign), campaignHandler.CancelCampaign)
	protected.Get("/campaigns/:id/applications", middleware.RequirePermission(rbac.PermManageCampaign), applicationHandler.ListForCampaign)

	// KOL profiles
	protected.Post("/kol/profile", middleware.RequirePermission(rbac.PermManageKOLProfile), kolHandler.CreateProfile)
	protected.Get("/kol/profile", middleware.RequirePermission(rbac.PermManageKOLProfile), kolHandler.GetMyProfile)
	protected.Put("/kol/profile", middleware.RequirePermission(rbac.PermManageKOLProfile), kolHandler.UpdateProfile)
	protected.Post("/kol/profile/refresh-stats", middleware.RequirePermission(rbac.PermManageKOLProfile), kolHandler.RefreshStats)
	protected.Get("/kols", kolHandler.SearchProfiles)
	protected.Get("/kols/:id", kolHandler.GetProfile)

	// Applications
	protected.Post("/applications", middleware.RequirePermission(rbac.PermApplyToCampaign), applicationHandler.Apply)
	protected.Get("/applications/my", middleware.RequirePermission(rbac.PermApplyToCampaign), applicationHandler.ListMine)
	protected.Post("/applications/:id/accept", middleware.RequirePermission(rbac.PermAcceptApplication), applicationHandler.Accept)
	protected.Post("/applications/:id/decline", middleware.RequirePermission(rbac.PermDeclineApplication), applicationHandler.Decline)
	protected.Post("/applications/:id/withdraw", middleware.RequirePermission(rbac.PermWithdraw), applicationHandler.Withdraw)
	protected.Post("/applications/:id/complete", middleware.RequirePermission(rbac.PermAcceptApplication), applicationHandler.Complete)

	// Matching (business side)
	protected.Get("/matching/kols/:campaignId", middleware.RequirePermission(rbac.PermManageCampaign), matchingHandler.MatchKOLs)
	protected.Get("/matching/strategies", matchingHandler.ListStrategies)
	protected.Post("/matching/invite-kols/:campaignId", middleware.RequirePermission(rbac.PermInviteKOLs), matchingHandler.InviteKOLs)

	// AI routes (KOL side)
	protected.Post("/kol/ai/match-campaigns", middleware.RequirePermission(rbac.PermUseAIMatching), aiHandler.MatchCampaigns)
	protected.Post("/kol/ai/enhance-profile", middleware.RequirePermission(rbac.PermUseAIMatching), aiHandler.EnhanceProfile)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
