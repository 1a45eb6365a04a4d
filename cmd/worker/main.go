package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kol-marketplace/backend/internal/config"
	"github.com/kol-marketplace/backend/internal/db"
	"github.com/kol-marketplace/backend/internal/events"
	"github.com/kol-marketplace/backend/internal/repositories"
	"github.com/kol-marketplace/backend/internal/services"
	"github.com/kol-marketplace/backend/internal/socialstats"
	"go.uber.org/zap"
)

// Batch size for one stale-stats refresh pass.
const staleRefreshBatch = 50

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repos
	campaignRepo := repositories.NewCampaignRepo(pool)
	kolRepo := repositories.NewKOLRepo(pool)
	appRepo := repositories.NewApplicationRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Services
	publisher := events.NewRedisPublisher(rdb, log)
	parser := socialstats.NewParser(cfg.ProfileFetchTimeoutMS, cfg.ProfileFetchMaxRetries, log)
	campaignService := services.NewCampaignService(campaignRepo, appRepo, auditRepo, publisher, log)
	kolService := services.NewKOLService(kolRepo, parser, log)

	log.Info("worker started")

	// Run jobs on tickers
	expiryTicker := time.NewTicker(5 * time.Minute)
	inviteTicker := time.NewTicker(15 * time.Minute)
	statsTicker := time.NewTicker(cfg.StatsRefreshInterval)
	defer expiryTicker.Stop()
	defer inviteTicker.Stop()
	defer statsTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-expiryTicker.C:
			runCampaignExpiry(ctx, campaignService, log)
		case <-inviteTicker.C:
			runStaleInvites(ctx, appRepo, log)
		case <-statsTicker.C:
			runStatsRefresh(ctx, kolService, cfg, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		}
	}
}

// runCampaignExpiry completes active campaigns whose end date has passed.
func runCampaignExpiry(ctx context.Context, campaignService *services.CampaignService, log *zap.Logger) {
	n, err := campaignService.ExpireCampaigns(ctx)
	if err != nil {
		log.Error("campaign expiry pass failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("completed expired campaigns", zap.Int("count", n))
	}
}

// runStaleInvites declines invitations that outlived their campaign's
// application deadline.
func runStaleInvites(ctx context.Context, appRepo *repositories.ApplicationRepo, log *zap.Logger) {
	n, err := appRepo.ExpireStaleInvites(ctx)
	if err != nil {
		log.Error("stale invite pass failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("declined stale invitations", zap.Int("count", n))
	}
}

// runStatsRefresh re-fetches analytics for profiles whose data has gone
// stale.
func runStatsRefresh(ctx context.Context, kolService *services.KOLService, cfg *config.Config, log *zap.Logger) {
	n, err := kolService.RefreshStale(ctx, cfg.StatsActiveWindow, staleRefreshBatch)
	if err != nil {
		log.Error("stats refresh pass failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("refreshed stale KOL analytics", zap.Int("count", n))
	}
}
