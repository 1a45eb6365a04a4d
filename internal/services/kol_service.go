package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kol-marketplace/backend/internal/models"
	"github.com/kol-marketplace/backend/internal/repositories"
	"github.com/kol-marketplace/backend/internal/socialstats"
	"go.uber.org/zap"
)

type KOLService struct {
	kolRepo *repositories.KOLRepo
	parser  *socialstats.Parser
	log     *zap.Logger
}

func NewKOLService(kolRepo *repositories.KOLRepo, parser *socialstats.Parser, log *zap.Logger) *KOLService {
	return &KOLService{kolRepo: kolRepo, parser: parser, log: log}
}

func (s *KOLService) CreateProfile(ctx context.Context, userID uuid.UUID, p *models.KOLProfile) (*models.KOLProfile, error) {
	if p.DisplayName == "" {
		return nil, fmt.Errorf("display_name is required")
	}
	for _, link := range p.SocialLinks {
		if !models.IsValidPlatform(link.Platform) {
			return nil, fmt.Errorf("unsupported platform %q, must be one of: youtube, instagram, tiktok", link.Platform)
		}
	}
	if existing, err := s.kolRepo.GetByUserID(ctx, userID); err == nil && existing != nil {
		return nil, fmt.Errorf("user already has a KOL profile")
	}

	p.UserID = userID
	if err := s.kolRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *KOLService) GetProfile(ctx context.Context, id uuid.UUID) (*models.KOLProfile, error) {
	return s.kolRepo.GetByID(ctx, id)
}

func (s *KOLService) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*models.KOLProfile, error) {
	return s.kolRepo.GetByUserID(ctx, userID)
}

func (s *KOLService) UpdateProfile(ctx context.Context, userID uuid.UUID, update *models.KOLProfile) (*models.KOLProfile, error) {
	p, err := s.kolRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("KOL profile not found: %w", err)
	}
	for _, link := range update.SocialLinks {
		if !models.IsValidPlatform(link.Platform) {
			return nil, fmt.Errorf("unsupported platform %q", link.Platform)
		}
	}

	p.DisplayName = update.DisplayName
	p.Bio = update.Bio
	p.Categories = update.Categories
	p.SocialLinks = update.SocialLinks
	p.Audience = update.Audience

	if err := s.kolRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *KOLService) Search(ctx context.Context, f repositories.KOLFilter) ([]models.KOLProfile, error) {
	return s.kolRepo.Search(ctx, f)
}

// RefreshStats fetches public profile stats for each social link and folds
// them into the profile's analytics. Errors on individual platforms are
// logged and skipped; a profile with one dead link still gets the rest.
func (s *KOLService) RefreshStats(ctx context.Context, profileID uuid.UUID) (*models.KOLProfile, error) {
	p, err := s.kolRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("KOL profile not found: %w", err)
	}

	updated := false
	for _, link := range p.SocialLinks {
		handle := link.Handle
		if handle == "" {
			continue
		}
		stats, err := s.parser.FetchAndParse(ctx, link.Platform, handle)
		if err != nil {
			s.log.Warn("failed to fetch profile stats",
				zap.String("kol_profile_id", profileID.String()),
				zap.String("platform", link.Platform),
				zap.Error(err))
			continue
		}

		s.applyStats(p, link.Platform, stats)
		updated = true

		snapshot := models.KOLStatsSnapshot{
			KOLProfileID: profileID,
			Platform:     link.Platform,
			FetchedAt:    time.Now().UTC(),
			Followers:    stats.Followers,
			AvgViews:     stats.AvgViews,
			Source:       "profile_parser",
		}
		if err := s.kolRepo.InsertStatsSnapshot(ctx, &snapshot); err != nil {
			s.log.Warn("failed to store stats snapshot", zap.Error(err))
		}
	}

	if updated {
		if err := s.kolRepo.UpdateAnalytics(ctx, p.ID, p.Analytics); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// applyStats merges a fetched snapshot into the profile's per-platform
// analytics, preserving fields the parser could not see.
func (s *KOLService) applyStats(p *models.KOLProfile, platform string, stats *socialstats.ProfileStats) {
	existing := p.AnalyticsFor(platform)
	if existing == nil {
		p.Analytics = append(p.Analytics, models.PlatformAnalytics{Platform: platform})
		existing = &p.Analytics[len(p.Analytics)-1]
	}
	if stats.Followers != nil {
		existing.Followers = *stats.Followers
	}
	if stats.AvgViews != nil {
		existing.AvgViews = *stats.AvgViews
	}
	// Engagement rate derived from avg views when both numbers are present.
	if existing.Followers > 0 && existing.AvgViews > 0 {
		existing.EngagementRate = float64(existing.AvgViews) / float64(existing.Followers)
		if existing.EngagementRate > 1 {
			existing.EngagementRate = 1
		}
	}
}

// RefreshStale walks profiles whose analytics have not been updated within
// olderThan and refreshes them. Used by the worker.
func (s *KOLService) RefreshStale(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	stale, err := s.kolRepo.ListStale(ctx, olderThan, limit)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for i := range stale {
		if _, err := s.RefreshStats(ctx, stale[i].ID); err != nil {
			s.log.Warn("stale stats refresh failed",
				zap.String("kol_profile_id", stale[i].ID.String()), zap.Error(err))
			continue
		}
		refreshed++
	}
	return refreshed, nil
}
