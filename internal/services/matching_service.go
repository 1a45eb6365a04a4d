package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kol-marketplace/backend/internal/matching"
	"github.com/kol-marketplace/backend/internal/models"
	"github.com/kol-marketplace/backend/internal/repositories"
	"go.uber.org/zap"
)

// candidatePoolSize bounds how many profiles a single ranking pass scores.
const candidatePoolSize = 500

type MatchingService struct {
	campaignRepo *repositories.CampaignRepo
	kolRepo      *repositories.KOLRepo
	hist         matching.HistoricalPerformance
	log          *zap.Logger
}

func NewMatchingService(
	campaignRepo *repositories.CampaignRepo,
	kolRepo *repositories.KOLRepo,
	historicalScore float64,
	log *zap.Logger,
) *MatchingService {
	return &MatchingService{
		campaignRepo: campaignRepo,
		kolRepo:      kolRepo,
		hist:         matching.ConstantHistoricalPerformance(historicalScore),
		log:          log,
	}
}

// MatchKOLs loads the candidate pool and ranks it for the campaign using the
// requested strategy. Unknown strategies fall back to combined inside Rank.
func (s *MatchingService) MatchKOLs(ctx context.Context, campaignID, actorID uuid.UUID, strategy string, limit int) (*matching.RankedMatches, error) {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if c.BusinessUserID != actorID {
		return nil, fmt.Errorf("campaign does not belong to this user")
	}

	kols, err := s.kolRepo.ListCandidates(ctx, c.Requirements.Platforms, candidatePoolSize)
	if err != nil {
		return nil, err
	}

	ranked := matching.Rank(strategy, c, kols, limit, s.hist)

	s.log.Debug("ranked KOL candidates",
		zap.String("campaign_id", campaignID.String()),
		zap.String("strategy", ranked.Strategy),
		zap.Int("pool", len(kols)),
		zap.Int("returned", len(ranked.Matches)))

	return &ranked, nil
}

func (s *MatchingService) ListStrategies() []matching.StrategyDescriptor {
	return matching.Strategies()
}

// ScoreOne computes the combined suitability of a single KOL for a campaign.
func (s *MatchingService) ScoreOne(ctx context.Context, campaignID, kolProfileID uuid.UUID) (*models.MatchResult, error) {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	k, err := s.kolRepo.GetByID(ctx, kolProfileID)
	if err != nil {
		return nil, fmt.Errorf("KOL profile not found: %w", err)
	}

	ranked := matching.Rank(matching.StrategyCombined, c, []*models.KOLProfile{k}, 1, s.hist)
	if len(ranked.Matches) == 0 {
		return nil, fmt.Errorf("scoring produced no result")
	}
	return &ranked.Matches[0], nil
}
