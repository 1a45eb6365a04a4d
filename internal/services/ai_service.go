package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kol-marketplace/backend/internal/matching"
	"github.com/kol-marketplace/backend/internal/models"
	"github.com/kol-marketplace/backend/internal/repositories"
	"go.uber.org/zap"
)

// aiCampaignPoolSize bounds how many active campaigns one matching call scans.
const aiCampaignPoolSize = 200

type AIService struct {
	kolRepo      *repositories.KOLRepo
	campaignRepo *repositories.CampaignRepo
	explainer    *matching.Explainer
	llm          *LLMClient
	log          *zap.Logger
}

func NewAIService(
	kolRepo *repositories.KOLRepo,
	campaignRepo *repositories.CampaignRepo,
	explainer *matching.Explainer,
	llm *LLMClient,
	log *zap.Logger,
) *AIService {
	return &AIService{
		kolRepo:      kolRepo,
		campaignRepo: campaignRepo,
		explainer:    explainer,
		llm:          llm,
		log:          log,
	}
}

// CampaignMatchReport is the KOL-facing "which campaigns fit me" response.
type CampaignMatchReport struct {
	Matches        []matching.CampaignMatch `json:"matches"`
	TotalAnalyzed  int                      `json:"total_analyzed"`
	ProfileSummary string                   `json:"profile_summary"`
}

// MatchCampaigns scores all active campaigns for the acting KOL and returns
// the explained shortlist.
func (s *AIService) MatchCampaigns(ctx context.Context, kolUserID uuid.UUID, limit int) (*CampaignMatchReport, error) {
	kol, err := s.kolRepo.GetByUserID(ctx, kolUserID)
	if err != nil {
		return nil, fmt.Errorf("KOL profile not found: %w", err)
	}

	campaigns, err := s.campaignRepo.ListActive(ctx, aiCampaignPoolSize)
	if err != nil {
		return nil, err
	}

	pool := make([]*models.Campaign, 0, len(campaigns))
	for i := range campaigns {
		pool = append(pool, &campaigns[i])
	}

	matches := s.explainer.MatchCampaigns(kol, pool, limit)

	return &CampaignMatchReport{
		Matches:        matches,
		TotalAnalyzed:  len(pool),
		ProfileSummary: profileSummary(kol),
	}, nil
}

// ProfileEnhancement is the AI review of a KOL profile.
type ProfileEnhancement struct {
	Suggestions     []string `json:"suggestions"`
	SuggestedBio    string   `json:"suggested_bio,omitempty"`
	MissingSections []string `json:"missing_sections,omitempty"`
	Source          string   `json:"source"` // "llm" or "heuristic"
}

// EnhanceProfile asks the LLM for profile improvement suggestions. When the
// LLM is unconfigured or fails, a deterministic heuristic review is returned
// instead; the endpoint never errors on LLM trouble.
func (s *AIService) EnhanceProfile(ctx context.Context, kolUserID uuid.UUID) (*ProfileEnhancement, error) {
	kol, err := s.kolRepo.GetByUserID(ctx, kolUserID)
	if err != nil {
		return nil, fmt.Errorf("KOL profile not found: %w", err)
	}

	if s.llm.Available() {
		if enhancement, err := s.enhanceWithLLM(ctx, kol); err == nil {
			return enhancement, nil
		} else {
			s.log.Warn("llm enhancement failed, falling back to heuristics",
				zap.String("kol_profile_id", kol.ID.String()), zap.Error(err))
		}
	}

	return generateFallbackAnalysis(kol), nil
}

func (s *AIService) enhanceWithLLM(ctx context.Context, kol *models.KOLProfile) (*ProfileEnhancement, error) {
	profileJSON, err := json.Marshal(kol)
	if err != nil {
		return nil, err
	}

	system := "You review influencer marketplace profiles. " +
		"Reply with a JSON object: {\"suggestions\": [string], \"suggested_bio\": string, \"missing_sections\": [string]}. " +
		"Suggestions are concrete edits that would make the profile more attractive to brands. No prose outside the JSON."
	user := fmt.Sprintf("Review this profile:\n%s", profileJSON)

	reply, err := s.llm.Complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	// Models sometimes wrap JSON in a code fence.
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")

	var enhancement ProfileEnhancement
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &enhancement); err != nil {
		return nil, fmt.Errorf("unparseable llm reply: %w", err)
	}
	enhancement.Source = "llm"
	return &enhancement, nil
}

// generateFallbackAnalysis is the deterministic review used when no LLM is
// configured. It only flags structural gaps it can verify from the profile.
func generateFallbackAnalysis(kol *models.KOLProfile) *ProfileEnhancement {
	var suggestions, missing []string

	if kol.Bio == nil || len(strings.TrimSpace(*kol.Bio)) < 50 {
		missing = append(missing, "bio")
		suggestions = append(suggestions, "Write a bio of at least a few sentences describing your content and audience.")
	}
	if len(kol.Categories) == 0 {
		missing = append(missing, "categories")
		suggestions = append(suggestions, "Add content categories so campaign matching can find you.")
	}
	if len(kol.SocialLinks) == 0 {
		missing = append(missing, "social_links")
		suggestions = append(suggestions, "Link your social accounts to enable automatic analytics refresh.")
	}
	if len(kol.Analytics) == 0 {
		missing = append(missing, "analytics")
		suggestions = append(suggestions, "Connect at least one platform with follower data; campaigns filter on reach.")
	}
	if len(kol.Audience.AgeDistribution) == 0 {
		missing = append(missing, "audience_demographics")
		suggestions = append(suggestions, "Add audience age demographics to improve match scores for targeted campaigns.")
	}
	if kol.BestEngagementRate() > 0 && kol.BestEngagementRate() < 0.02 {
		suggestions = append(suggestions, "Engagement rate is below 2%; posting consistency and audience interaction weigh heavily in rankings.")
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Profile looks complete. Keep analytics fresh to stay competitive in rankings.")
	}

	return &ProfileEnhancement{
		Suggestions:     suggestions,
		MissingSections: missing,
		Source:          "heuristic",
	}
}

// profileSummary is a one-line description used in match reports.
func profileSummary(kol *models.KOLProfile) string {
	parts := []string{fmt.Sprintf("%d followers", kol.TotalFollowers())}
	if len(kol.Categories) > 0 {
		parts = append(parts, strings.Join(kol.Categories, ", "))
	}
	if rate := kol.BestEngagementRate(); rate > 0 {
		parts = append(parts, fmt.Sprintf("%.1f%% engagement", rate*100))
	}
	return fmt.Sprintf("%s: %s", kol.DisplayName, strings.Join(parts, " · "))
}
