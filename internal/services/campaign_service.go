package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kol-marketplace/backend/internal/events"
	"github.com/kol-marketplace/backend/internal/models"
	"github.com/kol-marketplace/backend/internal/repositories"
	"go.uber.org/zap"
)

type CampaignService struct {
	campaignRepo *repositories.CampaignRepo
	appRepo      *repositories.ApplicationRepo
	auditRepo    *repositories.AuditRepo
	publisher    events.Publisher
	log          *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	appRepo *repositories.ApplicationRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		appRepo:      appRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		log:          log,
	}
}

// transition validates and performs a status transition with audit logging.
func (s *CampaignService) transition(ctx context.Context, c *models.Campaign, newStatus string, actorID *uuid.UUID, actorType string) error {
	if !models.IsValidCampaignTransition(c.Status, newStatus) {
		return fmt.Errorf("invalid transition from %s to %s", c.Status, newStatus)
	}

	oldStatus := c.Status
	if err := s.campaignRepo.UpdateStatus(ctx, c.ID, newStatus); err != nil {
		return err
	}
	c.Status = newStatus

	_ = s.auditRepo.Log(ctx, &models.AuditLog{
		ActorUserID: actorID,
		ActorType:   actorType,
		Action:      fmt.Sprintf("campaign_status_%s_to_%s", oldStatus, newStatus),
		EntityType:  "campaign",
		EntityID:    &c.ID,
		Meta:        map[string]any{"old_status": oldStatus, "new_status": newStatus},
	})

	_ = s.publisher.Publish(ctx, events.StreamCampaign, events.Event{
		Type: events.EventCampaignStatusChanged,
		Payload: map[string]any{
			"campaign_id": c.ID.String(),
			"old_status":  oldStatus,
			"new_status":  newStatus,
		},
	})

	return nil
}

func (s *CampaignService) CreateCampaign(ctx context.Context, businessUserID uuid.UUID, c *models.Campaign) (*models.Campaign, error) {
	if c.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if c.Requirements.MinFollowers < 0 || c.Requirements.MaxFollowers < 0 {
		return nil, fmt.Errorf("follower bounds must be non-negative")
	}
	if c.Requirements.MaxFollowers > 0 && c.Requirements.MaxFollowers < c.Requirements.MinFollowers {
		return nil, fmt.Errorf("max_followers must be >= min_followers")
	}
	if c.Budget.PerKOL > 0 && c.Budget.Total > 0 && c.Budget.PerKOL > c.Budget.Total {
		return nil, fmt.Errorf("per-KOL budget exceeds total budget")
	}
	if c.Budget.Currency == "" {
		c.Budget.Currency = "USD"
	}

	c.BusinessUserID = businessUserID
	c.Status = models.CampaignStatusDraft

	if err := s.campaignRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, &models.AuditLog{
		ActorUserID: &businessUserID,
		ActorType:   "user",
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &c.ID,
	})

	return c, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, id)
}

func (s *CampaignService) ListCampaigns(ctx context.Context, f repositories.CampaignFilter) ([]models.Campaign, error) {
	return s.campaignRepo.List(ctx, f)
}

// UpdateCampaign replaces the campaign body. Only drafts are editable; once a
// campaign is active its terms are visible to invited KOLs and frozen.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id, actorID uuid.UUID, update *models.Campaign) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if c.BusinessUserID != actorID {
		return nil, fmt.Errorf("campaign does not belong to this user")
	}
	if c.Status != models.CampaignStatusDraft {
		return nil, fmt.Errorf("only draft campaigns can be edited, current status: %s", c.Status)
	}

	c.Title = update.Title
	c.Description = update.Description
	c.Objectives = update.Objectives
	c.Requirements = update.Requirements
	c.Budget = update.Budget
	c.Timeline = update.Timeline

	if err := s.campaignRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) DeleteCampaign(ctx context.Context, id, actorID uuid.UUID) error {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("campaign not found: %w", err)
	}
	if c.BusinessUserID != actorID {
		return fmt.Errorf("campaign does not belong to this user")
	}
	if c.Status != models.CampaignStatusDraft {
		return fmt.Errorf("only draft campaigns can be deleted")
	}
	return s.campaignRepo.Delete(ctx, id)
}

func (s *CampaignService) ActivateCampaign(ctx context.Context, id, actorID uuid.UUID) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if c.BusinessUserID != actorID {
		return nil, fmt.Errorf("campaign does not belong to this user")
	}
	if c.Timeline.EndDate != nil && c.Timeline.EndDate.Before(time.Now()) {
		return nil, fmt.Errorf("campaign end date is in the past")
	}
	if err := s.transition(ctx, c, models.CampaignStatusActive, &actorID, "user"); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) CompleteCampaign(ctx context.Context, id, actorID uuid.UUID) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if c.BusinessUserID != actorID {
		return nil, fmt.Errorf("campaign does not belong to this user")
	}
	if err := s.transition(ctx, c, models.CampaignStatusCompleted, &actorID, "user"); err != nil {
		return nil, err
	}
	return c, nil
}

// CancelCampaign cancels a draft or active campaign. Accepted collaborations
// block cancellation; pending invitations and applications are declined in
// bulk so KOLs are not left waiting on a dead campaign.
func (s *CampaignService) CancelCampaign(ctx context.Context, id, actorID uuid.UUID, reason string) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if c.BusinessUserID != actorID {
		return nil, fmt.Errorf("campaign does not belong to this user")
	}

	accepted, err := s.appRepo.CountByStatus(ctx, id, models.ApplicationStatusAccepted)
	if err != nil {
		return nil, err
	}
	if accepted > 0 {
		return nil, fmt.Errorf("cannot cancel campaign with %d accepted application(s), complete or decline them first", accepted)
	}

	if err := s.transition(ctx, c, models.CampaignStatusCancelled, &actorID, "user"); err != nil {
		return nil, err
	}

	feedback := map[string]any{
		"reason": "campaign_cancelled",
		"detail": reason,
		"at":     time.Now().UTC(),
	}
	declined, err := s.appRepo.CascadeDecline(ctx, id, feedback)
	if err != nil {
		s.log.Error("cascade decline failed after cancellation",
			zap.String("campaign_id", id.String()), zap.Error(err))
		return c, nil
	}
	if declined > 0 {
		s.log.Info("declined pending applications for cancelled campaign",
			zap.String("campaign_id", id.String()), zap.Int("count", declined))
		_ = s.publisher.Publish(ctx, events.StreamApplication, events.Event{
			Type: events.EventApplicationStatusChanged,
			Payload: map[string]any{
				"campaign_id": id.String(),
				"new_status":  models.ApplicationStatusDeclined,
				"count":       declined,
				"cause":       "campaign_cancelled",
			},
		})
	}

	return c, nil
}

// ExpireCampaigns completes active campaigns whose end date has passed.
// Called by the worker on a ticker.
func (s *CampaignService) ExpireCampaigns(ctx context.Context) (int, error) {
	expired, err := s.campaignRepo.ListExpired(ctx)
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range expired {
		c := &expired[i]
		if err := s.transition(ctx, c, models.CampaignStatusCompleted, nil, "system"); err != nil {
			s.log.Error("failed to complete expired campaign",
				zap.String("campaign_id", c.ID.String()), zap.Error(err))
			continue
		}
		completed++
	}
	return completed, nil
}
