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

type ApplicationService struct {
	appRepo      *repositories.ApplicationRepo
	campaignRepo *repositories.CampaignRepo
	kolRepo      *repositories.KOLRepo
	auditRepo    *repositories.AuditRepo
	publisher    events.Publisher
	log          *zap.Logger
}

func NewApplicationService(
	appRepo *repositories.ApplicationRepo,
	campaignRepo *repositories.CampaignRepo,
	kolRepo *repositories.KOLRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		appRepo:      appRepo,
		campaignRepo: campaignRepo,
		kolRepo:      kolRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		log:          log,
	}
}

// transition validates and performs a status transition with audit logging.
func (s *ApplicationService) transition(ctx context.Context, a *models.Application, newStatus string, feedback any, actorID *uuid.UUID, actorType string) error {
	if !models.IsValidApplicationTransition(a.Status, newStatus) {
		return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
	}

	oldStatus := a.Status
	var err error
	if feedback != nil {
		err = s.appRepo.UpdateStatusWithFeedback(ctx, a.ID, newStatus, feedback)
	} else {
		err = s.appRepo.UpdateStatus(ctx, a.ID, newStatus)
	}
	if err != nil {
		return err
	}
	a.Status = newStatus
	if feedback != nil {
		a.Feedback = feedback
	}

	_ = s.auditRepo.Log(ctx, &models.AuditLog{
		ActorUserID: actorID,
		ActorType:   actorType,
		Action:      fmt.Sprintf("application_status_%s_to_%s", oldStatus, newStatus),
		EntityType:  "application",
		EntityID:    &a.ID,
		Meta:        map[string]any{"old_status": oldStatus, "new_status": newStatus},
	})

	_ = s.publisher.Publish(ctx, events.StreamApplication, events.Event{
		Type: events.EventApplicationStatusChanged,
		Payload: map[string]any{
			"application_id": a.ID.String(),
			"campaign_id":    a.CampaignID.String(),
			"kol_profile_id": a.KOLProfileID.String(),
			"old_status":     oldStatus,
			"new_status":     newStatus,
		},
	})

	return nil
}

// InviteKOLs creates invited applications for a batch of KOL profiles.
// Duplicates are skipped, not failed: inviting from a match list should be
// idempotent per KOL.
func (s *ApplicationService) InviteKOLs(ctx context.Context, campaignID, actorID uuid.UUID, kolProfileIDs []uuid.UUID, proposedRate *float64) ([]models.Application, error) {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if c.BusinessUserID != actorID {
		return nil, fmt.Errorf("campaign does not belong to this user")
	}
	if !c.IsOpenForApplications() {
		return nil, fmt.Errorf("campaign is not active, current status: %s", c.Status)
	}

	now := time.Now().UTC()
	var created []models.Application
	for _, kolID := range kolProfileIDs {
		if _, err := s.kolRepo.GetByID(ctx, kolID); err != nil {
			s.log.Warn("skipping invite for unknown KOL profile",
				zap.String("kol_profile_id", kolID.String()))
			continue
		}
		if existing, err := s.appRepo.GetByCampaignAndKOL(ctx, campaignID, kolID); err == nil && existing != nil {
			continue
		}

		a := models.Application{
			CampaignID:   campaignID,
			KOLProfileID: kolID,
			Status:       models.ApplicationStatusInvited,
			ProposedRate: proposedRate,
			InvitedAt:    &now,
		}
		if err := s.appRepo.Create(ctx, &a); err != nil {
			return nil, err
		}
		created = append(created, a)

		_ = s.publisher.Publish(ctx, events.StreamApplication, events.Event{
			Type: events.EventKOLInvited,
			Payload: map[string]any{
				"application_id": a.ID.String(),
				"campaign_id":    campaignID.String(),
				"kol_profile_id": kolID.String(),
			},
		})
	}

	_ = s.auditRepo.Log(ctx, &models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "user",
		Action:      "kols_invited",
		EntityType:  "campaign",
		EntityID:    &campaignID,
		Meta:        map[string]any{"invited": len(created), "requested": len(kolProfileIDs)},
	})

	return created, nil
}

// Apply either accepts a pending invitation (invited -> applied) or creates a
// fresh application for an open campaign.
func (s *ApplicationService) Apply(ctx context.Context, campaignID, kolUserID uuid.UUID, proposedRate *float64, pitch *string) (*models.Application, error) {
	kol, err := s.kolRepo.GetByUserID(ctx, kolUserID)
	if err != nil {
		return nil, fmt.Errorf("KOL profile not found: %w", err)
	}

	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if !c.IsOpenForApplications() {
		return nil, fmt.Errorf("campaign is not accepting applications, current status: %s", c.Status)
	}
	if c.Timeline.ApplicationDeadline != nil && c.Timeline.ApplicationDeadline.Before(time.Now()) {
		return nil, fmt.Errorf("application deadline has passed")
	}

	now := time.Now().UTC()

	existing, err := s.appRepo.GetByCampaignAndKOL(ctx, campaignID, kol.ID)
	if err == nil && existing != nil {
		// pending invitation -> applied
		if existing.Status != models.ApplicationStatusInvited {
			return nil, fmt.Errorf("already applied to this campaign, current status: %s", existing.Status)
		}
		if err := s.transition(ctx, existing, models.ApplicationStatusApplied, nil, &kolUserID, "user"); err != nil {
			return nil, err
		}
		if err := s.appRepo.SetAppliedDetails(ctx, existing.ID, proposedRate, now); err != nil {
			return nil, err
		}
		if proposedRate != nil {
			existing.ProposedRate = proposedRate
		}
		existing.AppliedAt = &now
		return existing, nil
	}

	a := models.Application{
		CampaignID:   campaignID,
		KOLProfileID: kol.ID,
		Status:       models.ApplicationStatusApplied,
		ProposedRate: proposedRate,
		AppliedAt:    &now,
	}
	if pitch != nil {
		a.Feedback = map[string]any{"pitch": *pitch}
	}
	if err := s.appRepo.Create(ctx, &a); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, &models.AuditLog{
		ActorUserID: &kolUserID,
		ActorType:   "user",
		Action:      "application_created",
		EntityType:  "application",
		EntityID:    &a.ID,
	})

	_ = s.publisher.Publish(ctx, events.StreamApplication, events.Event{
		Type: events.EventApplicationStatusChanged,
		Payload: map[string]any{
			"application_id": a.ID.String(),
			"campaign_id":    campaignID.String(),
			"kol_profile_id": kol.ID.String(),
			"new_status":     models.ApplicationStatusApplied,
		},
	})

	return &a, nil
}

func (s *ApplicationService) Accept(ctx context.Context, applicationID, actorID uuid.UUID, agreedRate *float64) (*models.Application, error) {
	a, c, err := s.loadForBusiness(ctx, applicationID, actorID)
	if err != nil {
		return nil, err
	}
	if !c.IsOpenForApplications() {
		return nil, fmt.Errorf("campaign is not active, current status: %s", c.Status)
	}

	if err := s.transition(ctx, a, models.ApplicationStatusAccepted, nil, &actorID, "user"); err != nil {
		return nil, err
	}

	rate := agreedRate
	if rate == nil {
		rate = a.ProposedRate
	}
	if rate == nil && c.Budget.PerKOL > 0 {
		rate = &c.Budget.PerKOL
	}
	if rate != nil {
		if err := s.appRepo.SetAgreedRate(ctx, a.ID, *rate); err != nil {
			return nil, err
		}
		a.AgreedRate = rate
	}

	return a, nil
}

func (s *ApplicationService) Decline(ctx context.Context, applicationID, actorID uuid.UUID, reason string) (*models.Application, error) {
	a, _, err := s.loadForBusiness(ctx, applicationID, actorID)
	if err != nil {
		return nil, err
	}

	feedback := map[string]any{
		"reason": "declined_by_business",
		"detail": reason,
		"by":     actorID.String(),
		"at":     time.Now().UTC(),
	}
	if err := s.transition(ctx, a, models.ApplicationStatusDeclined, feedback, &actorID, "user"); err != nil {
		return nil, err
	}
	return a, nil
}

// Withdraw lets a KOL back out of a pending invitation or application.
// Recorded as declined with feedback naming the KOL as the actor. Not allowed
// once accepted or after the campaign has left the active state.
func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, kolUserID uuid.UUID, reason string) (*models.Application, error) {
	kol, err := s.kolRepo.GetByUserID(ctx, kolUserID)
	if err != nil {
		return nil, fmt.Errorf("KOL profile not found: %w", err)
	}

	a, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("application not found: %w", err)
	}
	if a.KOLProfileID != kol.ID {
		return nil, fmt.Errorf("application does not belong to this KOL")
	}

	if !models.CanWithdraw(a.Status) {
		return nil, fmt.Errorf("cannot withdraw from status %s", a.Status)
	}

	c, err := s.campaignRepo.GetByID(ctx, a.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if !c.IsOpenForApplications() {
		return nil, fmt.Errorf("campaign is no longer active, withdrawal is not possible")
	}

	feedback := map[string]any{
		"reason": "withdrawn_by_kol",
		"detail": reason,
		"by":     kolUserID.String(),
		"at":     time.Now().UTC(),
	}
	if err := s.transition(ctx, a, models.ApplicationStatusDeclined, feedback, &kolUserID, "user"); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ApplicationService) Complete(ctx context.Context, applicationID, actorID uuid.UUID) (*models.Application, error) {
	a, _, err := s.loadForBusiness(ctx, applicationID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, a, models.ApplicationStatusCompleted, nil, &actorID, "user"); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ApplicationService) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return s.appRepo.GetByID(ctx, id)
}

func (s *ApplicationService) ListForCampaign(ctx context.Context, campaignID, actorID uuid.UUID, f repositories.ApplicationFilter) ([]models.ApplicationWithKOL, error) {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if c.BusinessUserID != actorID {
		return nil, fmt.Errorf("campaign does not belong to this user")
	}
	f.CampaignID = &campaignID
	return s.appRepo.ListWithKOL(ctx, f)
}

func (s *ApplicationService) ListForKOL(ctx context.Context, kolUserID uuid.UUID, f repositories.ApplicationFilter) ([]models.ApplicationWithCampaign, error) {
	kol, err := s.kolRepo.GetByUserID(ctx, kolUserID)
	if err != nil {
		return nil, fmt.Errorf("KOL profile not found: %w", err)
	}
	f.KOLProfileID = &kol.ID
	return s.appRepo.ListWithCampaign(ctx, f)
}

// loadForBusiness fetches an application and its campaign, checking that the
// campaign belongs to the acting business user.
func (s *ApplicationService) loadForBusiness(ctx context.Context, applicationID, actorID uuid.UUID) (*models.Application, *models.Campaign, error) {
	a, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, fmt.Errorf("application not found: %w", err)
	}
	c, err := s.campaignRepo.GetByID(ctx, a.CampaignID)
	if err != nil {
		return nil, nil, fmt.Errorf("campaign not found: %w", err)
	}
	if c.BusinessUserID != actorID {
		return nil, nil, fmt.Errorf("campaign does not belong to this user")
	}
	return a, c, nil
}
