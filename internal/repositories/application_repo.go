package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kol-marketplace/backend/internal/models"
)

type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

func (r *ApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaign_kols (campaign_id, kol_profile_id, status, proposed_rate, agreed_rate, feedback, invited_at, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, a.CampaignID, a.KOLProfileID, a.Status, a.ProposedRate, a.AgreedRate, a.Feedback, a.InvitedAt, a.AppliedAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var a models.Application
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, kol_profile_id, status, proposed_rate, agreed_rate, feedback,
		       invited_at, applied_at, created_at, updated_at
		FROM campaign_kols WHERE id = $1
	`, id).Scan(&a.ID, &a.CampaignID, &a.KOLProfileID, &a.Status, &a.ProposedRate, &a.AgreedRate,
		&a.Feedback, &a.InvitedAt, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) GetByCampaignAndKOL(ctx context.Context, campaignID, kolProfileID uuid.UUID) (*models.Application, error) {
	var a models.Application
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, kol_profile_id, status, proposed_rate, agreed_rate, feedback,
		       invited_at, applied_at, created_at, updated_at
		FROM campaign_kols WHERE campaign_id = $1 AND kol_profile_id = $2
	`, campaignID, kolProfileID).Scan(&a.ID, &a.CampaignID, &a.KOLProfileID, &a.Status,
		&a.ProposedRate, &a.AgreedRate, &a.Feedback, &a.InvitedAt, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaign_kols SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	return err
}

func (r *ApplicationRepo) UpdateStatusWithFeedback(ctx context.Context, id uuid.UUID, status string, feedback any) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaign_kols SET status = $1, feedback = $2, updated_at = now() WHERE id = $3
	`, status, feedback, id)
	return err
}

// SetAppliedDetails stamps the application time and, when given, the KOL's
// proposed rate. Used when a pending invitation turns into an application.
func (r *ApplicationRepo) SetAppliedDetails(ctx context.Context, id uuid.UUID, proposedRate *float64, appliedAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaign_kols
		SET applied_at = $1, proposed_rate = COALESCE($2, proposed_rate), updated_at = now()
		WHERE id = $3
	`, appliedAt, proposedRate, id)
	return err
}

func (r *ApplicationRepo) SetAgreedRate(ctx context.Context, id uuid.UUID, rate float64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaign_kols SET agreed_rate = $1, updated_at = now() WHERE id = $2
	`, rate, id)
	return err
}

// CountByStatus counts rows for a campaign in any of the given statuses.
func (r *ApplicationRepo) CountByStatus(ctx context.Context, campaignID uuid.UUID, statuses ...string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM campaign_kols WHERE campaign_id = $1 AND status = ANY($2)
	`, campaignID, statuses).Scan(&count)
	return count, err
}

// CascadeDecline force-declines all invited/applied rows for a campaign.
// Accepted and completed rows are never touched here; an accepted row blocks
// cancellation upstream. Returns the number of rows transitioned.
func (r *ApplicationRepo) CascadeDecline(ctx context.Context, campaignID uuid.UUID, feedback any) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaign_kols SET status = $1, feedback = $2, updated_at = now()
		WHERE campaign_id = $3 AND status = ANY($4)
	`, models.ApplicationStatusDeclined, feedback, campaignID,
		[]string{models.ApplicationStatusInvited, models.ApplicationStatusApplied})
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// ExpireStaleInvites declines invitations still pending after the campaign's
// application deadline.
func (r *ApplicationRepo) ExpireStaleInvites(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaign_kols ck SET status = $1, updated_at = now()
		FROM campaigns c
		WHERE ck.campaign_id = c.id
		  AND ck.status = $2
		  AND (c.timeline->>'application_deadline') IS NOT NULL
		  AND (c.timeline->>'application_deadline')::timestamptz < now()
	`, models.ApplicationStatusDeclined, models.ApplicationStatusInvited)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

type ApplicationFilter struct {
	CampaignID   *uuid.UUID
	KOLProfileID *uuid.UUID
	Status       *string
	Limit        int
	Offset       int
}

// ListWithKOL returns applications joined with KOL display names for the
// business-facing view.
func (r *ApplicationRepo) ListWithKOL(ctx context.Context, f ApplicationFilter) ([]models.ApplicationWithKOL, error) {
	query := `
		SELECT ck.id, ck.campaign_id, ck.kol_profile_id, ck.status, ck.proposed_rate, ck.agreed_rate,
		       ck.feedback, ck.invited_at, ck.applied_at, ck.created_at, ck.updated_at,
		       k.display_name
		FROM campaign_kols ck
		JOIN kol_profiles k ON k.id = ck.kol_profile_id
	`
	where, args := r.buildFilter(f, "ck")
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY ck.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.ApplicationWithKOL
	for rows.Next() {
		var a models.ApplicationWithKOL
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.KOLProfileID, &a.Status, &a.ProposedRate, &a.AgreedRate,
			&a.Feedback, &a.InvitedAt, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt,
			&a.KOLDisplayName); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// ListWithCampaign returns applications joined with campaign info for the
// KOL-facing view.
func (r *ApplicationRepo) ListWithCampaign(ctx context.Context, f ApplicationFilter) ([]models.ApplicationWithCampaign, error) {
	query := `
		SELECT ck.id, ck.campaign_id, ck.kol_profile_id, ck.status, ck.proposed_rate, ck.agreed_rate,
		       ck.feedback, ck.invited_at, ck.applied_at, ck.created_at, ck.updated_at,
		       c.title, c.status
		FROM campaign_kols ck
		JOIN campaigns c ON c.id = ck.campaign_id
	`
	where, args := r.buildFilter(f, "ck")
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY ck.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.ApplicationWithCampaign
	for rows.Next() {
		var a models.ApplicationWithCampaign
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.KOLProfileID, &a.Status, &a.ProposedRate, &a.AgreedRate,
			&a.Feedback, &a.InvitedAt, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt,
			&a.CampaignTitle, &a.CampaignStatus); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, nil
}

func (r *ApplicationRepo) buildFilter(f ApplicationFilter, alias string) ([]string, []any) {
	args := []any{}
	where := []string{}
	argIdx := 1

	if f.CampaignID != nil {
		where = append(where, fmt.Sprintf("%s.campaign_id = $%d", alias, argIdx))
		args = append(args, *f.CampaignID)
		argIdx++
	}
	if f.KOLProfileID != nil {
		where = append(where, fmt.Sprintf("%s.kol_profile_id = $%d", alias, argIdx))
		args = append(args, *f.KOLProfileID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("%s.status = $%d", alias, argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	return where, args
}
