package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kol-marketplace/backend/internal/models"
)

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (business_user_id, title, description, objectives, requirements, budget, timeline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, c.BusinessUserID, c.Title, c.Description, c.Objectives,
		c.Requirements, c.Budget, c.Timeline, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	err := r.pool.QueryRow(ctx, `
		SELECT id, business_user_id, title, description, objectives,
		       requirements, budget, timeline, status, created_at, updated_at
		FROM campaigns WHERE id = $1
	`, id).Scan(&c.ID, &c.BusinessUserID, &c.Title, &c.Description, &c.Objectives,
		&c.Requirements, &c.Budget, &c.Timeline, &c.Status,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET title = $1, description = $2, objectives = $3,
		       requirements = $4, budget = $5, timeline = $6, status = $7, updated_at = now()
		WHERE id = $8
	`, c.Title, c.Description, c.Objectives,
		c.Requirements, c.Budget, c.Timeline, c.Status, c.ID)
	return err
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}

func (r *CampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	return err
}

type CampaignFilter struct {
	BusinessUserID *uuid.UUID
	Status         *string
	Limit          int
	Offset         int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `
		SELECT id, business_user_id, title, description, objectives,
		       requirements, budget, timeline, status, created_at, updated_at
		FROM campaigns
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.BusinessUserID != nil {
		where = append(where, fmt.Sprintf("business_user_id = $%d", argIdx))
		args = append(args, *f.BusinessUserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.BusinessUserID, &c.Title, &c.Description, &c.Objectives,
			&c.Requirements, &c.Budget, &c.Timeline, &c.Status,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

// ListActive returns campaigns open for matching, capped at limit.
func (r *CampaignRepo) ListActive(ctx context.Context, limit int) ([]models.Campaign, error) {
	status := models.CampaignStatusActive
	return r.List(ctx, CampaignFilter{Status: &status, Limit: limit})
}

// ListExpired returns active campaigns whose timeline end date has passed.
func (r *CampaignRepo) ListExpired(ctx context.Context) ([]models.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, business_user_id, title, description, objectives,
		       requirements, budget, timeline, status, created_at, updated_at
		FROM campaigns
		WHERE status = $1 AND (timeline->>'end_date') IS NOT NULL
		  AND (timeline->>'end_date')::timestamptz < now()
	`, models.CampaignStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.BusinessUserID, &c.Title, &c.Description, &c.Objectives,
			&c.Requirements, &c.Budget, &c.Timeline, &c.Status,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}
