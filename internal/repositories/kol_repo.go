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

type KOLRepo struct {
	pool *pgxpool.Pool
}

func NewKOLRepo(pool *pgxpool.Pool) *KOLRepo {
	return &KOLRepo{pool: pool}
}

const kolColumns = `id, user_id, display_name, bio, categories, social_links, audience, analytics,
	content_quality_score, brand_safety_score, niche_authority_score, created_at, updated_at`

func (r *KOLRepo) scanRow(row interface{ Scan(dest ...any) error }, k *models.KOLProfile) error {
	return row.Scan(&k.ID, &k.UserID, &k.DisplayName, &k.Bio, &k.Categories, &k.SocialLinks,
		&k.Audience, &k.Analytics, &k.ContentQualityScore, &k.BrandSafetyScore,
		&k.NicheAuthorityScore, &k.CreatedAt, &k.UpdatedAt)
}

func (r *KOLRepo) Create(ctx context.Context, k *models.KOLProfile) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO kol_profiles (user_id, display_name, bio, categories, social_links, audience, analytics,
		                          content_quality_score, brand_safety_score, niche_authority_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, k.UserID, k.DisplayName, k.Bio, k.Categories, k.SocialLinks, k.Audience, k.Analytics,
		k.ContentQualityScore, k.BrandSafetyScore, k.NicheAuthorityScore,
	).Scan(&k.ID, &k.CreatedAt, &k.UpdatedAt)
}

func (r *KOLRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.KOLProfile, error) {
	var k models.KOLProfile
	row := r.pool.QueryRow(ctx, `SELECT `+kolColumns+` FROM kol_profiles WHERE id = $1`, id)
	if err := r.scanRow(row, &k); err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *KOLRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.KOLProfile, error) {
	var k models.KOLProfile
	row := r.pool.QueryRow(ctx, `SELECT `+kolColumns+` FROM kol_profiles WHERE user_id = $1`, userID)
	if err := r.scanRow(row, &k); err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *KOLRepo) Update(ctx context.Context, k *models.KOLProfile) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE kol_profiles SET display_name = $1, bio = $2, categories = $3, social_links = $4,
		       audience = $5, analytics = $6, content_quality_score = $7, brand_safety_score = $8,
		       niche_authority_score = $9, updated_at = now()
		WHERE id = $10
	`, k.DisplayName, k.Bio, k.Categories, k.SocialLinks, k.Audience, k.Analytics,
		k.ContentQualityScore, k.BrandSafetyScore, k.NicheAuthorityScore, k.ID)
	return err
}

// UpdateAnalytics replaces the per-platform snapshots in one statement.
func (r *KOLRepo) UpdateAnalytics(ctx context.Context, id uuid.UUID, analytics []models.PlatformAnalytics) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE kol_profiles SET analytics = $1, updated_at = now() WHERE id = $2
	`, analytics, id)
	return err
}

type KOLFilter struct {
	Category     *string
	Platform     *string
	MinFollowers *int64
	MaxFollowers *int64
	Query        *string
	Limit        int
	Offset       int
}

// Search filters KOL profiles. Category and follower filters run against the
// JSONB columns; the text query matches display name and bio.
func (r *KOLRepo) Search(ctx context.Context, f KOLFilter) ([]models.KOLProfile, error) {
	query := `SELECT ` + kolColumns + ` FROM kol_profiles`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Category != nil {
		where = append(where, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(categories) cat
			WHERE cat ILIKE '%%' || $%d || '%%')`, argIdx))
		args = append(args, *f.Category)
		argIdx++
	}
	if f.Platform != nil {
		where = append(where, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM jsonb_array_elements(analytics) a
			WHERE a->>'platform' = $%d)`, argIdx))
		args = append(args, strings.ToLower(*f.Platform))
		argIdx++
	}
	if f.MinFollowers != nil {
		where = append(where, fmt.Sprintf(`(
			SELECT COALESCE(SUM((a->>'followers')::bigint), 0)
			FROM jsonb_array_elements(analytics) a) >= $%d`, argIdx))
		args = append(args, *f.MinFollowers)
		argIdx++
	}
	if f.MaxFollowers != nil {
		where = append(where, fmt.Sprintf(`(
			SELECT COALESCE(SUM((a->>'followers')::bigint), 0)
			FROM jsonb_array_elements(analytics) a) <= $%d`, argIdx))
		args = append(args, *f.MaxFollowers)
		argIdx++
	}
	if f.Query != nil {
		where = append(where, fmt.Sprintf(`(display_name ILIKE '%%' || $%d || '%%' OR bio ILIKE '%%' || $%d || '%%')`, argIdx, argIdx))
		args = append(args, *f.Query)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
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

	var kols []models.KOLProfile
	for rows.Next() {
		var k models.KOLProfile
		if err := r.scanRow(rows, &k); err != nil {
			return nil, err
		}
		kols = append(kols, k)
	}
	return kols, nil
}

// ListCandidates returns the scoring pool for a campaign. Filtering here is
// deliberately loose (platform presence only) — the scorer does the ranking.
func (r *KOLRepo) ListCandidates(ctx context.Context, platforms []string, limit int) ([]*models.KOLProfile, error) {
	f := KOLFilter{Limit: limit}
	if len(platforms) == 1 {
		f.Platform = &platforms[0]
	}
	kols, err := r.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*models.KOLProfile, 0, len(kols))
	for i := range kols {
		out = append(out, &kols[i])
	}
	return out, nil
}

// InsertStatsSnapshot records a raw scrape before it is folded into analytics.
func (r *KOLRepo) InsertStatsSnapshot(ctx context.Context, s *models.KOLStatsSnapshot) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO kol_stats_snapshots (kol_profile_id, platform, followers, avg_views, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, fetched_at
	`, s.KOLProfileID, s.Platform, s.Followers, s.AvgViews, s.Source,
	).Scan(&s.ID, &s.FetchedAt)
}

// ListStale returns profiles whose analytics have not been refreshed within
// the window, for the worker's refresh job.
func (r *KOLRepo) ListStale(ctx context.Context, olderThan time.Duration, limit int) ([]models.KOLProfile, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+kolColumns+` FROM kol_profiles
		WHERE updated_at < now() - $1::interval
		ORDER BY updated_at ASC LIMIT $2
	`, fmt.Sprintf("%d seconds", int(olderThan.Seconds())), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kols []models.KOLProfile
	for rows.Next() {
		var k models.KOLProfile
		if err := r.scanRow(rows, &k); err != nil {
			return nil, err
		}
		kols = append(kols, k)
	}
	return kols, nil
}
