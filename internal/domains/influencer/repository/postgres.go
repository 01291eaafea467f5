package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) influencer.Repository {
	return &postgresRepository{pool: pool}
}

const influencerColumns = `
	id, username, platform, display_name, bio, category,
	follower_count, content_count, verified, account_created_at,
	trust_score, last_fetched_at, created_at, updated_at
`

func scanInfluencer(row pgx.Row) (*influencer.Influencer, error) {
	i := &influencer.Influencer{}
	var accountCreatedAt, lastFetchedAt *time.Time

	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Platform,
		&i.DisplayName,
		&i.Bio,
		&i.Category,
		&i.FollowerCount,
		&i.ContentCount,
		&i.Verified,
		&accountCreatedAt,
		&i.TrustScore,
		&lastFetchedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if accountCreatedAt != nil {
		i.AccountCreatedAt = *accountCreatedAt
	}
	if lastFetchedAt != nil {
		i.LastFetchedAt = *lastFetchedAt
	}
	return i, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r *postgresRepository) Create(ctx context.Context, entity *influencer.Influencer) (*influencer.Influencer, error) {
	const query = `
		INSERT INTO influencers (
			id, username, platform, display_name, bio, category,
			follower_count, content_count, verified, account_created_at,
			trust_score, last_fetched_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + influencerColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Username,
		entity.Platform,
		entity.DisplayName,
		entity.Bio,
		entity.Category,
		entity.FollowerCount,
		entity.ContentCount,
		entity.Verified,
		nullableTime(entity.AccountCreatedAt),
		entity.TrustScore,
		nullableTime(entity.LastFetchedAt),
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	created, err := scanInfluencer(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.ConstraintName == "idx_influencers_handle" {
				logger.Error("Create: duplicate handle", err)
				return nil, influencer.ErrDuplicateHandle
			}
		}
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create influencer: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*influencer.Influencer, error) {
	const query = `SELECT ` + influencerColumns + ` FROM influencers WHERE id = $1`

	found, err := scanInfluencer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, influencer.ErrInfluencerNotFound
		}
		return nil, fmt.Errorf("failed to get influencer: %w", err)
	}
	return found, nil
}

func (r *postgresRepository) GetByHandle(ctx context.Context, username, platform string) (*influencer.Influencer, error) {
	const query = `
		SELECT ` + influencerColumns + `
		FROM influencers
		WHERE LOWER(username) = LOWER($1) AND LOWER(platform) = LOWER($2)`

	found, err := scanInfluencer(r.pool.QueryRow(ctx, query, username, platform))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, influencer.ErrInfluencerNotFound
		}
		return nil, fmt.Errorf("failed to get influencer by handle: %w", err)
	}
	return found, nil
}

func (r *postgresRepository) Search(ctx context.Context, filter *influencer.SearchFilter) ([]influencer.Influencer, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Query != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(username ILIKE $%d OR display_name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Query+"%")
		argPos++
	}
	if filter.Platform != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(platform) = LOWER($%d)", argPos))
		args = append(args, filter.Platform)
		argPos++
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, filter.Category)
		argPos++
	}
	if filter.MinTrust > 0 {
		conditions = append(conditions, fmt.Sprintf("trust_score >= $%d", argPos))
		args = append(args, filter.MinTrust)
		argPos++
	}
	if filter.MaxTrust > 0 {
		conditions = append(conditions, fmt.Sprintf("trust_score <= $%d", argPos))
		args = append(args, filter.MaxTrust)
		argPos++
	}
	if filter.VerifiedOnly {
		conditions = append(conditions, "verified = true")
	}

	where := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM influencers WHERE " + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count influencers: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM influencers WHERE %s ORDER BY follower_count DESC, username ASC LIMIT $%d OFFSET $%d",
		influencerColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search influencers: %w", err)
	}
	defer rows.Close()

	var items []influencer.Influencer
	for rows.Next() {
		item, err := scanInfluencer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan influencer: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read influencers: %w", err)
	}

	return items, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *influencer.Influencer) (*influencer.Influencer, error) {
	const query = `
		UPDATE influencers SET
			display_name = $2,
			bio = $3,
			category = $4,
			follower_count = $5,
			content_count = $6,
			verified = $7,
			account_created_at = $8,
			trust_score = $9,
			last_fetched_at = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + influencerColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.DisplayName,
		entity.Bio,
		entity.Category,
		entity.FollowerCount,
		entity.ContentCount,
		entity.Verified,
		nullableTime(entity.AccountCreatedAt),
		entity.TrustScore,
		nullableTime(entity.LastFetchedAt),
	)

	updated, err := scanInfluencer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, influencer.ErrInfluencerNotFound
		}
		return nil, fmt.Errorf("failed to update influencer: %w", err)
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM influencers WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete influencer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return influencer.ErrInfluencerNotFound
	}
	return nil
}

func (r *postgresRepository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]influencer.Influencer, error) {
	const query = `
		SELECT ` + influencerColumns + `
		FROM influencers
		WHERE last_fetched_at IS NULL OR last_fetched_at < $1
		ORDER BY last_fetched_at ASC NULLS FIRST
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale influencers: %w", err)
	}
	defer rows.Close()

	var items []influencer.Influencer
	for rows.Next() {
		item, err := scanInfluencer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan influencer: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read influencers: %w", err)
	}
	return items, nil
}
