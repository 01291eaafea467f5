package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trustboard-backend/internal/domains/social"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) social.Repository {
	return &postgresRepository{pool: pool}
}

const tokenColumns = `
	id, user_id, platform, access_token, refresh_token,
	expires_at, created_at, updated_at
`

func scanToken(row pgx.Row) (*social.UserToken, error) {
	t := &social.UserToken{}
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Platform,
		&t.AccessToken,
		&t.RefreshToken,
		&t.ExpiresAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, token *social.UserToken) (*social.UserToken, error) {
	// Providers omit the refresh token when the user re-authorizes an
	// existing grant; keep the stored one in that case.
	const query = `
		INSERT INTO user_tokens (
			id, user_id, platform, access_token, refresh_token,
			expires_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, platform) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = CASE
				WHEN EXCLUDED.refresh_token = '' THEN user_tokens.refresh_token
				ELSE EXCLUDED.refresh_token
			END,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
		RETURNING ` + tokenColumns

	row := r.pool.QueryRow(ctx, query,
		token.ID,
		token.UserID,
		token.Platform,
		token.AccessToken,
		token.RefreshToken,
		token.ExpiresAt,
		token.CreatedAt,
		token.UpdatedAt,
	)

	stored, err := scanToken(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user token: %w", err)
	}
	return stored, nil
}

func (r *postgresRepository) GetByUserAndPlatform(ctx context.Context, userID uuid.UUID, platform string) (*social.UserToken, error) {
	const query = `SELECT ` + tokenColumns + ` FROM user_tokens WHERE user_id = $1 AND platform = $2`

	found, err := scanToken(r.pool.QueryRow(ctx, query, userID, platform))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, social.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get user token: %w", err)
	}
	return found, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]social.UserToken, error) {
	const query = `SELECT ` + tokenColumns + ` FROM user_tokens WHERE user_id = $1 ORDER BY platform`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tokens: %w", err)
	}
	defer rows.Close()

	var items []social.UserToken
	for rows.Next() {
		item, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user token: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user tokens: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID uuid.UUID, platform string) error {
	const query = `DELETE FROM user_tokens WHERE user_id = $1 AND platform = $2`

	tag, err := r.pool.Exec(ctx, query, userID, platform)
	if err != nil {
		return fmt.Errorf("failed to delete user token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return social.ErrTokenNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM user_tokens WHERE expires_at IS NOT NULL AND expires_at < $1`

	tag, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
