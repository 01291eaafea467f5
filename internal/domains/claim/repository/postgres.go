package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"trustboard-backend/internal/domains/claim"
	"trustboard-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) claim.Repository {
	return &postgresRepository{pool: pool}
}

const claimColumns = `
	id, influencer_id, content, category, original_source,
	status, trust_score, studies, verification_notes, expert_opinions,
	created_at, updated_at
`

func scanClaim(row pgx.Row) (*claim.Claim, error) {
	c := &claim.Claim{}
	var studiesJSON []byte
	var opinionsJSON []byte

	err := row.Scan(
		&c.ID,
		&c.InfluencerID,
		&c.Content,
		&c.Category,
		&c.OriginalSource,
		&c.Status,
		&c.TrustScore,
		&studiesJSON,
		&c.VerificationNotes,
		&opinionsJSON,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(studiesJSON) > 0 {
		if err := json.Unmarshal(studiesJSON, &c.Studies); err != nil {
			return nil, fmt.Errorf("failed to decode studies: %w", err)
		}
	}
	if c.Studies == nil {
		c.Studies = []claim.Study{}
	}
	if len(opinionsJSON) > 0 {
		if err := json.Unmarshal(opinionsJSON, &c.ExpertOpinions); err != nil {
			return nil, fmt.Errorf("failed to decode expert opinions: %w", err)
		}
	}

	return c, nil
}

func encodeClaim(c *claim.Claim) (studies, opinions []byte, err error) {
	if c.Studies == nil {
		c.Studies = []claim.Study{}
	}
	studies, err = json.Marshal(c.Studies)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode studies: %w", err)
	}
	if c.ExpertOpinions == nil {
		c.ExpertOpinions = []claim.ExpertOpinion{}
	}
	opinions, err = json.Marshal(c.ExpertOpinions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode expert opinions: %w", err)
	}
	return studies, opinions, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *claim.Claim) (*claim.Claim, error) {
	studiesJSON, opinionsJSON, err := encodeClaim(entity)
	if err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO claims (
			id, influencer_id, content, category, original_source,
			status, trust_score, studies, verification_notes, expert_opinions,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + claimColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.InfluencerID,
		entity.Content,
		entity.Category,
		entity.OriginalSource,
		entity.Status,
		entity.TrustScore,
		studiesJSON,
		entity.VerificationNotes,
		opinionsJSON,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	created, err := scanClaim(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.ConstraintName == "claims_influencer_id_fkey" {
				logger.Error("Create: influencer not found", err)
				return nil, claim.ErrInfluencerNotFound
			}
		}
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create claim: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*claim.Claim, error) {
	const query = `SELECT ` + claimColumns + ` FROM claims WHERE id = $1`

	found, err := scanClaim(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, claim.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return found, nil
}

func (r *postgresRepository) List(ctx context.Context, filter *claim.ListFilter) ([]claim.Claim, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.InfluencerID != nil {
		conditions = append(conditions, fmt.Sprintf("influencer_id = $%d", argPos))
		args = append(args, *filter.InfluencerID)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, filter.Category)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM claims WHERE " + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count claims: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM claims WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		claimColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	var items []claim.Claim
	for rows.Next() {
		item, err := scanClaim(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan claim: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read claims: %w", err)
	}

	return items, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *claim.Claim) (*claim.Claim, error) {
	studiesJSON, opinionsJSON, err := encodeClaim(entity)
	if err != nil {
		return nil, err
	}

	const query = `
		UPDATE claims SET
			content = $2,
			category = $3,
			original_source = $4,
			status = $5,
			trust_score = $6,
			studies = $7,
			verification_notes = $8,
			expert_opinions = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + claimColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Content,
		entity.Category,
		entity.OriginalSource,
		entity.Status,
		entity.TrustScore,
		studiesJSON,
		entity.VerificationNotes,
		opinionsJSON,
	)

	updated, err := scanClaim(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, claim.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to update claim: %w", err)
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM claims WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return claim.ErrClaimNotFound
	}
	return nil
}
