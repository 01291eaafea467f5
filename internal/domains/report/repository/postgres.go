package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trustboard-backend/internal/domains/report"
	"trustboard-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) report.Repository {
	return &postgresRepository{pool: pool}
}

const reportColumns = `
	id, user_id, type, parameters, status, data, error_message,
	created_at, updated_at, completed_at
`

func scanReport(row pgx.Row) (*report.Report, error) {
	r := &report.Report{}
	var paramsJSON, dataJSON []byte
	var completedAt *time.Time

	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Type,
		&paramsJSON,
		&r.Status,
		&dataJSON,
		&r.ErrorMessage,
		&r.CreatedAt,
		&r.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(paramsJSON) > 0 {
		if err := json.Unmarshal(paramsJSON, &r.Parameters); err != nil {
			return nil, fmt.Errorf("failed to decode report parameters: %w", err)
		}
	}
	if r.Parameters == nil {
		r.Parameters = map[string]interface{}{}
	}
	if len(dataJSON) > 0 {
		if err := json.Unmarshal(dataJSON, &r.Data); err != nil {
			return nil, fmt.Errorf("failed to decode report data: %w", err)
		}
	}
	r.CompletedAt = completedAt

	return r, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *report.Report) (*report.Report, error) {
	paramsJSON, err := json.Marshal(entity.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report parameters: %w", err)
	}

	const query = `
		INSERT INTO reports (
			id, user_id, type, parameters, status, error_message,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + reportColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.UserID,
		entity.Type,
		paramsJSON,
		entity.Status,
		entity.ErrorMessage,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	created, err := scanReport(row)
	if err != nil {
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	const query = `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	found, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, report.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return found, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter *report.ListFilter) ([]report.Report, int64, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argPos))
		args = append(args, filter.Type)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM reports WHERE " + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM reports WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		reportColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var items []report.Report
	for rows.Next() {
		item, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan report: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read reports: %w", err)
	}

	return items, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *report.Report) (*report.Report, error) {
	dataJSON, err := json.Marshal(entity.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report data: %w", err)
	}

	const query = `
		UPDATE reports SET
			status = $2,
			data = $3,
			error_message = $4,
			updated_at = NOW(),
			completed_at = $5
		WHERE id = $1
		RETURNING ` + reportColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Status,
		dataJSON,
		entity.ErrorMessage,
		entity.CompletedAt,
	)

	updated, err := scanReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, report.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM reports WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return report.ErrReportNotFound
	}
	return nil
}
