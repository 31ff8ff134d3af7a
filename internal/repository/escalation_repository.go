package repository

import (
	"context"

	"eduagent/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type EscalationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewEscalationRepository(db *pgxpool.Pool, logger *zap.Logger) *EscalationRepository {
	return &EscalationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *EscalationRepository) Create(ctx context.Context, eq *models.EscalatedQuery) error {
	query := squirrel.Insert("escalated_queries").
		Columns("id", "student_query", "reason", "status", "admin_notes", "created_at").
		Values(eq.ID, eq.StudentQuery, eq.Reason, eq.Status, eq.AdminNotes, eq.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListByStatus returns escalated queries newest first; empty status means all.
func (r *EscalationRepository) ListByStatus(ctx context.Context, status string) ([]*models.EscalatedQuery, error) {
	query := squirrel.Select("id", "student_query", "reason", "status", "admin_notes", "created_at").
		From("escalated_queries").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if status != "" {
		query = query.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []*models.EscalatedQuery
	for rows.Next() {
		var eq models.EscalatedQuery
		if err := rows.Scan(
			&eq.ID, &eq.StudentQuery, &eq.Reason, &eq.Status, &eq.AdminNotes, &eq.CreatedAt,
		); err != nil {
			return nil, err
		}
		queries = append(queries, &eq)
	}

	return queries, rows.Err()
}

func (r *EscalationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.EscalationStatus, adminNotes string) error {
	query := squirrel.Update("escalated_queries").
		Set("status", status).
		Set("admin_notes", adminNotes).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *EscalationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM escalated_queries").Scan(&count)
	return count, err
}

func (r *EscalationRepository) CountByStatus(ctx context.Context, status models.EscalationStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM escalated_queries WHERE status = $1", status).Scan(&count)
	return count, err
}
