package repository

import (
	"context"

	"eduagent/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type FeeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFeeRepository(db *pgxpool.Pool, logger *zap.Logger) *FeeRepository {
	return &FeeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FeeRepository) Create(ctx context.Context, fee *models.Fee) error {
	query := squirrel.Insert("fee_structure").
		Columns("id", "fee_type", "amount", "due_date", "description").
		Values(fee.ID, fee.FeeType, fee.Amount, fee.DueDate, fee.Description).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *FeeRepository) ListAll(ctx context.Context) ([]*models.Fee, error) {
	query := squirrel.Select("id", "fee_type", "amount", "due_date", "description").
		From("fee_structure").
		OrderBy("fee_type ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []*models.Fee
	for rows.Next() {
		var fee models.Fee
		if err := rows.Scan(
			&fee.ID, &fee.FeeType, &fee.Amount, &fee.DueDate, &fee.Description,
		); err != nil {
			return nil, err
		}
		fees = append(fees, &fee)
	}

	return fees, rows.Err()
}

func (r *FeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM fee_structure").Scan(&count)
	return count, err
}
