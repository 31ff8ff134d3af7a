package repository

import (
	"context"

	"eduagent/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type StaffRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewStaffRepository(db *pgxpool.Pool, logger *zap.Logger) *StaffRepository {
	return &StaffRepository{
		db:     db,
		logger: logger,
	}
}

func (r *StaffRepository) Create(ctx context.Context, user *models.StaffUser) error {
	query := squirrel.Insert("staff_users").
		Columns("id", "username", "password", "created_at").
		Values(user.ID, user.Username, user.Password, user.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *StaffRepository) GetByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	query := squirrel.Select("id", "username", "password", "created_at").
		From("staff_users").
		Where(squirrel.Eq{"username": username}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.StaffUser
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Password, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.StaffUser, error) {
	query := squirrel.Select("id", "username", "password", "created_at").
		From("staff_users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.StaffUser
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Password, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *StaffRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM staff_users").Scan(&count)
	return count, err
}
