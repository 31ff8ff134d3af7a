package repository

import (
	"context"

	"eduagent/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ExamRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExamRepository(db *pgxpool.Pool, logger *zap.Logger) *ExamRepository {
	return &ExamRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExamRepository) Create(ctx context.Context, exam *models.ExamSchedule) error {
	query := squirrel.Insert("exam_schedules").
		Columns("id", "subject", "exam_date", "exam_time", "venue", "semester").
		Values(exam.ID, exam.Subject, exam.ExamDate, exam.ExamTime, exam.Venue, exam.Semester).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExamRepository) ListAll(ctx context.Context) ([]*models.ExamSchedule, error) {
	query := squirrel.Select("id", "subject", "exam_date", "exam_time", "venue", "semester").
		From("exam_schedules").
		OrderBy("exam_date ASC").
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

	var exams []*models.ExamSchedule
	for rows.Next() {
		var exam models.ExamSchedule
		if err := rows.Scan(
			&exam.ID, &exam.Subject, &exam.ExamDate, &exam.ExamTime, &exam.Venue, &exam.Semester,
		); err != nil {
			return nil, err
		}
		exams = append(exams, &exam)
	}

	return exams, rows.Err()
}

func (r *ExamRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM exam_schedules").Scan(&count)
	return count, err
}
