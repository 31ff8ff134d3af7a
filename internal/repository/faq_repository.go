package repository

import (
	"context"

	"eduagent/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type FAQRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFAQRepository(db *pgxpool.Pool, logger *zap.Logger) *FAQRepository {
	return &FAQRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FAQRepository) Create(ctx context.Context, faq *models.FAQ) error {
	query := squirrel.Insert("faqs").
		Columns("id", "category", "question", "answer", "keywords", "created_at").
		Values(faq.ID, faq.Category, faq.Question, faq.Answer, faq.Keywords, faq.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Search matches the question text against question, answer and keyword
// fields; the detected category is an additional matchable field. Relevance
// ranking beyond LIMIT 3 is left to the store.
func (r *FAQRepository) Search(ctx context.Context, text, category string) ([]*models.FAQ, error) {
	pattern := "%" + text + "%"

	query := squirrel.Select("id", "category", "question", "answer", "keywords", "created_at").
		From("faqs").
		Where(squirrel.Or{
			squirrel.ILike{"question": pattern},
			squirrel.ILike{"answer": pattern},
			squirrel.ILike{"keywords": pattern},
			squirrel.ILike{"category": "%" + category + "%"},
		}).
		Limit(3).
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

	var faqs []*models.FAQ
	for rows.Next() {
		var faq models.FAQ
		if err := rows.Scan(
			&faq.ID, &faq.Category, &faq.Question, &faq.Answer, &faq.Keywords, &faq.CreatedAt,
		); err != nil {
			return nil, err
		}
		faqs = append(faqs, &faq)
	}

	return faqs, rows.Err()
}

func (r *FAQRepository) ListAll(ctx context.Context, category string) ([]*models.FAQ, error) {
	query := squirrel.Select("id", "category", "question", "answer", "keywords", "created_at").
		From("faqs").
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if category != "" {
		query = query.Where(squirrel.ILike{"category": category})
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

	var faqs []*models.FAQ
	for rows.Next() {
		var faq models.FAQ
		if err := rows.Scan(
			&faq.ID, &faq.Category, &faq.Question, &faq.Answer, &faq.Keywords, &faq.CreatedAt,
		); err != nil {
			return nil, err
		}
		faqs = append(faqs, &faq)
	}

	return faqs, rows.Err()
}

func (r *FAQRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM faqs").Scan(&count)
	return count, err
}
