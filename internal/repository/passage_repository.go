package repository

import (
	"context"

	"eduagent/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

type PassageRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPassageRepository(db *pgxpool.Pool, logger *zap.Logger) *PassageRepository {
	return &PassageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PassageRepository) Create(ctx context.Context, p *models.Passage) error {
	query := squirrel.Insert("document_passages").
		Columns("id", "source_file", "content", "embedding", "created_at").
		Values(p.ID, p.SourceFile, p.Content, p.Embedding, p.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// SearchSimilar returns the topK passages nearest to the query embedding
// by cosine distance.
func (r *PassageRepository) SearchSimilar(ctx context.Context, embedding []float32, topK int) ([]*models.Passage, error) {
	query := squirrel.Select("id", "source_file", "content", "embedding", "created_at").
		From("document_passages").
		OrderByClause("embedding <=> ?", pgvector.NewVector(embedding)).
		Limit(uint64(topK)).
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

	return scanPassages(rows)
}

// SearchText is the fallback when no query embedding is available.
func (r *PassageRepository) SearchText(ctx context.Context, queryText string, topK int) ([]*models.Passage, error) {
	query := squirrel.Select("id", "source_file", "content", "embedding", "created_at").
		From("document_passages").
		Where(squirrel.ILike{"content": "%" + queryText + "%"}).
		Limit(uint64(topK)).
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

	return scanPassages(rows)
}

func (r *PassageRepository) DeleteBySourceFile(ctx context.Context, sourceFile string) error {
	query := squirrel.Delete("document_passages").
		Where(squirrel.Eq{"source_file": sourceFile}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PassageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM document_passages").Scan(&count)
	return count, err
}

func scanPassages(rows pgx.Rows) ([]*models.Passage, error) {
	var passages []*models.Passage
	for rows.Next() {
		var p models.Passage
		if err := rows.Scan(
			&p.ID, &p.SourceFile, &p.Content, &p.Embedding, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		passages = append(passages, &p)
	}
	return passages, rows.Err()
}
