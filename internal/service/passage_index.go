package service

import (
	"context"

	"eduagent/internal/models"

	"go.uber.org/zap"
)

type Embedder interface {
	Embeddings(ctx context.Context, text string) ([]float32, error)
}

type PassageStore interface {
	SearchSimilar(ctx context.Context, embedding []float32, topK int) ([]*models.Passage, error)
	SearchText(ctx context.Context, queryText string, topK int) ([]*models.Passage, error)
}

// PassageIndex fronts the embedding store: semantic nearest-neighbor search
// when the embedder is reachable, plain text search when it is not.
type PassageIndex struct {
	embedder Embedder
	store    PassageStore
	logger   *zap.Logger
}

func NewPassageIndex(embedder Embedder, store PassageStore, logger *zap.Logger) *PassageIndex {
	return &PassageIndex{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

func (i *PassageIndex) Search(ctx context.Context, text string, topK int) ([]Passage, error) {
	var rows []*models.Passage

	embedding, err := i.embedder.Embeddings(ctx, text)
	if err == nil {
		rows, err = i.store.SearchSimilar(ctx, embedding, topK)
	} else {
		i.logger.Warn("Embedding failed, falling back to text search", zap.Error(err))
		rows, err = i.store.SearchText(ctx, text, topK)
	}
	if err != nil {
		return nil, err
	}

	passages := make([]Passage, 0, len(rows))
	for _, row := range rows {
		passages = append(passages, Passage{
			Text:       row.Content,
			SourceFile: row.SourceFile,
		})
	}

	return passages, nil
}
