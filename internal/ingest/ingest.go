// Package ingest turns uploaded PDF documents into searchable passages:
// extract text, split into chunks, embed each chunk, store the rows the
// retrieval pipeline searches.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eduagent/internal/models"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

type Embedder interface {
	Embeddings(ctx context.Context, text string) ([]float32, error)
}

type PassageWriter interface {
	Create(ctx context.Context, p *models.Passage) error
	DeleteBySourceFile(ctx context.Context, sourceFile string) error
}

type Result struct {
	FileName string
	Pages    int
	Chunks   int
}

type Ingestor struct {
	embedder Embedder
	passages PassageWriter
	logger   *zap.Logger
}

func NewIngestor(embedder Embedder, passages PassageWriter, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		embedder: embedder,
		passages: passages,
		logger:   logger,
	}
}

// ProcessPDF extracts the document text and replaces any passages previously
// ingested from the same file. Re-uploading is how stale content gets fixed.
func (i *Ingestor) ProcessPDF(ctx context.Context, filePath, fileName string) (*Result, error) {
	text, pages, err := extractText(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", fileName, err)
	}

	chunks := ChunkText(text, defaultChunkSize, defaultChunkOverlap)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no readable text in %s", fileName)
	}

	if err := i.passages.DeleteBySourceFile(ctx, fileName); err != nil {
		return nil, fmt.Errorf("failed to clear previous passages for %s: %w", fileName, err)
	}

	now := time.Now()
	for _, chunk := range chunks {
		embedding, err := i.embedder.Embeddings(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk of %s: %w", fileName, err)
		}

		passage := &models.Passage{
			ID:         uuid.New(),
			SourceFile: fileName,
			Content:    chunk,
			Embedding:  pgvector.NewVector(embedding),
			CreatedAt:  now,
		}
		if err := i.passages.Create(ctx, passage); err != nil {
			return nil, fmt.Errorf("failed to store passage of %s: %w", fileName, err)
		}
	}

	i.logger.Info("Document ingested",
		zap.String("file", fileName),
		zap.Int("pages", pages),
		zap.Int("chunks", len(chunks)),
	)

	return &Result{
		FileName: fileName,
		Pages:    pages,
		Chunks:   len(chunks),
	}, nil
}

func extractText(filePath string) (string, int, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	var b strings.Builder
	pages := reader.NumPage()
	for pageNum := 1; pageNum <= pages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue // a broken page should not sink the whole document
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	return b.String(), pages, nil
}
