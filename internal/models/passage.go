package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Passage is one searchable chunk of an uploaded document.
type Passage struct {
	ID         uuid.UUID       `db:"id"`
	SourceFile string          `db:"source_file"`
	Content    string          `db:"content"`
	Embedding  pgvector.Vector `db:"embedding"`
	CreatedAt  time.Time       `db:"created_at"`
}
