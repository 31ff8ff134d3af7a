package models

import (
	"time"

	"github.com/google/uuid"
)

type FAQ struct {
	ID        uuid.UUID `db:"id"`
	Category  string    `db:"category"`
	Question  string    `db:"question"`
	Answer    string    `db:"answer"`
	Keywords  string    `db:"keywords"` // comma-separated search terms
	CreatedAt time.Time `db:"created_at"`
}
