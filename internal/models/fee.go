package models

import "github.com/google/uuid"

type Fee struct {
	ID          uuid.UUID `db:"id"`
	FeeType     string    `db:"fee_type"`
	Amount      float64   `db:"amount"`
	DueDate     string    `db:"due_date"`
	Description string    `db:"description"`
}
