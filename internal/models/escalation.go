package models

import (
	"time"

	"github.com/google/uuid"
)

type EscalationStatus string

const (
	EscalationStatusPending    EscalationStatus = "pending"
	EscalationStatusInProgress EscalationStatus = "in-progress"
	EscalationStatusResolved   EscalationStatus = "resolved"
)

// EscalatedQuery is a sensitive student query flagged for human review.
type EscalatedQuery struct {
	ID           uuid.UUID        `db:"id"`
	StudentQuery string           `db:"student_query"`
	Reason       string           `db:"reason"`
	Status       EscalationStatus `db:"status"`
	AdminNotes   string           `db:"admin_notes"`
	CreatedAt    time.Time        `db:"created_at"`
}
