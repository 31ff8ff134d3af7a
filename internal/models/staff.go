package models

import (
	"time"

	"github.com/google/uuid"
)

type StaffUser struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"` // bcrypt hash
	CreatedAt time.Time `db:"created_at"`
}
