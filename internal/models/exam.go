package models

import "github.com/google/uuid"

type ExamSchedule struct {
	ID       uuid.UUID `db:"id"`
	Subject  string    `db:"subject"`
	ExamDate string    `db:"exam_date"`
	ExamTime string    `db:"exam_time"`
	Venue    string    `db:"venue"`
	Semester int       `db:"semester"`
}
