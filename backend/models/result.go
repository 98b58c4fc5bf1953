package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result records one scored submission attempt. Rows are insert-only and
// never updated; repeated attempts by the same student append new rows.
type Result struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID     uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	LessonID      uuid.UUID `gorm:"type:uuid;not null" json:"lesson_id"`
	Score         int       `gorm:"not null" json:"score"`
	DateAttempted time.Time `gorm:"not null" json:"date_attempted"`
}

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
