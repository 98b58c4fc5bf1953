package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Class struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null" json:"teacher_id"`
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Lesson struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	ClassID     uuid.UUID `gorm:"type:uuid;not null" json:"class_id"`
	TeacherID   uuid.UUID `gorm:"type:uuid;not null" json:"teacher_id"`
	Description string    `json:"description"`
	// Materials is a JSON array of URLs or paths to lesson resources.
	Materials     string     `json:"-"`
	Duration      int        `gorm:"default:60" json:"duration"` // minutes
	DateScheduled *time.Time `json:"date_scheduled,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (l *Lesson) MaterialList() []string {
	var materials []string
	json.Unmarshal([]byte(l.Materials), &materials)
	return materials
}

func (l *Lesson) SetMaterials(materials []string) error {
	buf, err := json.Marshal(materials)
	if err != nil {
		return err
	}
	l.Materials = string(buf)
	return nil
}
