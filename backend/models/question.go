package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QuestionTypeMCQ       = "mcq"
	QuestionTypeTrueFalse = "truefalse"
	QuestionTypeFillBlank = "fillblank"
)

func ValidQuestionType(t string) bool {
	return t == QuestionTypeMCQ || t == QuestionTypeTrueFalse || t == QuestionTypeFillBlank
}

type Question struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID     uuid.UUID `gorm:"type:uuid;not null" json:"lesson_id"`
	Type         string    `gorm:"not null" json:"type"`
	QuestionText string    `gorm:"not null" json:"question_text"`
	// Options is a JSON array of choices; only meaningful for mcq questions.
	Options       string `json:"-"`
	CorrectAnswer string `gorm:"not null" json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (q *Question) OptionList() []string {
	var options []string
	json.Unmarshal([]byte(q.Options), &options)
	return options
}

func (q *Question) SetOptions(options []string) error {
	buf, err := json.Marshal(options)
	if err != nil {
		return err
	}
	q.Options = string(buf)
	return nil
}
