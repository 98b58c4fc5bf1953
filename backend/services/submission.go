package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/grading"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/models"
)

// SubmissionService runs the submit-answers pipeline: validate the lesson
// identifier, load the lesson and its questions, grade the answers and
// persist a Result row. The three store calls are not wrapped in a
// transaction; if the insert fails the submission is simply not recorded
// and the caller may resubmit, which creates a second Result row.
type SubmissionService struct {
	DB *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{DB: db}
}

// Submit scores the answer map for one lesson and records a Result.
// Returns ErrInvalidInput for a malformed lesson ID (before any store
// access) and ErrNotFound when the lesson does not exist.
func (s *SubmissionService) Submit(lessonID string, studentID uuid.UUID, answers map[string]string) (int, error) {
	id, err := uuid.Parse(lessonID)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed lesson id %q", ErrInvalidInput, lessonID)
	}

	var lesson models.Lesson
	if err := s.DB.First(&lesson, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: lesson %s", ErrNotFound, id)
		}
		return 0, err
	}

	var questions []models.Question
	if err := s.DB.Where("lesson_id = ?", id).Find(&questions).Error; err != nil {
		return 0, err
	}

	score := grading.Score(questions, answers)

	result := models.Result{
		StudentID:     studentID,
		LessonID:      id,
		Score:         score,
		DateAttempted: time.Now(),
	}
	if err := s.DB.Create(&result).Error; err != nil {
		return 0, err
	}

	return score, nil
}
