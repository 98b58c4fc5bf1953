package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/models"
)

// ResultView is one row of a role-scoped results listing, enriched with the
// referenced lesson title and, for teacher and admin views, the student name.
type ResultView struct {
	ID            uuid.UUID `json:"id"`
	StudentName   string    `json:"student_name,omitempty"`
	LessonTitle   string    `json:"lesson_title"`
	Score         int       `json:"score"`
	DateAttempted time.Time `json:"date_attempted"`
}

// ResultsService builds read-only views over the Result collection. Every
// call re-reads current store contents; nothing is cached between requests.
// Zero matching rows is an empty slice, not an error.
type ResultsService struct {
	DB *gorm.DB
}

func NewResultsService(db *gorm.DB) *ResultsService {
	return &ResultsService{DB: db}
}

// ForStudent lists the caller's own attempts with lesson titles.
func (s *ResultsService) ForStudent(studentID uuid.UUID) ([]ResultView, error) {
	var results []models.Result
	if err := s.DB.Where("student_id = ?", studentID).
		Order("date_attempted").Find(&results).Error; err != nil {
		return nil, err
	}
	return s.enrich(results, false)
}

// ForTeacher lists attempts against lessons owned by the teacher. A teacher
// with no lessons yet gets an empty listing.
func (s *ResultsService) ForTeacher(teacherID uuid.UUID) ([]ResultView, error) {
	var lessonIDs []uuid.UUID
	if err := s.DB.Model(&models.Lesson{}).Where("teacher_id = ?", teacherID).
		Pluck("id", &lessonIDs).Error; err != nil {
		return nil, err
	}
	if len(lessonIDs) == 0 {
		return []ResultView{}, nil
	}

	var results []models.Result
	if err := s.DB.Where("lesson_id IN ?", lessonIDs).
		Order("date_attempted").Find(&results).Error; err != nil {
		return nil, err
	}
	return s.enrich(results, true)
}

// All lists every attempt in the system. Admin only.
func (s *ResultsService) All() ([]ResultView, error) {
	var results []models.Result
	if err := s.DB.Order("date_attempted").Find(&results).Error; err != nil {
		return nil, err
	}
	return s.enrich(results, true)
}

// enrich resolves lesson titles and, when withStudent is set, student names.
// A Result whose lesson or student was deleted keeps its row with the
// reference left blank; deletes do not cascade here.
func (s *ResultsService) enrich(results []models.Result, withStudent bool) ([]ResultView, error) {
	views := make([]ResultView, 0, len(results))

	lessonTitles := map[uuid.UUID]string{}
	studentNames := map[uuid.UUID]string{}

	for _, r := range results {
		view := ResultView{
			ID:            r.ID,
			Score:         r.Score,
			DateAttempted: r.DateAttempted,
		}

		title, ok := lessonTitles[r.LessonID]
		if !ok {
			var lesson models.Lesson
			if err := s.DB.Select("title").First(&lesson, "id = ?", r.LessonID).Error; err == nil {
				title = lesson.Title
			}
			lessonTitles[r.LessonID] = title
		}
		view.LessonTitle = title

		if withStudent {
			name, ok := studentNames[r.StudentID]
			if !ok {
				var student models.User
				if err := s.DB.Select("name").First(&student, "id = ?", r.StudentID).Error; err == nil {
					name = student.Name
				}
				studentNames[r.StudentID] = name
			}
			view.StudentName = name
		}

		views = append(views, view)
	}

	return views, nil
}
