package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/config"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/middleware"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/models"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/services"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/utils"
)

type StudentController struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Submissions *services.SubmissionService
	Results     *services.ResultsService
}

func NewStudentController(db *gorm.DB, cfg *config.Config) *StudentController {
	return &StudentController{
		DB:          db,
		Cfg:         cfg,
		Submissions: services.NewSubmissionService(db),
		Results:     services.NewResultsService(db),
	}
}

func (sc *StudentController) GetClassLessons(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid classId format")
	}

	var lessons []models.Lesson
	if err := sc.DB.Where("class_id = ?", classID).Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch lessons")
	}
	if len(lessons) == 0 {
		return utils.NotFound(c, "No lessons found for this class")
	}

	payload := make([]fiber.Map, 0, len(lessons))
	for i := range lessons {
		payload = append(payload, lessonPayload(&lessons[i]))
	}
	return c.JSON(payload)
}

// GetLessonQuestions serves the question set for taking a quiz. Correct
// answers are stripped from the payload.
func (sc *StudentController) GetLessonQuestions(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lessonId format")
	}

	var lesson models.Lesson
	if err := sc.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var questions []models.Question
	if err := sc.DB.Where("lesson_id = ?", lessonID).Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch questions")
	}

	payload := make([]fiber.Map, 0, len(questions))
	for i := range questions {
		payload = append(payload, questionPayload(&questions[i], false))
	}
	return c.JSON(payload)
}

// SubmitAnswers grades the submitted answer map and records a Result. The
// student identity comes from the authenticated token, never the body.
func (sc *StudentController) SubmitAnswers(c *fiber.Ctx) error {
	type SubmitInput struct {
		Answers map[string]string `json:"answers"`
	}

	var input SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	score, err := sc.Submissions.Submit(c.Params("lessonId"), middleware.CallerID(c), input.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return utils.BadRequest(c, "Invalid lessonId format")
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFound(c, "Lesson not found")
		default:
			return utils.InternalServerError(c, "Failed to submit answers")
		}
	}

	return c.JSON(fiber.Map{"score": score})
}

// GetResults lists the caller's own attempts with lesson titles.
func (sc *StudentController) GetResults(c *fiber.Ctx) error {
	views, err := sc.Results.ForStudent(middleware.CallerID(c))
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch results")
	}
	if len(views) == 0 {
		return utils.NotFound(c, "No results found")
	}
	return c.JSON(views)
}
