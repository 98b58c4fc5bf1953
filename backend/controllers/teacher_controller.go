package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/config"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/middleware"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/models"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/services"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/utils"
)

type TeacherController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Results *services.ResultsService
}

func NewTeacherController(db *gorm.DB, cfg *config.Config) *TeacherController {
	return &TeacherController{DB: db, Cfg: cfg, Results: services.NewResultsService(db)}
}

func (tc *TeacherController) CreateClass(c *fiber.Ctx) error {
	type ClassInput struct {
		Name string `json:"name" validate:"required"`
	}

	var input ClassInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	class := models.Class{Name: input.Name, TeacherID: middleware.CallerID(c)}
	if err := tc.DB.Create(&class).Error; err != nil {
		return utils.InternalServerError(c, "Failed to create class")
	}

	return c.JSON(class)
}

func (tc *TeacherController) GetClasses(c *fiber.Ctx) error {
	var classes []models.Class
	if err := tc.DB.Where("teacher_id = ?", middleware.CallerID(c)).Find(&classes).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch classes")
	}
	return c.JSON(classes)
}

func (tc *TeacherController) EditClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid classId")
	}

	type ClassInput struct {
		Name string `json:"name" validate:"required"`
	}
	var input ClassInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var class models.Class
	if err := tc.DB.First(&class, "id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Class not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	class.Name = input.Name
	if err := tc.DB.Save(&class).Error; err != nil {
		return utils.InternalServerError(c, "Failed to edit class")
	}

	return c.JSON(class)
}

// DeleteClass removes the class row only. Lessons and results referencing it
// are left in place; deletes do not cascade.
func (tc *TeacherController) DeleteClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid classId")
	}

	res := tc.DB.Delete(&models.Class{}, "id = ?", classID)
	if res.Error != nil {
		return utils.InternalServerError(c, "Failed to delete class")
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Class not found")
	}

	return c.JSON(fiber.Map{"message": "Class deleted successfully"})
}

func (tc *TeacherController) CreateLesson(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid classId")
	}

	type LessonInput struct {
		Title         string     `json:"title" validate:"required"`
		Description   string     `json:"description"`
		Materials     []string   `json:"materials"`
		Duration      int        `json:"duration"`
		DateScheduled *time.Time `json:"date_scheduled"`
	}
	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	lesson := models.Lesson{
		Title:         input.Title,
		ClassID:       classID,
		TeacherID:     middleware.CallerID(c),
		Description:   input.Description,
		Duration:      input.Duration,
		DateScheduled: input.DateScheduled,
	}
	if lesson.Duration == 0 {
		lesson.Duration = 60
	}
	if err := lesson.SetMaterials(input.Materials); err != nil {
		return utils.BadRequest(c, "Invalid materials")
	}

	if err := tc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Failed to create lesson")
	}

	return c.JSON(lessonPayload(&lesson))
}

func (tc *TeacherController) GetClassLessons(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid classId")
	}

	var lessons []models.Lesson
	if err := tc.DB.Where("class_id = ?", classID).Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch lessons")
	}

	payload := make([]fiber.Map, 0, len(lessons))
	for i := range lessons {
		payload = append(payload, lessonPayload(&lessons[i]))
	}
	return c.JSON(payload)
}

func (tc *TeacherController) EditLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lessonId")
	}

	type LessonInput struct {
		Title string `json:"title" validate:"required"`
	}
	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var lesson models.Lesson
	if err := tc.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	lesson.Title = input.Title
	if err := tc.DB.Save(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Failed to edit lesson")
	}

	return c.JSON(lessonPayload(&lesson))
}

// DeleteLesson does not cascade to questions or results; past attempts keep
// their rows with a dangling lesson reference.
func (tc *TeacherController) DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lessonId")
	}

	res := tc.DB.Delete(&models.Lesson{}, "id = ?", lessonID)
	if res.Error != nil {
		return utils.InternalServerError(c, "Failed to delete lesson")
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Lesson not found")
	}

	return c.JSON(fiber.Map{"message": "Lesson deleted successfully"})
}

func (tc *TeacherController) CreateQuestion(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lessonId format")
	}

	type QuestionInput struct {
		Type          string   `json:"type" validate:"required"`
		QuestionText  string   `json:"question_text" validate:"required"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer" validate:"required"`
	}
	var input QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if !models.ValidQuestionType(input.Type) {
		return utils.BadRequest(c, "Invalid question type")
	}

	var lesson models.Lesson
	if err := tc.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	question := models.Question{
		LessonID:      lessonID,
		Type:          input.Type,
		QuestionText:  input.QuestionText,
		CorrectAnswer: input.CorrectAnswer,
	}
	if err := question.SetOptions(input.Options); err != nil {
		return utils.BadRequest(c, "Invalid options")
	}

	if err := tc.DB.Create(&question).Error; err != nil {
		return utils.InternalServerError(c, "Failed to create question")
	}

	return c.Status(fiber.StatusCreated).JSON(questionPayload(&question, true))
}

// EditQuestion updates the current question definition. Past results are not
// rescored; a submission's score is final at the time it was graded.
func (tc *TeacherController) EditQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("questionId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid questionId")
	}

	type QuestionInput struct {
		Type          string   `json:"type"`
		QuestionText  string   `json:"question_text"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
	}
	var input QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var question models.Question
	if err := tc.DB.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Type != "" {
		if !models.ValidQuestionType(input.Type) {
			return utils.BadRequest(c, "Invalid question type")
		}
		question.Type = input.Type
	}
	if input.QuestionText != "" {
		question.QuestionText = input.QuestionText
	}
	if input.Options != nil {
		if err := question.SetOptions(input.Options); err != nil {
			return utils.BadRequest(c, "Invalid options")
		}
	}
	if input.CorrectAnswer != "" {
		question.CorrectAnswer = input.CorrectAnswer
	}

	if err := tc.DB.Save(&question).Error; err != nil {
		return utils.InternalServerError(c, "Failed to edit question")
	}

	return c.JSON(questionPayload(&question, true))
}

func (tc *TeacherController) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("questionId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid questionId")
	}

	res := tc.DB.Delete(&models.Question{}, "id = ?", questionID)
	if res.Error != nil {
		return utils.InternalServerError(c, "Failed to delete question")
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Question not found")
	}

	return c.JSON(fiber.Map{"message": "Question deleted successfully"})
}

// GetLessonQuestions returns the full question set including correct
// answers; this endpoint is teacher-scoped.
func (tc *TeacherController) GetLessonQuestions(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lessonId format")
	}

	var lesson models.Lesson
	if err := tc.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var questions []models.Question
	if err := tc.DB.Where("lesson_id = ?", lessonID).Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch questions")
	}

	payload := make([]fiber.Map, 0, len(questions))
	for i := range questions {
		payload = append(payload, questionPayload(&questions[i], true))
	}
	return c.JSON(payload)
}

// GetResults lists attempts against the caller's own lessons.
func (tc *TeacherController) GetResults(c *fiber.Ctx) error {
	views, err := tc.Results.ForTeacher(middleware.CallerID(c))
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch results")
	}
	if len(views) == 0 {
		return utils.NotFound(c, "No results found")
	}
	return c.JSON(views)
}

func lessonPayload(l *models.Lesson) fiber.Map {
	return fiber.Map{
		"id":             l.ID,
		"title":          l.Title,
		"class_id":       l.ClassID,
		"teacher_id":     l.TeacherID,
		"description":    l.Description,
		"materials":      l.MaterialList(),
		"duration":       l.Duration,
		"date_scheduled": l.DateScheduled,
	}
}

func questionPayload(q *models.Question, withAnswer bool) fiber.Map {
	payload := fiber.Map{
		"id":            q.ID,
		"lesson_id":     q.LessonID,
		"type":          q.Type,
		"question_text": q.QuestionText,
		"options":       q.OptionList(),
	}
	if withAnswer {
		payload["correct_answer"] = q.CorrectAnswer
	}
	return payload
}
