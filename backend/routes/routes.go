package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/config"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/controllers"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/middleware"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/models"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Admin routes
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", authMiddleware, middleware.RequireRole(models.RoleAdmin))
	admin.Get("/users", adminController.GetUsers)
	admin.Post("/create-teacher", adminController.CreateTeacher)
	admin.Post("/change-role", adminController.ChangeRole)
	admin.Put("/edit-user", adminController.EditUser)
	admin.Get("/results", adminController.GetResults)

	// Teacher routes
	teacherController := controllers.NewTeacherController(db, cfg)
	teacher := app.Group("/api/teacher", authMiddleware, middleware.RequireRole(models.RoleTeacher))
	teacher.Post("/create-class", teacherController.CreateClass)
	teacher.Get("/classes", teacherController.GetClasses)
	teacher.Put("/classes/:classId/edit", teacherController.EditClass)
	teacher.Delete("/classes/:classId/delete", teacherController.DeleteClass)
	teacher.Post("/classes/:classId/create-lesson", teacherController.CreateLesson)
	teacher.Get("/classes/:classId/lessons", teacherController.GetClassLessons)
	teacher.Put("/lessons/:lessonId/edit", teacherController.EditLesson)
	teacher.Delete("/lessons/:lessonId/delete", teacherController.DeleteLesson)
	teacher.Post("/lessons/:lessonId/create-question", teacherController.CreateQuestion)
	teacher.Get("/lessons/:lessonId/questions", teacherController.GetLessonQuestions)
	teacher.Put("/questions/:questionId/edit", teacherController.EditQuestion)
	teacher.Delete("/questions/:questionId/delete", teacherController.DeleteQuestion)
	teacher.Get("/results", teacherController.GetResults)

	// Student routes
	studentController := controllers.NewStudentController(db, cfg)
	student := app.Group("/api/student", authMiddleware, middleware.RequireRole(models.RoleStudent))
	student.Get("/lessons/class/:classId", studentController.GetClassLessons)
	student.Get("/lessons/:lessonId/questions", studentController.GetLessonQuestions)
	student.Post("/lessons/:lessonId/submit-answers", studentController.SubmitAnswers)
	student.Get("/results", studentController.GetResults)
}
