package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/config"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/models"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/services"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/utils"
)

type AdminController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Results *services.ResultsService
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg, Results: services.NewResultsService(db)}
}

func (ac *AdminController) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := ac.DB.Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Error fetching users")
	}
	return c.JSON(users)
}

func (ac *AdminController) CreateTeacher(c *fiber.Ctx) error {
	type TeacherInput struct {
		Name     string `json:"name" validate:"required,min=3"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	var input TeacherInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.BadRequest(c, "User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	teacher := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleTeacher,
	}
	if err := ac.DB.Create(&teacher).Error; err != nil {
		return utils.InternalServerError(c, "Could not create teacher account")
	}

	return c.JSON(fiber.Map{"message": "Teacher account created successfully"})
}

func (ac *AdminController) ChangeRole(c *fiber.Ctx) error {
	type RoleInput struct {
		UserID  string `json:"user_id" validate:"required"`
		NewRole string `json:"new_role" validate:"required"`
	}

	var input RoleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return utils.BadRequest(c, "Invalid userId format")
	}
	newRole, err := models.ParseRole(input.NewRole)
	if err != nil {
		return utils.BadRequest(c, "Invalid role")
	}

	var user models.User
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	user.Role = newRole
	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Error updating user role")
	}

	return c.JSON(fiber.Map{"message": "User role updated successfully"})
}

func (ac *AdminController) EditUser(c *fiber.Ctx) error {
	type EditInput struct {
		UserID string `json:"user_id" validate:"required"`
		Name   string `json:"name" validate:"required"`
		Email  string `json:"email" validate:"required,email"`
	}

	var input EditInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return utils.BadRequest(c, "Invalid userId format")
	}

	var user models.User
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	user.Name = input.Name
	user.Email = input.Email
	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Error updating user information")
	}

	return c.JSON(fiber.Map{"message": "User information updated successfully"})
}

// GetResults lists every attempt in the system, enriched with student names
// and lesson titles.
func (ac *AdminController) GetResults(c *fiber.Ctx) error {
	views, err := ac.Results.All()
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch results")
	}
	if len(views) == 0 {
		return utils.NotFound(c, "No results found")
	}
	return c.JSON(views)
}
