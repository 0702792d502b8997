package auth

import (
	"errors"
	"strings"

	"fitclub-backend/internal/config"
	"fitclub-backend/internal/database"
	"fitclub-backend/internal/models"
	"fitclub-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// publicUser is the projection returned next to a fresh token. The full
// record (still without the password hash) is only served by /auth/me.
func publicUser(u *models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(body.Email)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
		}

		role := models.RoleMember
		if body.Role != "" {
			role = models.UserRole(body.Role)
			if !models.ValidRole(role) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid role")
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Phone:        body.Phone,
			Role:         role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.JWTExpire, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return response.Success(c, fiber.StatusCreated, fiber.Map{
			"token": token,
			"user":  publicUser(&user),
		})
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Please provide email and password")
		}

		// Unknown email and wrong password answer identically.
		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect email or password")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect email or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.JWTExpire, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return response.Success(c, fiber.StatusOK, fiber.Map{
			"token": token,
			"user":  publicUser(&user),
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(CtxUserIDKey).(string)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		// Tokens are not revoked on delete, so the id may no longer resolve.
		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		return response.Success(c, fiber.StatusOK, fiber.Map{
			"user": user,
		})
	}
}
