package members

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"fitclub-backend/internal/database"
	"fitclub-backend/internal/models"
	"fitclub-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateMemberRequest struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Phone     string     `json:"phone"`
	PlanType  string     `json:"plan_type"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Price     *float64   `json:"price"`
}

type UpdateMemberRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

func ListMembersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		views, err := ResolveMembers(database.DB, c.Query("status"), c.Query("search"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return response.SuccessList(c, len(views), fiber.Map{
			"members": views,
		})
	}
}

func GetMemberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ? AND role = ?", id, models.RoleMember).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}

		membership, err := latestMembership(database.DB, user.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		checkIn, err := lastCheckIn(database.DB, user.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return response.Success(c, fiber.StatusOK, fiber.Map{
			"member":     BuildMemberView(user, membership, checkIn),
			"membership": membership,
		})
	}
}

func CreateMemberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMemberRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(body.Email)

		if body.Name == "" || body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and email are required")
		}
		if body.PlanType != "" && !models.ValidPlanType(body.PlanType) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown plan type")
		}
		if body.Price != nil && *body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Price cannot be negative")
		}

		// No fixed placeholder password: when none is supplied the account
		// gets a random one-time credential that must be reset on first login.
		password := body.Password
		generated := ""
		if password == "" {
			generated = randomPassword()
			password = generated
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Name:                  body.Name,
			Email:                 body.Email,
			PasswordHash:          string(hash),
			Phone:                 body.Phone,
			Role:                  models.RoleMember,
			PasswordResetRequired: generated != "",
		}

		// Identity and initial plan land together or not at all.
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			if body.PlanType != "" {
				now := time.Now()
				membership := models.Membership{
					MemberID:  user.ID,
					PlanType:  body.PlanType,
					Status:    models.StatusActive,
					StartDate: now,
					EndDate:   now,
				}
				if body.StartDate != nil {
					membership.StartDate = *body.StartDate
				}
				if body.EndDate != nil {
					membership.EndDate = *body.EndDate
				}
				if body.Price != nil {
					membership.Price = *body.Price
				}
				if err := tx.Create(&membership).Error; err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data := fiber.Map{"member": user}
		if generated != "" {
			// Returned exactly once; only the hash is stored.
			data["password"] = generated
		}

		return response.Success(c, fiber.StatusCreated, data)
	}
}

func UpdateMemberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ? AND role = ?", id, models.RoleMember).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}

		var body UpdateMemberRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			user.Name = name
		}

		if body.Email != nil {
			email := strings.TrimSpace(*body.Email)
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Email cannot be empty")
			}
			user.Email = email
		}

		if body.Phone != nil {
			user.Phone = strings.TrimSpace(*body.Phone)
		}

		if body.Password != nil {
			if *body.Password == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Password cannot be empty")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
			}
			user.PasswordHash = string(hash)
			user.PasswordResetRequired = false
		}

		if err := database.DB.Save(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return response.Success(c, fiber.StatusOK, fiber.Map{
			"member": user,
		})
	}
}

func DeleteMemberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ? AND role = ?", id, models.RoleMember).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}

		// Only the identity goes away. Membership, check-in and progress rows
		// keep their member_id so billing and visit history survive.
		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func randomPassword() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
