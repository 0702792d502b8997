package progress

import (
	"time"

	"fitclub-backend/internal/database"
	"fitclub-backend/internal/models"
	"fitclub-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type CreateProgressRequest struct {
	Date    *time.Time `json:"date"`
	Weight  *float64   `json:"weight"`
	BodyFat *float64   `json:"body_fat"`
	Muscle  *float64   `json:"muscle"`
	Chest   *float64   `json:"chest"`
	Waist   *float64   `json:"waist"`
	Arms    *float64   `json:"arms"`
	Notes   string     `json:"notes"`
}

func CreateProgressHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID := c.Params("id")

		var member models.User
		if err := database.DB.First(&member, "id = ? AND role = ?", memberID, models.RoleMember).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}

		var body CreateProgressRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		for _, metric := range []*float64{body.Weight, body.Muscle, body.Chest, body.Waist, body.Arms} {
			if metric != nil && *metric < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Measurements cannot be negative")
			}
		}
		if body.BodyFat != nil && (*body.BodyFat < 0 || *body.BodyFat > 100) {
			return fiber.NewError(fiber.StatusBadRequest, "Body fat must be between 0 and 100")
		}

		record := models.Progress{
			MemberID: member.ID,
			Weight:   body.Weight,
			BodyFat:  body.BodyFat,
			Muscle:   body.Muscle,
			Chest:    body.Chest,
			Waist:    body.Waist,
			Arms:     body.Arms,
			Notes:    body.Notes,
		}
		if body.Date != nil {
			record.Date = *body.Date
		}

		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return response.Success(c, fiber.StatusCreated, fiber.Map{
			"progress": record,
		})
	}
}

func ListProgressHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID := c.Params("id")

		var records []models.Progress
		if err := database.DB.Where("member_id = ?", memberID).
			Order("date DESC, id DESC").
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return response.SuccessList(c, len(records), fiber.Map{
			"progress": records,
		})
	}
}
