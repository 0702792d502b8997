package checkins

import (
	"strings"
	"time"

	"fitclub-backend/internal/database"
	"fitclub-backend/internal/models"
	"fitclub-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type CreateCheckInRequest struct {
	MemberID    string     `json:"member_id"`
	Location    string     `json:"location"`
	CheckInTime *time.Time `json:"check_in_time"`
}

func CreateCheckInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCheckInRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Location = strings.TrimSpace(body.Location)
		if body.MemberID == "" || body.Location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Member id and location are required")
		}

		var member models.User
		if err := database.DB.First(&member, "id = ? AND role = ?", body.MemberID, models.RoleMember).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}

		checkIn := models.CheckIn{
			MemberID: member.ID,
			Location: body.Location,
		}
		if body.CheckInTime != nil {
			checkIn.CheckInTime = *body.CheckInTime
		}

		if err := database.DB.Create(&checkIn).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return response.Success(c, fiber.StatusCreated, fiber.Map{
			"check_in": checkIn,
		})
	}
}

// ListCheckInsHandler returns a member's visits, newest first. Visits of
// deleted members stay readable.
func ListCheckInsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID := c.Params("id")

		var records []models.CheckIn
		if err := database.DB.Where("member_id = ?", memberID).
			Order("check_in_time DESC, id DESC").
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return response.SuccessList(c, len(records), fiber.Map{
			"check_ins": records,
		})
	}
}
