package memberships

import (
	"time"

	"fitclub-backend/internal/database"
	"fitclub-backend/internal/models"
	"fitclub-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type CreateMembershipRequest struct {
	PlanType  string     `json:"plan_type"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Price     float64    `json:"price"`
}

// CreateMembershipHandler appends a plan record to a member's history. Plan
// changes never rewrite earlier rows; freezing or cancelling is a new record.
func CreateMembershipHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID := c.Params("id")

		var member models.User
		if err := database.DB.First(&member, "id = ? AND role = ?", memberID, models.RoleMember).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}

		var body CreateMembershipRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if !models.ValidPlanType(body.PlanType) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown plan type")
		}

		status := models.StatusActive
		if body.Status != "" {
			status = models.MembershipStatus(body.Status)
			if !models.ValidMembershipStatus(status) {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown membership status")
			}
		}

		if body.StartDate == nil || body.EndDate == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Start and end dates are required")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Price cannot be negative")
		}

		membership := models.Membership{
			MemberID:  member.ID,
			PlanType:  body.PlanType,
			Status:    status,
			StartDate: *body.StartDate,
			EndDate:   *body.EndDate,
			Price:     body.Price,
		}

		if err := database.DB.Create(&membership).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return response.Success(c, fiber.StatusCreated, fiber.Map{
			"membership": membership,
		})
	}
}

// ListMembershipsHandler returns the full plan history, newest first. No
// member-existence check: history of deleted members stays readable.
func ListMembershipsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID := c.Params("id")

		var records []models.Membership
		if err := database.DB.Where("member_id = ?", memberID).
			Order("created_at DESC, id DESC").
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return response.SuccessList(c, len(records), fiber.Map{
			"memberships": records,
		})
	}
}
