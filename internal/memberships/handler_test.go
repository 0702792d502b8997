package memberships

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitclub-backend/internal/database"
	"fitclub-backend/internal/models"
	"fitclub-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return response.Fail(c, e.Code, e.Message)
			}
			return response.Fail(c, fiber.StatusInternalServerError, "Unexpected server error")
		},
	})

	api := app.Group("/api")
	api.Post("/members/:id/memberships", CreateMembershipHandler())
	api.Get("/members/:id/memberships", ListMembershipsHandler())

	return app
}

func newMember(t *testing.T, email string) models.User {
	t.Helper()

	user := models.User{Name: "Alice", Email: email, PasswordHash: "irrelevant", Role: models.RoleMember}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestCreateMembership_AppendsRecord(t *testing.T) {
	app := setupApp(t)
	member := newMember(t, "alice@example.com")

	t0 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	resp, envelope := doRequest(t, app, http.MethodPost, "/api/members/"+member.ID+"/memberships", fiber.Map{
		"plan_type":  "Quarterly Premium",
		"start_date": t0,
		"end_date":   t0.AddDate(0, 3, 0),
		"price":      120,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", envelope["status"])

	record := envelope["data"].(map[string]any)["membership"].(map[string]any)
	assert.Equal(t, "Quarterly Premium", record["plan_type"])
	assert.Equal(t, "active", record["status"])

	// Appending again leaves the first record untouched.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/members/"+member.ID+"/memberships", fiber.Map{
		"plan_type":  "Quarterly Premium",
		"status":     "frozen",
		"start_date": t0.AddDate(0, 3, 0),
		"end_date":   t0.AddDate(0, 6, 0),
		"price":      120,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Membership{}).Where("member_id = ?", member.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCreateMembership_Validation(t *testing.T) {
	app := setupApp(t)
	member := newMember(t, "alice@example.com")
	t0 := time.Now()

	cases := []struct {
		name    string
		body    fiber.Map
		message string
	}{
		{"unknown plan", fiber.Map{"plan_type": "Lifetime Gold", "start_date": t0, "end_date": t0}, "Unknown plan type"},
		{"unknown status", fiber.Map{"plan_type": "Monthly Basic", "status": "paused", "start_date": t0, "end_date": t0}, "Unknown membership status"},
		{"missing dates", fiber.Map{"plan_type": "Monthly Basic"}, "Start and end dates are required"},
		{"negative price", fiber.Map{"plan_type": "Monthly Basic", "start_date": t0, "end_date": t0, "price": -1}, "Price cannot be negative"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, envelope := doRequest(t, app, http.MethodPost, "/api/members/"+member.ID+"/memberships", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.message, envelope["message"])
		})
	}
}

func TestCreateMembership_UnknownMember(t *testing.T) {
	app := setupApp(t)
	t0 := time.Now()

	resp, _ := doRequest(t, app, http.MethodPost, "/api/members/nope/memberships", fiber.Map{
		"plan_type": "Monthly Basic", "start_date": t0, "end_date": t0,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListMemberships_NewestFirst(t *testing.T) {
	app := setupApp(t)
	member := newMember(t, "alice@example.com")

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := models.Membership{
		MemberID: member.ID, PlanType: "Monthly Basic", Status: models.StatusActive,
		StartDate: t0, EndDate: t0.AddDate(0, 1, 0), CreatedAt: t0,
	}
	newer := models.Membership{
		MemberID: member.ID, PlanType: "Monthly Premium", Status: models.StatusActive,
		StartDate: t0.AddDate(0, 1, 0), EndDate: t0.AddDate(0, 2, 0), CreatedAt: t0.AddDate(0, 1, 0),
	}
	require.NoError(t, database.DB.Create(&older).Error)
	require.NoError(t, database.DB.Create(&newer).Error)

	resp, envelope := doRequest(t, app, http.MethodGet, "/api/members/"+member.ID+"/memberships", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), envelope["results"])

	records := envelope["data"].(map[string]any)["memberships"].([]any)
	first := records[0].(map[string]any)
	assert.Equal(t, newer.ID, first["id"])
}

func TestListMemberships_SurvivesMemberDeletion(t *testing.T) {
	app := setupApp(t)
	member := newMember(t, "alice@example.com")

	t0 := time.Now()
	require.NoError(t, database.DB.Create(&models.Membership{
		MemberID: member.ID, PlanType: "Monthly Basic", Status: models.StatusActive,
		StartDate: t0, EndDate: t0.AddDate(0, 1, 0),
	}).Error)
	require.NoError(t, database.DB.Delete(&models.User{}, "id = ?", member.ID).Error)

	resp, envelope := doRequest(t, app, http.MethodGet, "/api/members/"+member.ID+"/memberships", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), envelope["results"])
}
