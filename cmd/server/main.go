package main

import (
	"strings"

	"fitclub-backend/internal/auth"
	"fitclub-backend/internal/checkins"
	"fitclub-backend/internal/config"
	"fitclub-backend/internal/database"
	"fitclub-backend/internal/logger"
	"fitclub-backend/internal/members"
	"fitclub-backend/internal/memberships"
	"fitclub-backend/internal/models"
	"fitclub-backend/internal/progress"
	"fitclub-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := database.Init(cfg); err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return response.Fail(c, e.Code, e.Message)
			}
			log.Error("unexpected error", zap.Error(err))
			return response.Fail(c, fiber.StatusInternalServerError, "Unexpected server error")
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Front-desk staff and admins only
	staff := protected.Group("")
	staff.Use(auth.RequireRole(models.RoleAdmin, models.RoleStaff))

	// Member directory
	staff.Get("/members", members.ListMembersHandler())
	staff.Post("/members", members.CreateMemberHandler())
	staff.Get("/members/:id", members.GetMemberHandler())
	staff.Put("/members/:id", members.UpdateMemberHandler())
	staff.Delete("/members/:id", members.DeleteMemberHandler())

	// Plan history
	staff.Post("/members/:id/memberships", memberships.CreateMembershipHandler())
	staff.Get("/members/:id/memberships", memberships.ListMembershipsHandler())

	// Check-ins
	staff.Post("/checkins", checkins.CreateCheckInHandler())
	staff.Get("/members/:id/checkins", checkins.ListCheckInsHandler())

	// Body progress
	staff.Post("/members/:id/progress", progress.CreateProgressHandler())
	staff.Get("/members/:id/progress", progress.ListProgressHandler())

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
