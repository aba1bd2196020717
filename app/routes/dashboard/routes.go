package dashboard

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
	"nfm-facility/app/routes/shared"
)

type Store interface {
	DashboardStats(ctx context.Context, today time.Time) (*models.DashboardStats, error)
}

func SetupDashboardRoutes(app *fiber.App, store Store) {
	h := &Handler{Store: store, Now: shared.Now}

	app.Get("/dashboard", auth.AuthMiddleware, h.GetDashboard)

	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Get("/stats", h.GetDashboardStatsAPI)
}
