package dailyreports

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/database"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
)

type Store interface {
	ListDailyReports(ctx context.Context, f database.DailyReportFilter) ([]models.DailyReport, error)
	CreateDailyReport(ctx context.Context, r *models.DailyReport) error
	DeleteDailyReport(ctx context.Context, id string) error
}

func SetupDailyReportRoutes(app *fiber.App, store Store) {
	h := &Handler{Store: store}

	api := app.Group("/api/daily-reports")
	api.Use(auth.AuthMiddleware)
	api.Get("/", h.GetDailyReportsAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleSupervisor), h.CreateDailyReportAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), h.DeleteDailyReportAPI)
}
