package monthlyreport

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
	"nfm-facility/app/routes/shared"
)

type Store interface {
	ListAttendance(ctx context.Context, start, end time.Time) ([]models.AttendanceRecord, error)
	ListWorkOrders(ctx context.Context, start, end time.Time) ([]models.WorkOrder, error)
	ListFleetUsage(ctx context.Context, start, end time.Time) ([]models.FleetUsage, error)
}

func SetupMonthlyReportRoutes(app *fiber.App, store Store, dataDir string) {
	h := &Handler{Store: store, DataDir: dataDir}

	page := app.Group("/monthly-report")
	page.Use(auth.AuthMiddleware)
	page.Get("/", h.MonthlyReportPage)

	api := app.Group("/api/monthly-report")
	api.Use(auth.AuthMiddleware)
	api.Get("/", h.GetMonthlyReportAPI)
}

func (h *Handler) MonthlyReportPage(c *fiber.Ctx) error {
	rep, err := h.load(c)
	if err != nil {
		return shared.PageFailure(c, err)
	}
	return c.Render("reports/monthly", fiber.Map{
		"Title":       "Monthly FM Report - NFM Facility",
		"CurrentPage": "monthly-report",
		"Report":      rep,
		"user":        c.Locals("user"),
	})
}
