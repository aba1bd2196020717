package kpi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
	"nfm-facility/app/routes/shared"
)

type Store interface {
	ListWorkers(ctx context.Context, onlyActive bool) ([]models.Worker, error)
	ListAttendance(ctx context.Context, start, end time.Time) ([]models.AttendanceRecord, error)
	ListWorkOrders(ctx context.Context, start, end time.Time) ([]models.WorkOrder, error)
	ListFleetUsage(ctx context.Context, start, end time.Time) ([]models.FleetUsage, error)
}

func SetupKpiRoutes(app *fiber.App, store Store, engine *aggregation.Engine, dataDir string) {
	h := &Handler{Store: store, Engine: engine, DataDir: dataDir}

	page := app.Group("/kpi")
	page.Use(auth.AuthMiddleware)
	page.Get("/", h.KpiPage)

	api := app.Group("/api/kpi")
	api.Use(auth.AuthMiddleware)
	api.Get("/", h.GetKpiAPI)
}

func (h *Handler) KpiPage(c *fiber.Ctx) error {
	rep, err := h.report(c)
	if err != nil {
		return shared.PageFailure(c, err)
	}
	return c.Render("reports/kpi", fiber.Map{
		"Title":       "Worker KPI - NFM Facility",
		"CurrentPage": "kpi",
		"Report":      rep,
		"user":        c.Locals("user"),
	})
}
