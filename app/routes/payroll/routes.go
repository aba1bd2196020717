package payroll

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
	GetWorker(ctx context.Context, id string) (*models.Worker, error)
	ListAttendance(ctx context.Context, start, end time.Time) ([]models.AttendanceRecord, error)
}

func SetupPayrollRoutes(app *fiber.App, store Store, engine *aggregation.Engine, dataDir string) {
	h := &Handler{Store: store, Engine: engine, DataDir: dataDir}
	allowed := auth.RoleMiddleware(models.RoleAdmin, models.RoleAccountant)

	payroll := app.Group("/payroll")
	payroll.Use(auth.AuthMiddleware, allowed)
	payroll.Get("/", h.PayrollPage)

	api := app.Group("/api/payroll")
	api.Use(auth.AuthMiddleware, allowed)
	api.Get("/", h.GetPayrollAPI)
	api.Get("/slips/:workerId", h.GetSalarySlipAPI)
}

func (h *Handler) PayrollPage(c *fiber.Ctx) error {
	run, err := h.run(c)
	if err != nil {
		return shared.PageFailure(c, err)
	}
	return c.Render("reports/payroll", fiber.Map{
		"Title":       "Payroll - NFM Facility",
		"CurrentPage": "payroll",
		"Year":        run.Year,
		"Month":       run.Month,
		"Rows":        run.Rows,
		"Totals":      run.Totals,
		"user":        c.Locals("user"),
	})
}
