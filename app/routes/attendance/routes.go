package attendance

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
	"nfm-facility/app/routes/shared"
)

const recentLimit = 30

type Store interface {
	ListWorkers(ctx context.Context, onlyActive bool) ([]models.Worker, error)
	ListAttendance(ctx context.Context, start, end time.Time) ([]models.AttendanceRecord, error)
	RecentAttendance(ctx context.Context, workerID string, limit int) ([]models.AttendanceRecord, error)
	SaveAttendance(ctx context.Context, rec *models.AttendanceRecord) error
}

func SetupAttendanceRoutes(app *fiber.App, store Store, engine *aggregation.Engine, dataDir string) {
	h := &Handler{Store: store, Engine: engine, DataDir: dataDir}

	attendance := app.Group("/attendance")
	attendance.Use(auth.AuthMiddleware)
	attendance.Get("/", h.AttendancePage)

	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)
	api.Get("/summary", h.GetSummaryAPI)
	api.Get("/worker/:workerId", h.GetWorkerAttendanceAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleSupervisor), h.SaveAttendanceAPI)
	api.Post("/batch", auth.RoleMiddleware(models.RoleAdmin, models.RoleSupervisor), h.BatchSaveAttendanceAPI)
}

// AttendancePage renders the month summary as an on-screen table.
func (h *Handler) AttendancePage(c *fiber.Ctx) error {
	year, month, rows, err := h.summary(c)
	if err != nil {
		return shared.PageFailure(c, err)
	}
	return c.Render("reports/attendance", fiber.Map{
		"Title":       "Attendance - NFM Facility",
		"CurrentPage": "attendance",
		"Year":        year,
		"Month":       month,
		"Rows":        rows,
		"Totals":      aggregation.SumLabor(rows),
		"user":        c.Locals("user"),
	})
}
