package payroll

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/models"
	"nfm-facility/app/reports"
	"nfm-facility/app/routes/shared"
)

type Handler struct {
	Store   Store
	Engine  *aggregation.Engine
	DataDir string
}

// Run is one month of computed payroll.
type Run struct {
	Year   int                     `json:"year"`
	Month  int                     `json:"month"`
	Rows   []aggregation.LaborRow  `json:"rows"`
	Totals aggregation.LaborTotals `json:"totals"`
}

func (h *Handler) run(c *fiber.Ctx) (*Run, error) {
	year, month, start, end, err := shared.Month(c)
	if err != nil {
		return nil, err
	}
	ctx := c.UserContext()
	workers, err := h.Store.ListWorkers(ctx, false)
	if err != nil {
		return nil, err
	}
	attendance, err := h.Store.ListAttendance(ctx, start, end)
	if err != nil {
		return nil, err
	}
	rows, err := h.Engine.ComputeLaborTotals(workers, attendance, start, end, shared.Bool(c, "only_active", true))
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if !r.Salary.IsPositive() {
			log.Printf("payroll %04d-%02d: %s has no salary set, paying 0", year, month, r.WorkerCode)
		}
	}
	return &Run{Year: year, Month: month, Rows: rows, Totals: aggregation.SumLabor(rows)}, nil
}

// GetPayrollAPI returns the month's payroll, or a download when ?format= is csv or xlsx.
func (h *Handler) GetPayrollAPI(c *fiber.Ctx) error {
	run, err := h.run(c)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	if f, ok := reports.ParseFormat(c.Query("format")); ok {
		name := reports.FileName("payroll", run.Year, run.Month, f)
		return shared.Download(c, reports.Payroll(run.Rows, run.Totals), f, name, h.DataDir)
	}
	return c.JSON(fiber.Map{"success": true, "payroll": run})
}

// GetSalarySlipAPI returns one worker's pay for the month with their personal details.
// Inactive workers still get a slip for months they worked.
func (h *Handler) GetSalarySlipAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "workerId")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid worker ID")
	}
	year, month, start, end, err := shared.Month(c)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	ctx := c.UserContext()
	worker, err := h.Store.GetWorker(ctx, id)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	attendance, err := h.Store.ListAttendance(ctx, start, end)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	rows, err := h.Engine.ComputeLaborTotals([]models.Worker{*worker}, attendance, start, end, false)
	if err != nil {
		return shared.StoreFailure(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"slip": fiber.Map{
			"year":        year,
			"month":       month,
			"period":      start.Format("January 2006"),
			"worker_code": worker.Code,
			"full_name":   worker.FullName,
			"position":    worker.Position,
			"nationality": worker.Nationality,
			"pay":         rows[0],
		},
	})
}
