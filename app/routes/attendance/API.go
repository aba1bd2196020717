package attendance

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/models"
	"nfm-facility/app/reports"
	"nfm-facility/app/routes/shared"
)

const clockLayout = "15:04"

type Handler struct {
	Store   Store
	Engine  *aggregation.Engine
	DataDir string
}

type attendanceRequest struct {
	WorkerID string `json:"worker_id"`
	Date     string `json:"att_date"`
	Status   string `json:"status"`
	InTime   string `json:"in_time"`
	OutTime  string `json:"out_time"`
	Notes    string `json:"notes"`
}

// record validates the request and derives the stored hours.
// Only Present rows carry hours; every other status is saved as 0/0.
func (h *Handler) record(req attendanceRequest) (*models.AttendanceRecord, error) {
	if _, err := uuid.Parse(req.WorkerID); err != nil {
		return nil, errors.New("A valid worker_id is required")
	}
	date, err := time.Parse(shared.DateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, errors.New("att_date must be a date (YYYY-MM-DD)")
	}
	status := models.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("Unknown attendance status %q", req.Status)
	}

	rec := &models.AttendanceRecord{
		WorkerID: req.WorkerID,
		Date:     date,
		Status:   status,
		Notes:    strings.TrimSpace(req.Notes),
	}
	if status != models.Present {
		return rec, nil
	}

	in, err := time.Parse(clockLayout, strings.TrimSpace(req.InTime))
	if err != nil {
		return nil, errors.New("in_time must be HH:MM for a Present worker")
	}
	out, err := time.Parse(clockLayout, strings.TrimSpace(req.OutTime))
	if err != nil {
		return nil, errors.New("out_time must be HH:MM for a Present worker")
	}
	rec.InTime = in.Format(clockLayout)
	rec.OutTime = out.Format(clockLayout)
	rec.HoursWorked, rec.OvertimeHours = h.Engine.ShiftHours(in, out)
	return rec, nil
}

func (h *Handler) SaveAttendanceAPI(c *fiber.Ctx) error {
	var req attendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	rec, err := h.record(req)
	if err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.Store.SaveAttendance(c.UserContext(), rec); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "attendance": rec})
}

// BatchSaveAttendanceAPI saves one day's sheet. The whole batch is validated before anything is written.
func (h *Handler) BatchSaveAttendanceAPI(c *fiber.Ctx) error {
	var req struct {
		Date    string              `json:"att_date"`
		Records []attendanceRequest `json:"records"`
	}
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.Records) == 0 {
		return shared.Fail(c, fiber.StatusBadRequest, "No attendance records provided")
	}

	records := make([]*models.AttendanceRecord, 0, len(req.Records))
	for i, r := range req.Records {
		if r.Date == "" {
			r.Date = req.Date
		}
		rec, err := h.record(r)
		if err != nil {
			return shared.Fail(c, fiber.StatusBadRequest, fmt.Sprintf("record %d: %s", i+1, err.Error()))
		}
		records = append(records, rec)
	}
	for _, rec := range records {
		if err := h.Store.SaveAttendance(c.UserContext(), rec); err != nil {
			return shared.StoreFailure(c, err)
		}
	}
	return c.JSON(fiber.Map{"success": true, "saved": len(records)})
}

func (h *Handler) GetWorkerAttendanceAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "workerId")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid worker ID")
	}
	records, err := h.Store.RecentAttendance(c.UserContext(), id, recentLimit)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "attendance": records})
}

// GetSummaryAPI returns the month's per-worker summary, or a download when ?format= is csv or xlsx.
func (h *Handler) GetSummaryAPI(c *fiber.Ctx) error {
	year, month, rows, err := h.summary(c)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	if f, ok := reports.ParseFormat(c.Query("format")); ok {
		name := reports.FileName("attendance_summary", year, month, f)
		return shared.Download(c, reports.AttendanceSummary(rows), f, name, h.DataDir)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"year":    year,
		"month":   month,
		"rows":    rows,
		"totals":  aggregation.SumLabor(rows),
	})
}

// summary loads the month and runs the engine over it.
func (h *Handler) summary(c *fiber.Ctx) (int, int, []aggregation.LaborRow, error) {
	year, month, start, end, err := shared.Month(c)
	if err != nil {
		return 0, 0, nil, err
	}
	ctx := c.UserContext()
	workers, err := h.Store.ListWorkers(ctx, false)
	if err != nil {
		return 0, 0, nil, err
	}
	attendance, err := h.Store.ListAttendance(ctx, start, end)
	if err != nil {
		return 0, 0, nil, err
	}
	rows, err := h.Engine.ComputeLaborTotals(workers, attendance, start, end, shared.Bool(c, "only_active", true))
	if err != nil {
		return 0, 0, nil, err
	}
	if len(rows) == 0 {
		log.Printf("attendance summary %04d-%02d: no workers on the roster", year, month)
	}
	return year, month, rows, nil
}
