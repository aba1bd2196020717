package dailyreports

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/database"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared"
)

const listLimit = 200

type Handler struct {
	Store Store
}

type reportRequest struct {
	ReportDate  string  `json:"report_date"`
	Type        string  `json:"report_type"`
	Status      string  `json:"status"`
	WCGroupID   *string `json:"wc_group_id"`
	BuildingID  *string `json:"building_id"`
	WorkOrderID *string `json:"work_order_id"`
	Summary     string  `json:"summary"`
	Notes       string  `json:"notes"`
}

func (req reportRequest) toReport() (*models.DailyReport, error) {
	r := &models.DailyReport{
		ReportDate: shared.Today(),
		Type:       models.DailyReportType(strings.TrimSpace(req.Type)),
		Status:     models.DailyReportStatus(strings.TrimSpace(req.Status)),
		Summary:    strings.TrimSpace(req.Summary),
		Notes:      strings.TrimSpace(req.Notes),
	}
	if r.Summary == "" {
		return nil, shared.Invalid("Summary is required.")
	}
	if r.Type == "" {
		r.Type = models.ReportWC
	}
	if !r.Type.Valid() {
		return nil, shared.Invalid("Report type must be WC, Building, General, Fleet or Other")
	}
	if r.Status == "" {
		r.Status = models.ReportNormal
	}
	if !r.Status.Valid() {
		return nil, shared.Invalid("Status must be Normal, Issue or Critical")
	}
	if v := strings.TrimSpace(req.ReportDate); v != "" {
		d, err := time.Parse(shared.DateLayout, v)
		if err != nil {
			return nil, shared.Invalid("report_date must be a date (YYYY-MM-DD)")
		}
		r.ReportDate = d
	}

	var err error
	if r.WCGroupID, err = shared.OptionalID(req.WCGroupID); err != nil {
		return nil, err
	}
	if r.BuildingID, err = shared.OptionalID(req.BuildingID); err != nil {
		return nil, err
	}
	if r.WorkOrderID, err = shared.OptionalID(req.WorkOrderID); err != nil {
		return nil, err
	}
	return r, nil
}

// GetDailyReportsAPI lists recent reports. ?type=, ?status= and ?with_wo=true narrow the list.
func (h *Handler) GetDailyReportsAPI(c *fiber.Ctx) error {
	f := database.DailyReportFilter{
		Type:          models.DailyReportType(c.Query("type")),
		Status:        models.DailyReportStatus(c.Query("status")),
		WithWorkOrder: shared.Bool(c, "with_wo", false),
		Limit:         listLimit,
	}
	if f.Type != "" && !f.Type.Valid() {
		return shared.Fail(c, fiber.StatusBadRequest, "Unknown report type")
	}
	if f.Status != "" && !f.Status.Valid() {
		return shared.Fail(c, fiber.StatusBadRequest, "Unknown report status")
	}
	reports, err := h.Store.ListDailyReports(c.UserContext(), f)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "reports": reports, "count": len(reports)})
}

func (h *Handler) CreateDailyReportAPI(c *fiber.Ctx) error {
	var req reportRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	r, err := req.toReport()
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	if err := h.Store.CreateDailyReport(c.UserContext(), r); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "report": r})
}

func (h *Handler) DeleteDailyReportAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "id")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid report ID")
	}
	if err := h.Store.DeleteDailyReport(c.UserContext(), id); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Daily report deleted"})
}
