package fleet

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared"
)

// maxShiftHours caps one timesheet line at a full day.
const maxShiftHours = 24

type Handler struct {
	Store Store
}

type vehicleRequest struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	PlateNo    string          `json:"plate_no"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	Status     string          `json:"status"`
}

func (r vehicleRequest) toVehicle(v *models.FleetVehicle) error {
	v.Name = strings.TrimSpace(r.Name)
	if v.Name == "" {
		return shared.Invalid("Vehicle name is required")
	}
	if r.HourlyRate.IsNegative() || r.DailyRate.IsNegative() {
		return shared.Invalid("Rates cannot be negative")
	}
	v.Category = strings.TrimSpace(r.Category)
	v.PlateNo = strings.TrimSpace(r.PlateNo)
	v.HourlyRate = r.HourlyRate
	v.DailyRate = r.DailyRate
	v.Status = models.VehicleStatus(r.Status)
	if v.Status == "" {
		v.Status = models.VehicleAvailable
	}
	return nil
}

func (h *Handler) GetVehiclesAPI(c *fiber.Ctx) error {
	vehicles, err := h.Store.ListVehicles(c.UserContext())
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "vehicles": vehicles})
}

func (h *Handler) CreateVehicleAPI(c *fiber.Ctx) error {
	var req vehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	v := &models.FleetVehicle{}
	if err := req.toVehicle(v); err != nil {
		return shared.StoreFailure(c, err)
	}
	if err := h.Store.CreateVehicle(c.UserContext(), v); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "vehicle": v})
}

func (h *Handler) UpdateVehicleAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "id")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid vehicle ID")
	}
	var req vehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	v := &models.FleetVehicle{ID: id}
	if err := req.toVehicle(v); err != nil {
		return shared.StoreFailure(c, err)
	}
	if err := h.Store.UpdateVehicle(c.UserContext(), v); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "vehicle": v})
}

func (h *Handler) DeleteVehicleAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "id")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid vehicle ID")
	}
	if err := h.Store.DeleteVehicle(c.UserContext(), id); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Vehicle deleted"})
}

// GetTimesheetAPI lists usage within ?from=&to= with each line's cost and the period total.
func (h *Handler) GetTimesheetAPI(c *fiber.Ctx) error {
	start, end, err := shared.Range(c)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	usage, err := h.Store.ListFleetUsage(c.UserContext(), start, end)
	if err != nil {
		return shared.StoreFailure(c, err)
	}

	type line struct {
		models.FleetUsage
		Cost decimal.Decimal `json:"cost"`
	}
	lines := make([]line, 0, len(usage))
	total := decimal.Zero
	var hours float64
	for _, u := range usage {
		cost := u.Cost().Round(2)
		lines = append(lines, line{FleetUsage: u, Cost: cost})
		total = total.Add(cost)
		hours += u.HoursUsed
	}
	return c.JSON(fiber.Map{"success": true, "timesheet": lines, "total_hours": hours, "total_cost": total})
}

func (h *Handler) CreateTimesheetAPI(c *fiber.Ctx) error {
	var req struct {
		VehicleID string  `json:"vehicle_id"`
		WorkerID  *string `json:"worker_id"`
		UsedDate  string  `json:"used_date"`
		HoursUsed float64 `json:"hours_used"`
		Notes     string  `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if _, err := uuid.Parse(req.VehicleID); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "A valid vehicle_id is required")
	}
	workerID, err := shared.OptionalID(req.WorkerID)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	date, err := time.Parse(shared.DateLayout, strings.TrimSpace(req.UsedDate))
	if err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "used_date must be a date (YYYY-MM-DD)")
	}
	if req.HoursUsed < 0 || req.HoursUsed > maxShiftHours {
		return shared.Fail(c, fiber.StatusBadRequest, "hours_used must be between 0 and 24")
	}

	u := &models.FleetUsage{
		VehicleID: req.VehicleID,
		WorkerID:  workerID,
		UsedDate:  date,
		HoursUsed: req.HoursUsed,
		Notes:     strings.TrimSpace(req.Notes),
	}
	if err := h.Store.CreateFleetUsage(c.UserContext(), u); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "entry": u})
}
