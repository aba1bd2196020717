package inspections

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

type Handler struct {
	Store Store
	Now   func() time.Time
}

type inspectionRequest struct {
	BuildingID        string `json:"building_id"`
	InspectedDate     string `json:"inspected_date"`
	InspectorName     string `json:"inspector_name"`
	CleanlinessRating int    `json:"cleanliness_rating"`
	SafetyRating      int    `json:"safety_rating"`
	MaintenanceRating int    `json:"maintenance_rating"`
	Comments          string `json:"comments"`
}

// toInspection stamps the inspection with the request date and the current time of day.
func (h *Handler) toInspection(req inspectionRequest) (*models.BuildingInspection, error) {
	if _, err := uuid.Parse(req.BuildingID); err != nil {
		return nil, shared.Invalid("building_id is required")
	}
	ratings := []struct {
		name  string
		value int
	}{
		{"Cleanliness", req.CleanlinessRating},
		{"Safety", req.SafetyRating},
		{"Maintenance", req.MaintenanceRating},
	}
	for _, r := range ratings {
		if r.value < 1 || r.value > 5 {
			return nil, shared.Invalid("%s rating must be between 1 and 5", r.name)
		}
	}

	now := h.Now()
	at := now
	if v := strings.TrimSpace(req.InspectedDate); v != "" {
		d, err := time.Parse(shared.DateLayout, v)
		if err != nil {
			return nil, shared.Invalid("inspected_date must be a date (YYYY-MM-DD)")
		}
		at = time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	}
	return &models.BuildingInspection{
		BuildingID:        req.BuildingID,
		InspectedAt:       at,
		InspectorName:     strings.TrimSpace(req.InspectorName),
		CleanlinessRating: req.CleanlinessRating,
		SafetyRating:      req.SafetyRating,
		MaintenanceRating: req.MaintenanceRating,
		Comments:          strings.TrimSpace(req.Comments),
	}, nil
}

// GetInspectionsAPI lists the latest inspections, ?limit= of them (default 100).
func (h *Handler) GetInspectionsAPI(c *fiber.Ctx) error {
	limit := defaultLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return shared.Fail(c, fiber.StatusBadRequest, "limit must be a positive number")
		}
		limit = min(n, maxLimit)
	}
	inspections, err := h.Store.ListInspections(c.UserContext(), limit)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "inspections": inspections, "count": len(inspections)})
}

func (h *Handler) CreateInspectionAPI(c *fiber.Ctx) error {
	var req inspectionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	in, err := h.toInspection(req)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	if err := h.Store.CreateInspection(c.UserContext(), in); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "inspection": in})
}
