package workorders

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/billing"
	"nfm-facility/app/database"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared"
	"nfm-facility/app/sla"
)

// numberAttempts bounds retries when two orders race for the same number.
const numberAttempts = 3

type Handler struct {
	Store Store
	Now   func() time.Time
}

type createRequest struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Priority         string  `json:"priority"`
	Category         string  `json:"category"`
	BuildingID       *string `json:"building_id"`
	WCGroupID        *string `json:"wc_group_id"`
	AssignedWorkerID *string `json:"assigned_worker_id"`
	RequestedAt      string  `json:"requested_at"`
	SLAHours         int     `json:"sla_hours"`
	TargetDate       string  `json:"target_date"`
}

func (h *Handler) toWorkOrder(req createRequest) (*models.WorkOrder, error) {
	wo := &models.WorkOrder{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      models.WorkOrderOpen,
		Priority:    models.WorkOrderPriority(req.Priority),
		Category:    strings.TrimSpace(req.Category),
		SLAHours:    req.SLAHours,
		RequestedAt: h.Now(),
	}
	if wo.Title == "" {
		return nil, shared.Invalid("Title is required")
	}
	if wo.Priority == "" {
		wo.Priority = models.PriorityMedium
	}
	if wo.SLAHours < 0 {
		return nil, shared.Invalid("SLA hours cannot be negative")
	}

	var err error
	if wo.BuildingID, err = shared.OptionalID(req.BuildingID); err != nil {
		return nil, err
	}
	if wo.WCGroupID, err = shared.OptionalID(req.WCGroupID); err != nil {
		return nil, err
	}
	if wo.AssignedWorkerID, err = shared.OptionalID(req.AssignedWorkerID); err != nil {
		return nil, err
	}
	switch {
	case wo.BuildingID != nil:
		wo.LocationType = "building"
	case wo.WCGroupID != nil:
		wo.LocationType = "wc_group"
	}

	if v := strings.TrimSpace(req.RequestedAt); v != "" {
		if wo.RequestedAt, err = time.ParseInLocation(time.RFC3339, v, shared.Location); err != nil {
			return nil, shared.Invalid("requested_at must be an RFC 3339 timestamp")
		}
	}
	if v := strings.TrimSpace(req.TargetDate); v != "" {
		d, err := time.Parse(shared.DateLayout, v)
		if err != nil {
			return nil, shared.Invalid("target_date must be a date (YYYY-MM-DD)")
		}
		wo.TargetDate = &d
	}
	return wo, nil
}

// GetWorkOrdersAPI lists orders requested within ?from=&to=.
func (h *Handler) GetWorkOrdersAPI(c *fiber.Ctx) error {
	start, end, err := shared.Range(c)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	orders, err := h.Store.ListWorkOrders(c.UserContext(), start, end)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	if status := c.Query("status"); status != "" {
		filtered := []models.WorkOrder{}
		for _, wo := range orders {
			if string(wo.Status) == status {
				filtered = append(filtered, wo)
			}
		}
		orders = filtered
	}
	return c.JSON(fiber.Map{"success": true, "work_orders": orders, "count": len(orders)})
}

// CreateWorkOrderAPI opens an order under the next NPS-WO number.
func (h *Handler) CreateWorkOrderAPI(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	wo, err := h.toWorkOrder(req)
	if err != nil {
		return shared.StoreFailure(c, err)
	}

	ctx := c.UserContext()
	for attempt := 1; ; attempt++ {
		last, err := h.Store.LatestWorkOrderNumber(ctx)
		if err != nil {
			return shared.StoreFailure(c, err)
		}
		wo.Number = billing.NextWorkOrderNumber(last)
		err = h.Store.CreateWorkOrder(ctx, wo)
		if err == nil {
			break
		}
		if !errors.Is(err, database.ErrDuplicate) || attempt == numberAttempts {
			return shared.StoreFailure(c, err)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "work_order": wo})
}

// UpdateStatusAPI moves an order through its lifecycle. Closing stamps closed_at.
func (h *Handler) UpdateStatusAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "id")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid work order ID")
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	status := models.WorkOrderStatus(req.Status)
	if !status.Valid() {
		return shared.Fail(c, fiber.StatusBadRequest, "Status must be Open, In Progress, Completed or Closed")
	}
	if err := h.Store.UpdateWorkOrderStatus(c.UserContext(), id, status, h.Now()); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "status": status})
}

// GetSLAAPI evaluates orders requested within ?from=&to= against their targets as of now.
func (h *Handler) GetSLAAPI(c *fiber.Ctx) error {
	start, end, err := shared.Range(c)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	orders, err := h.Store.ListWorkOrders(c.UserContext(), start, end)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	items := sla.Evaluate(orders, h.Now())
	return c.JSON(fiber.Map{"success": true, "items": items, "summary": sla.Summarize(items)})
}
