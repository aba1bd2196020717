package workers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared"
)

type Handler struct {
	Store Store
}

type workerRequest struct {
	Code        string          `json:"worker_code"`
	FullName    string          `json:"full_name"`
	Nationality string          `json:"nationality"`
	Position    string          `json:"position"`
	Status      string          `json:"status"`
	Salary      decimal.Decimal `json:"salary"`
	Phone       string          `json:"phone"`
	VisaExpiry  string          `json:"visa_expiry"`
}

// toWorker validates the request and copies it onto w.
func (r *workerRequest) toWorker(w *models.Worker) string {
	r.Code = strings.TrimSpace(r.Code)
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Code == "" || r.FullName == "" {
		return "Worker code and full name are required"
	}
	if r.Salary.IsNegative() {
		return "Salary cannot be negative"
	}
	status := models.WorkerStatus(r.Status)
	if r.Status == "" {
		status = models.WorkerActive
	}
	if !status.Valid() {
		return "Status must be Active or Inactive"
	}

	w.VisaExpiry = nil
	if v := strings.TrimSpace(r.VisaExpiry); v != "" {
		d, err := time.Parse(shared.DateLayout, v)
		if err != nil {
			return "Visa expiry must be a date (YYYY-MM-DD)"
		}
		w.VisaExpiry = &d
	}
	w.Code = r.Code
	w.FullName = r.FullName
	w.Nationality = strings.TrimSpace(r.Nationality)
	w.Position = strings.TrimSpace(r.Position)
	w.Status = status
	w.Salary = r.Salary
	w.Phone = strings.TrimSpace(r.Phone)
	return ""
}

// GetWorkersAPI lists the roster. ?only_active=true hides inactive workers.
func (h *Handler) GetWorkersAPI(c *fiber.Ctx) error {
	workers, err := h.Store.ListWorkers(c.UserContext(), shared.Bool(c, "only_active", false))
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "workers": workers, "count": len(workers)})
}

func (h *Handler) GetWorkerAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "id")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid worker ID")
	}
	w, err := h.Store.GetWorker(c.UserContext(), id)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "worker": w})
}

func (h *Handler) CreateWorkerAPI(c *fiber.Ctx) error {
	var req workerRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	w := &models.Worker{}
	if msg := req.toWorker(w); msg != "" {
		return shared.Fail(c, fiber.StatusBadRequest, msg)
	}
	if err := h.Store.CreateWorker(c.UserContext(), w); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "worker": w})
}

func (h *Handler) UpdateWorkerAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "id")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid worker ID")
	}
	var req workerRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	w := &models.Worker{ID: id}
	if msg := req.toWorker(w); msg != "" {
		return shared.Fail(c, fiber.StatusBadRequest, msg)
	}
	if err := h.Store.UpdateWorker(c.UserContext(), w); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "worker": w})
}

func (h *Handler) DeleteWorkerAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "id")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid worker ID")
	}
	if err := h.Store.DeleteWorker(c.UserContext(), id); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Worker deleted"})
}
