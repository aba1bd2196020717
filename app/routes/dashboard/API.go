package dashboard

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared"
)

type Handler struct {
	Store Store
	Now   func() time.Time
}

// GetDashboard handles dashboard page
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	stats, err := h.Store.DashboardStats(c.UserContext(), h.Now())
	if err != nil {
		// The page still renders; the counters show as unavailable.
		log.Printf("dashboard stats: %v", err)
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - NFM Facility",
		"CurrentPage": "dashboard",
		"FirstName":   user.FirstName,
		"LastName":    user.LastName,
		"Email":       user.Email,
		"user":        user,
		"Stats":       stats,
	})
}

// GetDashboardStatsAPI returns dashboard statistics as JSON
func (h *Handler) GetDashboardStatsAPI(c *fiber.Ctx) error {
	stats, err := h.Store.DashboardStats(c.UserContext(), h.Now())
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}
