package sites

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared"
)

type Handler struct {
	Store Store
}

type siteRequest struct {
	Name     string `json:"name"`
	Zone     string `json:"zone"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

func (h *Handler) GetBuildingsAPI(c *fiber.Ctx) error {
	buildings, err := h.Store.ListBuildings(c.UserContext())
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "buildings": buildings})
}

func (h *Handler) CreateBuildingAPI(c *fiber.Ctx) error {
	var req siteRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	b := &models.Building{
		Name:  strings.TrimSpace(req.Name),
		Zone:  strings.TrimSpace(req.Zone),
		Notes: strings.TrimSpace(req.Notes),
	}
	if b.Name == "" {
		return shared.Fail(c, fiber.StatusBadRequest, "Building name is required")
	}
	if err := h.Store.CreateBuilding(c.UserContext(), b); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "building": b})
}

func (h *Handler) DeleteBuildingAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "id")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid building ID")
	}
	if err := h.Store.DeleteBuilding(c.UserContext(), id); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Building deleted"})
}

func (h *Handler) GetWCGroupsAPI(c *fiber.Ctx) error {
	groups, err := h.Store.ListWCGroups(c.UserContext())
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "wc_groups": groups})
}

func (h *Handler) CreateWCGroupAPI(c *fiber.Ctx) error {
	var req siteRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	g := &models.WCGroup{
		Name:     strings.TrimSpace(req.Name),
		Location: strings.TrimSpace(req.Location),
		Notes:    strings.TrimSpace(req.Notes),
	}
	if g.Name == "" {
		return shared.Fail(c, fiber.StatusBadRequest, "WC group name is required")
	}
	if err := h.Store.CreateWCGroup(c.UserContext(), g); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "wc_group": g})
}

func (h *Handler) DeleteWCGroupAPI(c *fiber.Ctx) error {
	id, ok := shared.ID(c, "id")
	if !ok {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid WC group ID")
	}
	if err := h.Store.DeleteWCGroup(c.UserContext(), id); err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "WC group deleted"})
}
