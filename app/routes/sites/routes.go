package sites

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
)

type Store interface {
	ListBuildings(ctx context.Context) ([]models.Building, error)
	CreateBuilding(ctx context.Context, b *models.Building) error
	DeleteBuilding(ctx context.Context, id string) error
	ListWCGroups(ctx context.Context) ([]models.WCGroup, error)
	CreateWCGroup(ctx context.Context, g *models.WCGroup) error
	DeleteWCGroup(ctx context.Context, id string) error
}

func SetupSitesRoutes(app *fiber.App, store Store) {
	h := &Handler{Store: store}
	admin := auth.RoleMiddleware(models.RoleAdmin)

	buildings := app.Group("/api/buildings")
	buildings.Use(auth.AuthMiddleware)
	buildings.Get("/", h.GetBuildingsAPI)
	buildings.Post("/", admin, h.CreateBuildingAPI)
	buildings.Delete("/:id", admin, h.DeleteBuildingAPI)

	groups := app.Group("/api/wc-groups")
	groups.Use(auth.AuthMiddleware)
	groups.Get("/", h.GetWCGroupsAPI)
	groups.Post("/", admin, h.CreateWCGroupAPI)
	groups.Delete("/:id", admin, h.DeleteWCGroupAPI)
}
