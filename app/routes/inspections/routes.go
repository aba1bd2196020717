package inspections

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
	"nfm-facility/app/routes/shared"
)

type Store interface {
	ListInspections(ctx context.Context, limit int) ([]models.BuildingInspection, error)
	CreateInspection(ctx context.Context, in *models.BuildingInspection) error
}

func SetupInspectionRoutes(app *fiber.App, store Store) {
	h := &Handler{Store: store, Now: shared.Now}

	api := app.Group("/api/inspections")
	api.Use(auth.AuthMiddleware)
	api.Get("/", h.GetInspectionsAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleSupervisor), h.CreateInspectionAPI)
}
