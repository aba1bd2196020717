package fleet

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
)

type Store interface {
	ListVehicles(ctx context.Context) ([]models.FleetVehicle, error)
	CreateVehicle(ctx context.Context, v *models.FleetVehicle) error
	UpdateVehicle(ctx context.Context, v *models.FleetVehicle) error
	DeleteVehicle(ctx context.Context, id string) error
	ListFleetUsage(ctx context.Context, start, end time.Time) ([]models.FleetUsage, error)
	CreateFleetUsage(ctx context.Context, u *models.FleetUsage) error
}

func SetupFleetRoutes(app *fiber.App, store Store) {
	h := &Handler{Store: store}
	manage := auth.RoleMiddleware(models.RoleAdmin, models.RoleSupervisor)

	vehicles := app.Group("/api/fleet/vehicles")
	vehicles.Use(auth.AuthMiddleware)
	vehicles.Get("/", h.GetVehiclesAPI)
	vehicles.Post("/", manage, h.CreateVehicleAPI)
	vehicles.Put("/:id", manage, h.UpdateVehicleAPI)
	vehicles.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), h.DeleteVehicleAPI)

	timesheet := app.Group("/api/fleet/timesheet")
	timesheet.Use(auth.AuthMiddleware)
	timesheet.Get("/", h.GetTimesheetAPI)
	timesheet.Post("/", manage, h.CreateTimesheetAPI)
}
