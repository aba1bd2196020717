package workorders

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
	"nfm-facility/app/routes/shared"
)

type Store interface {
	ListWorkOrders(ctx context.Context, start, end time.Time) ([]models.WorkOrder, error)
	CreateWorkOrder(ctx context.Context, wo *models.WorkOrder) error
	UpdateWorkOrderStatus(ctx context.Context, id string, status models.WorkOrderStatus, at time.Time) error
	LatestWorkOrderNumber(ctx context.Context) (string, error)
}

func SetupWorkOrderRoutes(app *fiber.App, store Store) {
	h := &Handler{Store: store, Now: shared.Now}

	api := app.Group("/api/workorders")
	api.Use(auth.AuthMiddleware)
	api.Get("/", h.GetWorkOrdersAPI)
	api.Post("/", h.CreateWorkOrderAPI)
	api.Patch("/:id/status", h.UpdateStatusAPI)

	sla := app.Group("/api/sla")
	sla.Use(auth.AuthMiddleware)
	sla.Get("/", h.GetSLAAPI)
}
