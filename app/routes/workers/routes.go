package workers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
)

// Store is the slice of the database the worker endpoints need.
type Store interface {
	ListWorkers(ctx context.Context, onlyActive bool) ([]models.Worker, error)
	GetWorker(ctx context.Context, id string) (*models.Worker, error)
	CreateWorker(ctx context.Context, w *models.Worker) error
	UpdateWorker(ctx context.Context, w *models.Worker) error
	DeleteWorker(ctx context.Context, id string) error
}

func SetupWorkersRoutes(app *fiber.App, store Store) {
	h := &Handler{Store: store}

	api := app.Group("/api/workers")
	api.Use(auth.AuthMiddleware)
	api.Get("/", h.GetWorkersAPI)
	api.Get("/:id", h.GetWorkerAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleSupervisor), h.CreateWorkerAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin, models.RoleSupervisor), h.UpdateWorkerAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), h.DeleteWorkerAPI)
}
