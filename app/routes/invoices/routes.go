package invoices

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/events"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
)

const historyLimit = 12

type Store interface {
	ListWorkers(ctx context.Context, onlyActive bool) ([]models.Worker, error)
	ListAttendance(ctx context.Context, start, end time.Time) ([]models.AttendanceRecord, error)
	ListFleetUsage(ctx context.Context, start, end time.Time) ([]models.FleetUsage, error)
	ListInvoices(ctx context.Context, limit int) ([]models.Invoice, error)
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	LatestInvoiceNumber(ctx context.Context, year, month int) (string, error)
}

func SetupInvoiceRoutes(app *fiber.App, store Store, engine *aggregation.Engine, publisher events.Publisher, defaultOverhead decimal.Decimal) {
	h := &Handler{Store: store, Engine: engine, Publisher: publisher, DefaultOverheadPct: defaultOverhead}

	api := app.Group("/api/invoices")
	api.Use(auth.AuthMiddleware, auth.RoleMiddleware(models.RoleAdmin, models.RoleAccountant))
	api.Get("/", h.GetInvoicesAPI)
	api.Get("/preview", h.PreviewInvoiceAPI)
	api.Post("/", h.CreateInvoiceAPI)
}
