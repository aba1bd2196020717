package invoices

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/billing"
	"nfm-facility/app/database"
	"nfm-facility/app/events"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared"
)

const numberAttempts = 3

type Handler struct {
	Store              Store
	Engine             *aggregation.Engine
	Publisher          events.Publisher
	DefaultOverheadPct decimal.Decimal
}

// monthCosts returns the computed labour and fleet totals of a month. Labour covers the active
// roster only.
func (h *Handler) monthCosts(ctx context.Context, year, month int) (labour, fleet decimal.Decimal, err error) {
	start, end := shared.MonthBounds(year, month)
	workers, err := h.Store.ListWorkers(ctx, true)
	if err != nil {
		return labour, fleet, err
	}
	attendance, err := h.Store.ListAttendance(ctx, start, end)
	if err != nil {
		return labour, fleet, err
	}
	rows, err := h.Engine.ComputeLaborTotals(workers, attendance, start, end, true)
	if err != nil {
		return labour, fleet, err
	}
	usage, err := h.Store.ListFleetUsage(ctx, start, end)
	if err != nil {
		return labour, fleet, err
	}
	fleet = decimal.Zero
	for _, u := range usage {
		fleet = fleet.Add(u.Cost())
	}
	return aggregation.SumLabor(rows).TotalPay, fleet.Round(2), nil
}

func (h *Handler) decimalQuery(c *fiber.Ctx, key string, def decimal.Decimal) (decimal.Decimal, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return def, shared.Invalid("%s must be a number", key)
	}
	return d, nil
}

// PreviewInvoiceAPI prices ?year=&month= without saving anything.
func (h *Handler) PreviewInvoiceAPI(c *fiber.Ctx) error {
	year, month, _, _, err := shared.Month(c)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	pct, err := h.decimalQuery(c, "overhead_pct", h.DefaultOverheadPct)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	other, err := h.decimalQuery(c, "other", decimal.Zero)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	labour, fleet, err := h.monthCosts(c.UserContext(), year, month)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	totals, err := billing.Compute(billing.Lines{Labour: labour, Fleet: fleet, Other: other, OverheadPct: pct})
	if err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "year": year, "month": month, "totals": totals})
}

type createRequest struct {
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	LabourTotal *decimal.Decimal `json:"labour_total"`
	FleetTotal  *decimal.Decimal `json:"fleet_total"`
	OtherTotal  decimal.Decimal  `json:"other_total"`
	OverheadPct *decimal.Decimal `json:"overhead_pct"`
	ClientName  string           `json:"client_name"`
	ContractRef string           `json:"contract_ref"`
	Notes       string           `json:"notes"`
}

// CreateInvoiceAPI issues the month's invoice. Labour and fleet totals may be overridden by hand;
// otherwise they are computed as in the preview.
func (h *Handler) CreateInvoiceAPI(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Year < 2000 || req.Year > 2100 || req.Month < 1 || req.Month > 12 {
		return shared.Fail(c, fiber.StatusBadRequest, "A valid year and month are required")
	}
	ctx := c.UserContext()

	lines := billing.Lines{Other: req.OtherTotal, OverheadPct: h.DefaultOverheadPct}
	if req.OverheadPct != nil {
		lines.OverheadPct = *req.OverheadPct
	}
	if req.LabourTotal == nil || req.FleetTotal == nil {
		labour, fleet, err := h.monthCosts(ctx, req.Year, req.Month)
		if err != nil {
			return shared.StoreFailure(c, err)
		}
		lines.Labour, lines.Fleet = labour, fleet
	}
	if req.LabourTotal != nil {
		lines.Labour = *req.LabourTotal
	}
	if req.FleetTotal != nil {
		lines.Fleet = *req.FleetTotal
	}
	totals, err := billing.Compute(lines)
	if err != nil {
		return shared.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	inv := &models.Invoice{
		Year:           req.Year,
		Month:          req.Month,
		LabourTotal:    totals.LabourTotal,
		FleetTotal:     totals.FleetTotal,
		OtherTotal:     totals.OtherTotal,
		OverheadPct:    totals.OverheadPct,
		OverheadAmount: totals.OverheadAmount,
		GrandTotal:     totals.GrandTotal,
		ClientName:     strings.TrimSpace(req.ClientName),
		ContractRef:    strings.TrimSpace(req.ContractRef),
		Notes:          strings.TrimSpace(req.Notes),
	}
	for attempt := 1; ; attempt++ {
		last, err := h.Store.LatestInvoiceNumber(ctx, req.Year, req.Month)
		if err != nil {
			return shared.StoreFailure(c, err)
		}
		inv.Number = billing.NextInvoiceNumber(req.Year, req.Month, last)
		err = h.Store.CreateInvoice(ctx, inv)
		if err == nil {
			break
		}
		if !errors.Is(err, database.ErrDuplicate) || attempt == numberAttempts {
			return shared.StoreFailure(c, err)
		}
	}

	if err := h.Publisher.PublishInvoice(ctx, inv); err != nil {
		log.Printf("Warning: invoice %s saved but not announced: %v", inv.Number, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "invoice": inv, "subtotal": totals.Subtotal})
}

func (h *Handler) GetInvoicesAPI(c *fiber.Ctx) error {
	invoices, err := h.Store.ListInvoices(c.UserContext(), historyLimit)
	if err != nil {
		return shared.StoreFailure(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "invoices": invoices})
}
