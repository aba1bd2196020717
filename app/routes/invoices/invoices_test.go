package invoices

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared/routetest"
)

type stubStore struct {
	workers    []models.Worker
	attendance []models.AttendanceRecord
	usage      []models.FleetUsage
	latest     string
	saved      *models.Invoice
}

func (s *stubStore) ListWorkers(context.Context, bool) ([]models.Worker, error) {
	return s.workers, nil
}

func (s *stubStore) ListAttendance(context.Context, time.Time, time.Time) ([]models.AttendanceRecord, error) {
	return s.attendance, nil
}

func (s *stubStore) ListFleetUsage(context.Context, time.Time, time.Time) ([]models.FleetUsage, error) {
	return s.usage, nil
}

func (s *stubStore) ListInvoices(context.Context, int) ([]models.Invoice, error) {
	return []models.Invoice{}, nil
}

func (s *stubStore) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	inv.ID = "inv-1"
	s.saved = inv
	return nil
}

func (s *stubStore) LatestInvoiceNumber(context.Context, int, int) (string, error) {
	return s.latest, nil
}

type stubPublisher struct {
	published []*models.Invoice
	err       error
}

func (p *stubPublisher) PublishInvoice(_ context.Context, inv *models.Invoice) error {
	p.published = append(p.published, inv)
	return p.err
}

func (p *stubPublisher) Close() error { return nil }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// One worker at 1000/h with 10 paid hours, one vehicle line of 2h at 5000/h.
func newStore() *stubStore {
	return &stubStore{
		workers: []models.Worker{{ID: "w1", Code: "W001", Status: models.WorkerActive, Salary: dec(208000)}},
		attendance: []models.AttendanceRecord{
			{WorkerID: "w1", Date: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), Status: models.Present, HoursWorked: 10},
		},
		usage: []models.FleetUsage{{HoursUsed: 2, HourlyRate: dec(5000)}},
	}
}

func newApp(store Store, pub *stubPublisher) *fiber.App {
	app := fiber.New()
	SetupInvoiceRoutes(app, store, aggregation.New(aggregation.DefaultPolicy()), pub, dec(15))
	return app
}

func TestPreview(t *testing.T) {
	resp := routetest.Do(t, newApp(newStore(), &stubPublisher{}), http.MethodGet, "/api/invoices/preview?year=2024&month=7&other=5000", "", "accountant")
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	var body struct {
		Totals struct {
			LabourTotal    decimal.Decimal `json:"labour_total"`
			FleetTotal     decimal.Decimal `json:"fleet_total"`
			OverheadAmount decimal.Decimal `json:"overhead_amount"`
			GrandTotal     decimal.Decimal `json:"grand_total"`
		} `json:"totals"`
	}
	resp.JSON(t, &body)
	tot := body.Totals
	// subtotal 10000 + 10000 + 5000 = 25000, overhead 15%.
	if !tot.LabourTotal.Equal(dec(10000)) || !tot.FleetTotal.Equal(dec(10000)) {
		t.Fatalf("lines = %s / %s", tot.LabourTotal, tot.FleetTotal)
	}
	if !tot.OverheadAmount.Equal(dec(3750)) || !tot.GrandTotal.Equal(dec(28750)) {
		t.Fatalf("overhead %s, grand %s", tot.OverheadAmount, tot.GrandTotal)
	}
}

func TestPreviewRejectsBadNumbers(t *testing.T) {
	app := newApp(newStore(), &stubPublisher{})
	for _, q := range []string{"overhead_pct=abc", "other=-1", "month=0"} {
		resp := routetest.Do(t, app, http.MethodGet, "/api/invoices/preview?"+q, "", routetest.Admin...)
		if resp.Status != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", q, resp.Status)
		}
	}
}

func TestCreateInvoiceWithOverride(t *testing.T) {
	store := &stubStore{latest: "INV-202407-004"}
	pub := &stubPublisher{}
	body := `{"year":2024,"month":7,"labour_total":"1000","fleet_total":"0","overhead_pct":"10","client_name":" NPS "}`
	resp := routetest.Do(t, newApp(store, pub), http.MethodPost, "/api/invoices", body, routetest.Admin...)
	if resp.Status != http.StatusCreated {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	inv := store.saved
	if inv.Number != "INV-202407-005" || inv.ClientName != "NPS" || !inv.GrandTotal.Equal(dec(1100)) {
		t.Fatalf("saved %+v", inv)
	}
	if len(pub.published) != 1 || pub.published[0].Number != inv.Number {
		t.Fatalf("published %d events", len(pub.published))
	}
}

func TestCreateInvoiceSurvivesPublishFailure(t *testing.T) {
	store := newStore()
	pub := &stubPublisher{err: errors.New("broker unreachable")}
	resp := routetest.Do(t, newApp(store, pub), http.MethodPost, "/api/invoices", `{"year":2024,"month":7}`, routetest.Admin...)
	if resp.Status != http.StatusCreated {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	if store.saved.Number != "INV-202407-001" || !store.saved.GrandTotal.Equal(dec(23000)) {
		t.Fatalf("saved %+v", store.saved)
	}
}

func TestInvoicesNeedAccountant(t *testing.T) {
	resp := routetest.Do(t, newApp(newStore(), &stubPublisher{}), http.MethodGet, "/api/invoices", "", "supervisor")
	if resp.Status != http.StatusForbidden {
		t.Fatalf("status %d, want 403", resp.Status)
	}
}
