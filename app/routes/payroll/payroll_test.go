package payroll

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/database"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared/routetest"
)

const (
	w1 = "11111111-1111-1111-1111-111111111111"
	w2 = "22222222-2222-2222-2222-222222222222"
)

type stubStore struct {
	workers    []models.Worker
	attendance []models.AttendanceRecord
}

func (s *stubStore) ListWorkers(context.Context, bool) ([]models.Worker, error) {
	return s.workers, nil
}

func (s *stubStore) GetWorker(_ context.Context, id string) (*models.Worker, error) {
	for _, w := range s.workers {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *stubStore) ListAttendance(context.Context, time.Time, time.Time) ([]models.AttendanceRecord, error) {
	return s.attendance, nil
}

func newStore() *stubStore {
	d := func(day int) time.Time { return time.Date(2024, 2, day, 0, 0, 0, 0, time.UTC) }
	return &stubStore{
		workers: []models.Worker{
			{ID: w2, Code: "W002", FullName: "Omar", Nationality: "Egypt", Status: models.WorkerActive},
			{ID: w1, Code: "W001", FullName: "Ali", Nationality: "India", Status: models.WorkerActive, Salary: decimal.NewFromInt(208000)},
		},
		attendance: []models.AttendanceRecord{
			{WorkerID: w1, Date: d(5), Status: models.Present, HoursWorked: 10, OvertimeHours: 2},
			{WorkerID: w1, Date: d(6), Status: models.Leave, HoursWorked: 8},
			{WorkerID: w2, Date: d(5), Status: models.Present, HoursWorked: 8},
		},
	}
}

func newApp(store Store, dataDir string) *fiber.App {
	app := fiber.New()
	SetupPayrollRoutes(app, store, aggregation.New(aggregation.DefaultPolicy()), dataDir)
	return app
}

func TestPayrollTotals(t *testing.T) {
	resp := routetest.Do(t, newApp(newStore(), ""), http.MethodGet, "/api/payroll?year=2024&month=2", "", "accountant")
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	var body struct {
		Payroll Run `json:"payroll"`
	}
	resp.JSON(t, &body)
	run := body.Payroll
	if len(run.Rows) != 2 || run.Rows[0].WorkerCode != "W001" {
		t.Fatalf("rows = %+v", run.Rows)
	}
	// 10 payable hours + 2 OT at 1000/h; the Leave row's hours are not paid.
	if !run.Rows[0].TotalPay.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("W001 total = %s, want 12000", run.Rows[0].TotalPay)
	}
	if !run.Rows[1].TotalPay.IsZero() {
		t.Fatalf("W002 without salary earned %s", run.Rows[1].TotalPay)
	}
	if run.Totals.Workers != 2 || !run.Totals.TotalPay.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("totals = %+v", run.Totals)
	}
}

func TestPayrollForbiddenForSupervisor(t *testing.T) {
	resp := routetest.Do(t, newApp(newStore(), ""), http.MethodGet, "/api/payroll", "", "supervisor")
	if resp.Status != http.StatusForbidden {
		t.Fatalf("status %d, want 403", resp.Status)
	}
}

func TestPayrollDownloadIsArchived(t *testing.T) {
	dir := t.TempDir()
	resp := routetest.Do(t, newApp(newStore(), dir), http.MethodGet, "/api/payroll?year=2024&month=2&format=xlsx", "", routetest.Admin...)
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("Content-Type = %q", ct)
	}
	saved, err := os.ReadFile(filepath.Join(dir, "payroll_2024_02.xlsx"))
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if len(saved) != len(resp.Body) {
		t.Fatalf("archived %d bytes, sent %d", len(saved), len(resp.Body))
	}
}

func TestSalarySlip(t *testing.T) {
	resp := routetest.Do(t, newApp(newStore(), ""), http.MethodGet, "/api/payroll/slips/"+w1+"?year=2024&month=2", "", routetest.Admin...)
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	var body struct {
		Slip struct {
			Period      string               `json:"period"`
			Nationality string               `json:"nationality"`
			Pay         aggregation.LaborRow `json:"pay"`
		} `json:"slip"`
	}
	resp.JSON(t, &body)
	if body.Slip.Period != "February 2024" || body.Slip.Nationality != "India" {
		t.Fatalf("slip = %+v", body.Slip)
	}
	if body.Slip.Pay.DaysPresent != 1 || body.Slip.Pay.DaysLeave != 1 {
		t.Fatalf("pay = %+v", body.Slip.Pay)
	}
}

func TestSalarySlipUnknownWorker(t *testing.T) {
	resp := routetest.Do(t, newApp(newStore(), ""), http.MethodGet, "/api/payroll/slips/33333333-3333-3333-3333-333333333333", "", routetest.Admin...)
	if resp.Status != http.StatusNotFound {
		t.Fatalf("status %d, want 404", resp.Status)
	}
}
