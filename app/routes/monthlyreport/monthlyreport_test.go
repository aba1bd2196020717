package monthlyreport

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared/routetest"
)

type stubStore struct {
	attendance []models.AttendanceRecord
	orders     []models.WorkOrder
	usage      []models.FleetUsage
	err        error
	start, end time.Time
}

func (s *stubStore) ListAttendance(_ context.Context, start, end time.Time) ([]models.AttendanceRecord, error) {
	s.start, s.end = start, end
	return s.attendance, s.err
}

func (s *stubStore) ListWorkOrders(context.Context, time.Time, time.Time) ([]models.WorkOrder, error) {
	return s.orders, nil
}

func (s *stubStore) ListFleetUsage(context.Context, time.Time, time.Time) ([]models.FleetUsage, error) {
	return s.usage, nil
}

func newStore() *stubStore {
	crane := decimal.NewFromInt(50)
	return &stubStore{
		attendance: []models.AttendanceRecord{
			{Status: models.Present}, {Status: models.Present}, {Status: models.Absent}, {Status: models.Leave},
		},
		orders: []models.WorkOrder{
			{Status: models.WorkOrderOpen}, {Status: models.WorkOrderInProgress},
			{Status: models.WorkOrderCompleted},
		},
		usage: []models.FleetUsage{
			{VehicleName: "Crane", HourlyRate: crane, HoursUsed: 2.5},
			{HourlyRate: decimal.NewFromInt(10), HoursUsed: 3},
			{VehicleName: "Crane", HourlyRate: crane, HoursUsed: 1.5},
		},
	}
}

func newApp(store Store, dataDir string) *fiber.App {
	app := fiber.New()
	SetupMonthlyReportRoutes(app, store, dataDir)
	return app
}

func TestMonthlyReportSummary(t *testing.T) {
	store := newStore()
	resp := routetest.Do(t, newApp(store, ""), http.MethodGet, "/api/monthly-report?year=2024&month=2", "", "supervisor")
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	var body struct {
		Report Report `json:"report"`
	}
	resp.JSON(t, &body)
	rep := body.Report

	if rep.Period != "February 2024" || store.end.Format("2006-01-02") != "2024-02-29" {
		t.Fatalf("period %q, queried to %s", rep.Period, store.end.Format("2006-01-02"))
	}
	if rep.Attendance != (AttendanceSummary{Records: 4, Present: 2, Absent: 1}) {
		t.Fatalf("attendance = %+v", rep.Attendance)
	}
	if rep.WorkOrders != (WorkOrderSummary{Total: 3, Open: 2, Closed: 1}) {
		t.Fatalf("work orders = %+v", rep.WorkOrders)
	}
	if rep.Fleet.TotalHours != 7 || !rep.Fleet.TotalCost.Equal(decimal.NewFromInt(230)) {
		t.Fatalf("fleet totals = %v / %s", rep.Fleet.TotalHours, rep.Fleet.TotalCost)
	}
	v := rep.Fleet.Vehicles
	if len(v) != 2 || v[0].Vehicle != "Crane" || v[0].Hours != 4 || !v[0].Cost.Equal(decimal.NewFromInt(200)) || v[1].Vehicle != "N/A" {
		t.Fatalf("vehicles = %+v", v)
	}
}

func TestMonthlyReportEmptyMonth(t *testing.T) {
	rep := Build(2024, 3, nil, nil, nil)
	if rep.Attendance.Records != 0 || rep.WorkOrders.Total != 0 || rep.Fleet.Vehicles == nil || !rep.Fleet.TotalCost.IsZero() {
		t.Fatalf("report = %+v", rep)
	}
	if got := len(rep.Table().Rows); got != 7 {
		t.Fatalf("table rows = %d, want 7", got)
	}
}

func TestMonthlyReportDownloadIsArchived(t *testing.T) {
	dir := t.TempDir()
	resp := routetest.Do(t, newApp(newStore(), dir), http.MethodGet, "/api/monthly-report?year=2024&month=2&format=csv", "", routetest.Admin...)
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "fm_monthly_report_2024_02.csv") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(string(resp.Body), "Fleet by vehicle,Crane,4.00,200") {
		t.Fatalf("csv = %s", resp.Body)
	}
	if _, err := os.Stat(filepath.Join(dir, "fm_monthly_reports", "fm_monthly_report_2024_02.csv")); err != nil {
		t.Fatalf("archive: %v", err)
	}
}

func TestMonthlyReportErrors(t *testing.T) {
	if resp := routetest.Do(t, newApp(newStore(), ""), http.MethodGet, "/api/monthly-report?month=13", "", routetest.Admin...); resp.Status != http.StatusBadRequest {
		t.Fatalf("bad month: status %d", resp.Status)
	}
	down := &stubStore{err: errors.New("connection refused")}
	if resp := routetest.Do(t, newApp(down, ""), http.MethodGet, "/api/monthly-report", "", routetest.Admin...); resp.Status != http.StatusServiceUnavailable {
		t.Fatalf("store down: status %d", resp.Status)
	}
}
