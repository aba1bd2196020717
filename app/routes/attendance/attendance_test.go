package attendance

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/aggregation"
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
	saved      []*models.AttendanceRecord
	listErr    error
	from, to   time.Time
}

func (s *stubStore) ListWorkers(context.Context, bool) ([]models.Worker, error) {
	return s.workers, s.listErr
}

func (s *stubStore) ListAttendance(_ context.Context, start, end time.Time) ([]models.AttendanceRecord, error) {
	s.from, s.to = start, end
	return s.attendance, nil
}

func (s *stubStore) RecentAttendance(_ context.Context, workerID string, _ int) ([]models.AttendanceRecord, error) {
	out := []models.AttendanceRecord{}
	for _, a := range s.attendance {
		if a.WorkerID == workerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubStore) SaveAttendance(_ context.Context, rec *models.AttendanceRecord) error {
	s.saved = append(s.saved, rec)
	return nil
}

func newApp(store Store, dataDir string) *fiber.App {
	app := fiber.New()
	SetupAttendanceRoutes(app, store, aggregation.New(aggregation.DefaultPolicy()), dataDir)
	return app
}

func TestSavePresentDerivesHours(t *testing.T) {
	store := &stubStore{}
	body := `{"worker_id":"` + w1 + `","att_date":"2024-03-04","status":"Present","in_time":"07:00","out_time":"17:30"}`
	resp := routetest.Do(t, newApp(store, ""), http.MethodPost, "/api/attendance", body, routetest.Admin...)
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d records", len(store.saved))
	}
	rec := store.saved[0]
	if rec.HoursWorked != 10.5 || rec.OvertimeHours != 2.5 {
		t.Fatalf("hours = %v / %v, want 10.5 / 2.5", rec.HoursWorked, rec.OvertimeHours)
	}
}

func TestSaveNonPresentStoresZeroHours(t *testing.T) {
	store := &stubStore{}
	body := `{"worker_id":"` + w1 + `","att_date":"2024-03-04","status":"Leave","in_time":"07:00","out_time":"17:00"}`
	resp := routetest.Do(t, newApp(store, ""), http.MethodPost, "/api/attendance", body, routetest.Admin...)
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	rec := store.saved[0]
	if rec.HoursWorked != 0 || rec.OvertimeHours != 0 || rec.InTime != "" {
		t.Fatalf("leave row kept hours: %+v", rec)
	}
}

func TestSaveRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"bad worker":  `{"worker_id":"w1","att_date":"2024-03-04","status":"Off"}`,
		"bad date":    `{"worker_id":"` + w1 + `","att_date":"04/03/2024","status":"Off"}`,
		"bad status":  `{"worker_id":"` + w1 + `","att_date":"2024-03-04","status":"Sick"}`,
		"no clock in": `{"worker_id":"` + w1 + `","att_date":"2024-03-04","status":"Present","out_time":"17:00"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			store := &stubStore{}
			resp := routetest.Do(t, newApp(store, ""), http.MethodPost, "/api/attendance", body, routetest.Admin...)
			if resp.Status != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", resp.Status)
			}
			if len(store.saved) != 0 {
				t.Fatal("invalid record saved")
			}
		})
	}
}

func TestBatchIsAllOrNothing(t *testing.T) {
	store := &stubStore{}
	body := `{"att_date":"2024-03-04","records":[
		{"worker_id":"` + w1 + `","status":"Absent"},
		{"worker_id":"` + w2 + `","status":"Holiday"}]}`
	resp := routetest.Do(t, newApp(store, ""), http.MethodPost, "/api/attendance/batch", body, routetest.Admin...)
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.Status)
	}
	if len(store.saved) != 0 {
		t.Fatalf("saved %d records from a rejected batch", len(store.saved))
	}

	body = strings.Replace(body, "Holiday", "Off", 1)
	resp = routetest.Do(t, newApp(store, ""), http.MethodPost, "/api/attendance/batch", body, routetest.Admin...)
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	if len(store.saved) != 2 || store.saved[1].Date.Day() != 4 {
		t.Fatalf("saved %+v", store.saved)
	}
}

func summaryStore() *stubStore {
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	return &stubStore{
		workers: []models.Worker{
			{ID: w1, Code: "W001", FullName: "Ali", Status: models.WorkerActive, Salary: decimal.NewFromInt(208000)},
			{ID: w2, Code: "W002", FullName: "Omar", Status: models.WorkerInactive, Salary: decimal.NewFromInt(208000)},
		},
		attendance: []models.AttendanceRecord{
			{WorkerID: w1, Date: d(1), Status: models.Present, HoursWorked: 8},
			{WorkerID: w1, Date: d(2), Status: models.Absent},
			{WorkerID: w2, Date: d(1), Status: models.Present, HoursWorked: 8},
		},
	}
}

func TestSummaryUsesActiveRosterByDefault(t *testing.T) {
	store := summaryStore()
	resp := routetest.Do(t, newApp(store, ""), http.MethodGet, "/api/attendance/summary?year=2024&month=3", "", routetest.Admin...)
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	var body struct {
		Rows []aggregation.LaborRow `json:"rows"`
	}
	resp.JSON(t, &body)
	if len(body.Rows) != 1 || body.Rows[0].DaysPresent != 1 || body.Rows[0].DaysAbsent != 1 {
		t.Fatalf("rows = %+v", body.Rows)
	}
	if !body.Rows[0].TotalPay.Equal(decimal.NewFromInt(8000)) {
		t.Fatalf("total pay = %s, want 8000", body.Rows[0].TotalPay)
	}
	if store.from.Day() != 1 || store.to.Day() != 31 {
		t.Fatalf("queried %s..%s", store.from, store.to)
	}

	resp = routetest.Do(t, newApp(store, ""), http.MethodGet, "/api/attendance/summary?year=2024&month=3&only_active=false", "", routetest.Admin...)
	resp.JSON(t, &body)
	if len(body.Rows) != 2 {
		t.Fatalf("all workers: %d rows", len(body.Rows))
	}
}

func TestSummaryDownloadCSV(t *testing.T) {
	dir := t.TempDir()
	resp := routetest.Do(t, newApp(summaryStore(), dir), http.MethodGet, "/api/attendance/summary?year=2024&month=3&format=csv", "", routetest.Admin...)
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attendance_summary_2024_03.csv") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(string(resp.Body), "Worker Code,") {
		t.Fatalf("body = %q", resp.Body)
	}
}

func TestSummaryErrors(t *testing.T) {
	resp := routetest.Do(t, newApp(&stubStore{}, ""), http.MethodGet, "/api/attendance/summary?month=13", "", routetest.Admin...)
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("bad month: status %d", resp.Status)
	}
	store := &stubStore{listErr: errors.New("connection reset")}
	resp = routetest.Do(t, newApp(store, ""), http.MethodGet, "/api/attendance/summary", "", routetest.Admin...)
	if resp.Status != http.StatusServiceUnavailable {
		t.Fatalf("store down: status %d", resp.Status)
	}
}

func TestRecentAttendance(t *testing.T) {
	resp := routetest.Do(t, newApp(summaryStore(), ""), http.MethodGet, "/api/attendance/worker/"+w1, "", routetest.Admin...)
	var body struct {
		Attendance []models.AttendanceRecord `json:"attendance"`
	}
	resp.JSON(t, &body)
	if len(body.Attendance) != 2 {
		t.Fatalf("got %d records", len(body.Attendance))
	}
}
