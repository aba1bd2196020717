package workers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/database"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared/routetest"
)

const workerID = "6f1c1c1e-8a43-4d8e-9a57-2f5d3c3b9a01"

type stubStore struct {
	workers []models.Worker
	created *models.Worker
	err     error
}

func (s *stubStore) ListWorkers(_ context.Context, onlyActive bool) ([]models.Worker, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []models.Worker{}
	for _, w := range s.workers {
		if !onlyActive || w.IsActive() {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *stubStore) GetWorker(_ context.Context, id string) (*models.Worker, error) {
	for _, w := range s.workers {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *stubStore) CreateWorker(_ context.Context, w *models.Worker) error {
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.workers {
		if existing.Code == w.Code {
			return database.ErrDuplicate
		}
	}
	w.ID = workerID
	s.created = w
	return nil
}

func (s *stubStore) UpdateWorker(_ context.Context, w *models.Worker) error {
	_, err := s.GetWorker(context.Background(), w.ID)
	return err
}

func (s *stubStore) DeleteWorker(_ context.Context, id string) error {
	_, err := s.GetWorker(context.Background(), id)
	return err
}

func newApp(store Store) *fiber.App {
	app := fiber.New()
	SetupWorkersRoutes(app, store)
	return app
}

func TestListWorkersFiltersActive(t *testing.T) {
	store := &stubStore{workers: []models.Worker{
		{ID: workerID, Code: "W001", FullName: "Ali Hassan", Status: models.WorkerActive},
		{ID: "x", Code: "W002", FullName: "Omar Saleh", Status: models.WorkerInactive},
	}}
	app := newApp(store)

	var body struct {
		Count int `json:"count"`
	}
	resp := routetest.Do(t, app, http.MethodGet, "/api/workers?only_active=true", "", routetest.Admin...)
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	resp.JSON(t, &body)
	if body.Count != 1 {
		t.Fatalf("count = %d, want 1", body.Count)
	}
}

func TestListWorkersRequiresToken(t *testing.T) {
	resp := routetest.Do(t, newApp(&stubStore{}), http.MethodGet, "/api/workers", "")
	if resp.Status != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", resp.Status)
	}
}

func TestListWorkersStoreDown(t *testing.T) {
	store := &stubStore{err: errors.New("dial tcp: connection refused")}
	resp := routetest.Do(t, newApp(store), http.MethodGet, "/api/workers", "", routetest.Admin...)
	if resp.Status != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503", resp.Status)
	}
}

func TestCreateWorker(t *testing.T) {
	store := &stubStore{}
	body := `{"worker_code":" W010 ","full_name":"Rami Nouri","position":"Cleaner","salary":"650000","visa_expiry":"2027-03-01"}`
	resp := routetest.Do(t, newApp(store), http.MethodPost, "/api/workers", body, routetest.Admin...)
	if resp.Status != http.StatusCreated {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	if store.created == nil {
		t.Fatal("worker not stored")
	}
	if store.created.Code != "W010" || store.created.Status != models.WorkerActive {
		t.Fatalf("stored %+v", store.created)
	}
	if !store.created.Salary.Equal(decimal.NewFromInt(650000)) {
		t.Fatalf("salary = %s", store.created.Salary)
	}
	if store.created.VisaExpiry == nil || store.created.VisaExpiry.Day() != 1 {
		t.Fatalf("visa expiry = %v", store.created.VisaExpiry)
	}
}

func TestCreateWorkerValidation(t *testing.T) {
	cases := map[string]string{
		"negative salary": `{"worker_code":"W1","full_name":"A","salary":-5}`,
		"missing code":    `{"full_name":"A","salary":10}`,
		"bad status":      `{"worker_code":"W1","full_name":"A","status":"Retired"}`,
		"bad visa date":   `{"worker_code":"W1","full_name":"A","visa_expiry":"01/02/2027"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			store := &stubStore{}
			resp := routetest.Do(t, newApp(store), http.MethodPost, "/api/workers", body, routetest.Admin...)
			if resp.Status != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", resp.Status)
			}
			if store.created != nil {
				t.Fatal("invalid worker was stored")
			}
		})
	}
}

func TestCreateWorkerDuplicateCode(t *testing.T) {
	store := &stubStore{workers: []models.Worker{{ID: workerID, Code: "W001"}}}
	resp := routetest.Do(t, newApp(store), http.MethodPost, "/api/workers", `{"worker_code":"W001","full_name":"B"}`, routetest.Admin...)
	if resp.Status != http.StatusConflict {
		t.Fatalf("status %d, want 409", resp.Status)
	}
}

func TestCreateWorkerNeedsSupervisor(t *testing.T) {
	resp := routetest.Do(t, newApp(&stubStore{}), http.MethodPost, "/api/workers", `{"worker_code":"W1","full_name":"A"}`, "accountant")
	if resp.Status != http.StatusForbidden {
		t.Fatalf("status %d, want 403", resp.Status)
	}
}

func TestWorkerByID(t *testing.T) {
	store := &stubStore{workers: []models.Worker{{ID: workerID, Code: "W001"}}}
	app := newApp(store)

	if resp := routetest.Do(t, app, http.MethodGet, "/api/workers/not-a-uuid", "", routetest.Admin...); resp.Status != http.StatusBadRequest {
		t.Fatalf("bad id: status %d", resp.Status)
	}
	missing := "/api/workers/00000000-0000-0000-0000-00000000beef"
	if resp := routetest.Do(t, app, http.MethodDelete, missing, "", routetest.Admin...); resp.Status != http.StatusNotFound {
		t.Fatalf("missing: status %d", resp.Status)
	}
	if resp := routetest.Do(t, app, http.MethodGet, "/api/workers/"+workerID, "", routetest.Admin...); resp.Status != http.StatusOK {
		t.Fatalf("found: status %d", resp.Status)
	}
}
