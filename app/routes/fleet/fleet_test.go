package fleet

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/database"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared/routetest"
)

const vehicleID = "66666666-6666-6666-6666-666666666666"

type stubStore struct {
	vehicles []models.FleetVehicle
	usage    []models.FleetUsage
	created  *models.FleetVehicle
	entry    *models.FleetUsage
}

func (s *stubStore) ListVehicles(context.Context) ([]models.FleetVehicle, error) {
	return s.vehicles, nil
}

func (s *stubStore) CreateVehicle(_ context.Context, v *models.FleetVehicle) error {
	v.ID = vehicleID
	s.created = v
	return nil
}

func (s *stubStore) UpdateVehicle(_ context.Context, v *models.FleetVehicle) error {
	if v.ID != vehicleID {
		return database.ErrNotFound
	}
	return nil
}

func (s *stubStore) DeleteVehicle(_ context.Context, id string) error {
	if id != vehicleID {
		return database.ErrNotFound
	}
	return nil
}

func (s *stubStore) ListFleetUsage(context.Context, time.Time, time.Time) ([]models.FleetUsage, error) {
	return s.usage, nil
}

func (s *stubStore) CreateFleetUsage(_ context.Context, u *models.FleetUsage) error {
	if u.VehicleID != vehicleID {
		return database.ErrReference
	}
	s.entry = u
	return nil
}

func newApp(store Store) *fiber.App {
	app := fiber.New()
	SetupFleetRoutes(app, store)
	return app
}

func TestCreateVehicle(t *testing.T) {
	store := &stubStore{}
	resp := routetest.Do(t, newApp(store), http.MethodPost, "/api/fleet/vehicles", `{"name":"Water tanker","hourly_rate":"25000"}`, routetest.Admin...)
	if resp.Status != http.StatusCreated {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	if store.created.Status != models.VehicleAvailable || !store.created.HourlyRate.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("created %+v", store.created)
	}

	resp = routetest.Do(t, newApp(store), http.MethodPost, "/api/fleet/vehicles", `{"name":"Bus","hourly_rate":-1}`, routetest.Admin...)
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("negative rate: status %d", resp.Status)
	}
}

func TestUpdateMissingVehicle(t *testing.T) {
	resp := routetest.Do(t, newApp(&stubStore{}), http.MethodPut, "/api/fleet/vehicles/77777777-7777-7777-7777-777777777777", `{"name":"Bus"}`, routetest.Admin...)
	if resp.Status != http.StatusNotFound {
		t.Fatalf("status %d, want 404", resp.Status)
	}
}

func TestTimesheetCosts(t *testing.T) {
	store := &stubStore{usage: []models.FleetUsage{
		{VehicleID: vehicleID, HoursUsed: 2.5, HourlyRate: decimal.NewFromInt(20000)},
		{VehicleID: vehicleID, HoursUsed: 1, HourlyRate: decimal.NewFromInt(20000)},
	}}
	resp := routetest.Do(t, newApp(store), http.MethodGet, "/api/fleet/timesheet?from=2024-06-01&to=2024-06-30", "", routetest.Admin...)
	if resp.Status != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	var body struct {
		TotalHours float64         `json:"total_hours"`
		TotalCost  decimal.Decimal `json:"total_cost"`
	}
	resp.JSON(t, &body)
	if body.TotalHours != 3.5 || !body.TotalCost.Equal(decimal.NewFromInt(70000)) {
		t.Fatalf("totals = %v / %s", body.TotalHours, body.TotalCost)
	}
}

func TestCreateTimesheetEntry(t *testing.T) {
	store := &stubStore{}
	body := `{"vehicle_id":"` + vehicleID + `","worker_id":"","used_date":"2024-06-03","hours_used":6}`
	resp := routetest.Do(t, newApp(store), http.MethodPost, "/api/fleet/timesheet", body, "supervisor")
	if resp.Status != http.StatusCreated {
		t.Fatalf("status %d: %s", resp.Status, resp.Body)
	}
	if store.entry.WorkerID != nil || store.entry.HoursUsed != 6 {
		t.Fatalf("entry %+v", store.entry)
	}

	cases := map[string]string{
		"unknown vehicle": `{"vehicle_id":"77777777-7777-7777-7777-777777777777","used_date":"2024-06-03","hours_used":1}`,
		"too many hours":  `{"vehicle_id":"` + vehicleID + `","used_date":"2024-06-03","hours_used":25}`,
		"bad date":        `{"vehicle_id":"` + vehicleID + `","used_date":"June 3","hours_used":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := routetest.Do(t, newApp(&stubStore{}), http.MethodPost, "/api/fleet/timesheet", body, routetest.Admin...)
			if resp.Status != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", resp.Status)
			}
		})
	}
}
