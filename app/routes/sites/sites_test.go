package sites

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/database"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/shared/routetest"
)

type stubStore struct {
	buildings []models.Building
	groups    []models.WCGroup
}

func (s *stubStore) ListBuildings(context.Context) ([]models.Building, error) {
	return s.buildings, nil
}

func (s *stubStore) CreateBuilding(_ context.Context, b *models.Building) error {
	for _, existing := range s.buildings {
		if existing.Name == b.Name {
			return database.ErrDuplicate
		}
	}
	s.buildings = append(s.buildings, *b)
	return nil
}

func (s *stubStore) DeleteBuilding(context.Context, string) error {
	return database.ErrNotFound
}

func (s *stubStore) ListWCGroups(context.Context) ([]models.WCGroup, error) {
	return s.groups, nil
}

func (s *stubStore) CreateWCGroup(_ context.Context, g *models.WCGroup) error {
	s.groups = append(s.groups, *g)
	return nil
}

func (s *stubStore) DeleteWCGroup(context.Context, string) error {
	return nil
}

func newApp(store Store) *fiber.App {
	app := fiber.New()
	SetupSitesRoutes(app, store)
	return app
}

func TestCreateBuilding(t *testing.T) {
	store := &stubStore{}
	app := newApp(store)
	resp := routetest.Do(t, app, http.MethodPost, "/api/buildings", `{"name":"Camp A","zone":"North"}`, routetest.Admin...)
	if resp.Status != http.StatusCreated || len(store.buildings) != 1 {
		t.Fatalf("status %d, stored %d", resp.Status, len(store.buildings))
	}
	resp = routetest.Do(t, app, http.MethodPost, "/api/buildings", `{"name":"Camp A"}`, routetest.Admin...)
	if resp.Status != http.StatusConflict {
		t.Fatalf("duplicate: status %d", resp.Status)
	}
	resp = routetest.Do(t, app, http.MethodPost, "/api/buildings", `{"name":"  "}`, routetest.Admin...)
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("blank: status %d", resp.Status)
	}
}

func TestSitesWriteNeedsAdmin(t *testing.T) {
	resp := routetest.Do(t, newApp(&stubStore{}), http.MethodPost, "/api/wc-groups", `{"name":"WC 1"}`, "supervisor")
	if resp.Status != http.StatusForbidden {
		t.Fatalf("status %d, want 403", resp.Status)
	}
	resp = routetest.Do(t, newApp(&stubStore{}), http.MethodGet, "/api/wc-groups", "", "supervisor")
	if resp.Status != http.StatusOK {
		t.Fatalf("list: status %d", resp.Status)
	}
}

func TestDeleteBuilding(t *testing.T) {
	app := newApp(&stubStore{})
	if resp := routetest.Do(t, app, http.MethodDelete, "/api/buildings/abc", "", routetest.Admin...); resp.Status != http.StatusBadRequest {
		t.Fatalf("bad id: status %d", resp.Status)
	}
	if resp := routetest.Do(t, app, http.MethodDelete, "/api/buildings/88888888-8888-8888-8888-888888888888", "", routetest.Admin...); resp.Status != http.StatusNotFound {
		t.Fatalf("missing: status %d", resp.Status)
	}
}
