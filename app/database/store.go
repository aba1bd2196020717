package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"nfm-facility/app/metrics"
	"nfm-facility/app/models"
)

var (
	// ErrNotFound is returned when a lookup by id or key matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")
	// ErrReference is returned when a row points at a parent that does not exist.
	ErrReference = errors.New("referenced record does not exist")
)

// wrap classifies driver errors and counts failures per operation.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		case "23503":
			return fmt.Errorf("%s: %w", op, ErrReference)
		}
	}
	metrics.StoreErrors.WithLabelValues(op).Inc()
	return fmt.Errorf("%s: %w", op, err)
}

// Store binds the query functions of this package to one connection pool.
// Route packages depend on narrow interfaces that Store satisfies.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return wrap("ping", s.db.PingContext(ctx))
}

func (s *Store) ListWorkers(ctx context.Context, onlyActive bool) ([]models.Worker, error) {
	return ListWorkers(ctx, s.db, onlyActive)
}

func (s *Store) GetWorker(ctx context.Context, id string) (*models.Worker, error) {
	return GetWorkerByID(ctx, s.db, id)
}

func (s *Store) CreateWorker(ctx context.Context, w *models.Worker) error {
	return CreateWorker(ctx, s.db, w)
}

func (s *Store) UpdateWorker(ctx context.Context, w *models.Worker) error {
	return UpdateWorker(ctx, s.db, w)
}

func (s *Store) DeleteWorker(ctx context.Context, id string) error {
	return DeleteWorker(ctx, s.db, id)
}

func (s *Store) ListAttendance(ctx context.Context, start, end time.Time) ([]models.AttendanceRecord, error) {
	return ListAttendance(ctx, s.db, start, end)
}

func (s *Store) RecentAttendance(ctx context.Context, workerID string, limit int) ([]models.AttendanceRecord, error) {
	return RecentAttendance(ctx, s.db, workerID, limit)
}

func (s *Store) SaveAttendance(ctx context.Context, rec *models.AttendanceRecord) error {
	return UpsertAttendance(ctx, s.db, rec)
}

func (s *Store) ListWorkOrders(ctx context.Context, start, end time.Time) ([]models.WorkOrder, error) {
	return ListWorkOrders(ctx, s.db, start, end)
}

func (s *Store) CreateWorkOrder(ctx context.Context, wo *models.WorkOrder) error {
	return CreateWorkOrder(ctx, s.db, wo)
}

func (s *Store) UpdateWorkOrderStatus(ctx context.Context, id string, status models.WorkOrderStatus, at time.Time) error {
	return UpdateWorkOrderStatus(ctx, s.db, id, status, at)
}

func (s *Store) LatestWorkOrderNumber(ctx context.Context) (string, error) {
	return LatestWorkOrderNumber(ctx, s.db)
}

func (s *Store) ListVehicles(ctx context.Context) ([]models.FleetVehicle, error) {
	return ListVehicles(ctx, s.db)
}

func (s *Store) CreateVehicle(ctx context.Context, v *models.FleetVehicle) error {
	return CreateVehicle(ctx, s.db, v)
}

func (s *Store) UpdateVehicle(ctx context.Context, v *models.FleetVehicle) error {
	return UpdateVehicle(ctx, s.db, v)
}

func (s *Store) DeleteVehicle(ctx context.Context, id string) error {
	return DeleteVehicle(ctx, s.db, id)
}

func (s *Store) ListFleetUsage(ctx context.Context, start, end time.Time) ([]models.FleetUsage, error) {
	return ListFleetUsage(ctx, s.db, start, end)
}

func (s *Store) CreateFleetUsage(ctx context.Context, u *models.FleetUsage) error {
	return CreateFleetUsage(ctx, s.db, u)
}

func (s *Store) ListInvoices(ctx context.Context, limit int) ([]models.Invoice, error) {
	return ListInvoices(ctx, s.db, limit)
}

func (s *Store) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	return CreateInvoice(ctx, s.db, inv)
}

func (s *Store) LatestInvoiceNumber(ctx context.Context, year, month int) (string, error) {
	return LatestInvoiceNumber(ctx, s.db, year, month)
}

func (s *Store) ListBuildings(ctx context.Context) ([]models.Building, error) {
	return ListBuildings(ctx, s.db)
}

func (s *Store) CreateBuilding(ctx context.Context, b *models.Building) error {
	return CreateBuilding(ctx, s.db, b)
}

func (s *Store) DeleteBuilding(ctx context.Context, id string) error {
	return DeleteBuilding(ctx, s.db, id)
}

func (s *Store) ListWCGroups(ctx context.Context) ([]models.WCGroup, error) {
	return ListWCGroups(ctx, s.db)
}

func (s *Store) CreateWCGroup(ctx context.Context, g *models.WCGroup) error {
	return CreateWCGroup(ctx, s.db, g)
}

func (s *Store) DeleteWCGroup(ctx context.Context, id string) error {
	return DeleteWCGroup(ctx, s.db, id)
}

func (s *Store) ListDailyReports(ctx context.Context, f DailyReportFilter) ([]models.DailyReport, error) {
	return ListDailyReports(ctx, s.db, f)
}

func (s *Store) CreateDailyReport(ctx context.Context, r *models.DailyReport) error {
	return CreateDailyReport(ctx, s.db, r)
}

func (s *Store) DeleteDailyReport(ctx context.Context, id string) error {
	return DeleteDailyReport(ctx, s.db, id)
}

func (s *Store) ListInspections(ctx context.Context, limit int) ([]models.BuildingInspection, error) {
	return ListInspections(ctx, s.db, limit)
}

func (s *Store) CreateInspection(ctx context.Context, in *models.BuildingInspection) error {
	return CreateInspection(ctx, s.db, in)
}

func (s *Store) DashboardStats(ctx context.Context, today time.Time) (*models.DashboardStats, error) {
	return GetDashboardStats(ctx, s.db, today)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return GetUserByEmail(ctx, s.db, email)
}

func (s *Store) GetUserRoles(ctx context.Context, userID string) ([]*models.Role, error) {
	return GetUserRoles(ctx, s.db, userID)
}

func (s *Store) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	return UpdateUserPassword(ctx, s.db, userID, hashedPassword)
}
