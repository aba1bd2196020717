package database

import (
	"context"
	"database/sql"
	"time"

	"nfm-facility/app/models"
)

func ListVehicles(ctx context.Context, db *sql.DB) ([]models.FleetVehicle, error) {
	query := `SELECT id, name, COALESCE(category, ''), COALESCE(plate_no, ''), hourly_rate, daily_rate, status, created_at
			  FROM fleet_vehicles
			  ORDER BY name`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("list vehicles", err)
	}
	defer rows.Close()

	vehicles := []models.FleetVehicle{}
	for rows.Next() {
		var v models.FleetVehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Category, &v.PlateNo, &v.HourlyRate, &v.DailyRate, &v.Status, &v.CreatedAt); err != nil {
			return nil, wrap("scan vehicle", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, wrap("list vehicles", rows.Err())
}

func CreateVehicle(ctx context.Context, db *sql.DB, v *models.FleetVehicle) error {
	query := `INSERT INTO fleet_vehicles (name, category, plate_no, hourly_rate, daily_rate, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`
	err := db.QueryRowContext(ctx, query, v.Name, v.Category, v.PlateNo, v.HourlyRate, v.DailyRate, v.Status).
		Scan(&v.ID, &v.CreatedAt)
	return wrap("create vehicle", err)
}

func UpdateVehicle(ctx context.Context, db *sql.DB, v *models.FleetVehicle) error {
	query := `UPDATE fleet_vehicles SET name = $1, category = $2, plate_no = $3, hourly_rate = $4,
			  daily_rate = $5, status = $6
			  WHERE id = $7`
	res, err := db.ExecContext(ctx, query, v.Name, v.Category, v.PlateNo, v.HourlyRate, v.DailyRate, v.Status, v.ID)
	if err != nil {
		return wrap("update vehicle", err)
	}
	return affected(res)
}

func DeleteVehicle(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM fleet_vehicles WHERE id = $1`, id)
	if err != nil {
		return wrap("delete vehicle", err)
	}
	return affected(res)
}

// ListFleetUsage returns timesheet lines dated within [start, end] with the vehicle's current hourly rate.
func ListFleetUsage(ctx context.Context, db *sql.DB, start, end time.Time) ([]models.FleetUsage, error) {
	query := `SELECT t.id, t.vehicle_id, t.worker_id, t.used_date, t.hours_used, COALESCE(t.notes, ''), t.created_at,
			  v.name, v.hourly_rate, COALESCE(w.full_name, '')
			  FROM fleet_timesheet t
			  JOIN fleet_vehicles v ON v.id = t.vehicle_id
			  LEFT JOIN workers w ON w.id = t.worker_id
			  WHERE t.used_date BETWEEN $1 AND $2
			  ORDER BY t.used_date, v.name`

	rows, err := db.QueryContext(ctx, query, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, wrap("list fleet usage", err)
	}
	defer rows.Close()

	usage := []models.FleetUsage{}
	for rows.Next() {
		var u models.FleetUsage
		if err := rows.Scan(
			&u.ID, &u.VehicleID, &u.WorkerID, &u.UsedDate, &u.HoursUsed, &u.Notes, &u.CreatedAt,
			&u.VehicleName, &u.HourlyRate, &u.WorkerName,
		); err != nil {
			return nil, wrap("scan fleet usage", err)
		}
		usage = append(usage, u)
	}
	return usage, wrap("list fleet usage", rows.Err())
}

func CreateFleetUsage(ctx context.Context, db *sql.DB, u *models.FleetUsage) error {
	query := `INSERT INTO fleet_timesheet (vehicle_id, worker_id, used_date, hours_used, notes)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	err := db.QueryRowContext(ctx, query, u.VehicleID, u.WorkerID, u.UsedDate, u.HoursUsed, u.Notes).
		Scan(&u.ID, &u.CreatedAt)
	return wrap("create fleet usage", err)
}
