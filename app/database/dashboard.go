package database

import (
	"context"
	"database/sql"
	"time"

	"nfm-facility/app/models"
)

const (
	trendDays      = 14
	fleetTrendDays = 30
)

// GetDashboardStats returns the counters and trends for the landing page.
func GetDashboardStats(ctx context.Context, db *sql.DB, today time.Time) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{
		WorkOrders:      map[string]int{},
		TodayAttendance: map[string]int{},
		AttendanceTrend: []models.AttendanceDay{},
		FleetHours:      []models.VehicleHours{},
		GeneratedAt:     time.Now(),
	}
	day := today.Format("2006-01-02")

	// 1. Active workers
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workers WHERE status = 'Active'").Scan(&stats.ActiveWorkers)
	if err != nil {
		return nil, wrap("count workers", err)
	}

	// 2. Work orders by status
	if err := countInto(ctx, db, stats.WorkOrders, "count work orders",
		`SELECT status, COUNT(*) FROM work_orders GROUP BY status`); err != nil {
		return nil, err
	}

	// 3. Today's attendance by status
	if err := countInto(ctx, db, stats.TodayAttendance, "count attendance",
		`SELECT status, COUNT(*) FROM attendance WHERE att_date = $1 GROUP BY status`, day); err != nil {
		return nil, err
	}

	// 4. Attendance trend
	rows, err := db.QueryContext(ctx, `
		SELECT att_date,
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent'),
			COUNT(*) FILTER (WHERE status = 'Leave'),
			COUNT(*) FILTER (WHERE status = 'Off')
		FROM attendance
		WHERE att_date > $1::date - $2::int AND att_date <= $1::date
		GROUP BY att_date
		ORDER BY att_date`, day, trendDays)
	if err != nil {
		return nil, wrap("attendance trend", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d models.AttendanceDay
		if err := rows.Scan(&d.Date, &d.Present, &d.Absent, &d.Leave, &d.Off); err != nil {
			return nil, wrap("scan attendance trend", err)
		}
		stats.AttendanceTrend = append(stats.AttendanceTrend, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("attendance trend", err)
	}

	// 5. Fleet hours per vehicle
	fleetRows, err := db.QueryContext(ctx, `
		SELECT v.name, COALESCE(SUM(t.hours_used), 0)
		FROM fleet_timesheet t
		JOIN fleet_vehicles v ON v.id = t.vehicle_id
		WHERE t.used_date > $1::date - $2::int AND t.used_date <= $1::date
		GROUP BY v.name
		ORDER BY 2 DESC`, day, fleetTrendDays)
	if err != nil {
		return nil, wrap("fleet hours", err)
	}
	defer fleetRows.Close()
	for fleetRows.Next() {
		var vh models.VehicleHours
		if err := fleetRows.Scan(&vh.VehicleName, &vh.Hours); err != nil {
			return nil, wrap("scan fleet hours", err)
		}
		stats.FleetHours = append(stats.FleetHours, vh)
	}
	if err := fleetRows.Err(); err != nil {
		return nil, wrap("fleet hours", err)
	}

	return stats, nil
}

func countInto(ctx context.Context, db *sql.DB, into map[string]int, op, query string, args ...any) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return wrap(op, err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return wrap(op, err)
		}
		into[status] = n
	}
	return wrap(op, rows.Err())
}
