package database

import (
	"context"
	"database/sql"
	"time"

	"nfm-facility/app/models"
)

const attendanceColumns = `a.id, a.worker_id, a.att_date, a.status,
	COALESCE(to_char(a.in_time, 'HH24:MI'), ''), COALESCE(to_char(a.out_time, 'HH24:MI'), ''),
	a.hours_worked, a.overtime_hours, COALESCE(a.notes, ''), a.created_at, a.updated_at`

// UpsertAttendance saves a worker's attendance for one date, replacing any earlier entry for that date.
func UpsertAttendance(ctx context.Context, db *sql.DB, rec *models.AttendanceRecord) error {
	query := `INSERT INTO attendance (worker_id, att_date, status, in_time, out_time, hours_worked, overtime_hours, notes)
			  VALUES ($1, $2, $3, NULLIF($4, '')::time, NULLIF($5, '')::time, $6, $7, $8)
			  ON CONFLICT (worker_id, att_date)
			  DO UPDATE SET status = EXCLUDED.status, in_time = EXCLUDED.in_time, out_time = EXCLUDED.out_time,
			  hours_worked = EXCLUDED.hours_worked, overtime_hours = EXCLUDED.overtime_hours,
			  notes = EXCLUDED.notes, updated_at = NOW()
			  RETURNING id, created_at, updated_at`

	err := db.QueryRowContext(ctx, query,
		rec.WorkerID, rec.Date, rec.Status, rec.InTime, rec.OutTime, rec.HoursWorked, rec.OvertimeHours, rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	return wrap("save attendance", err)
}

// ListAttendance returns every attendance row dated within [start, end].
// An empty slice means nothing was recorded; a failed query is always an error.
func ListAttendance(ctx context.Context, db *sql.DB, start, end time.Time) ([]models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance a
			  WHERE a.att_date BETWEEN $1 AND $2
			  ORDER BY a.att_date, a.worker_id`

	rows, err := db.QueryContext(ctx, query, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, wrap("list attendance", err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		var r models.AttendanceRecord
		if err := rows.Scan(
			&r.ID, &r.WorkerID, &r.Date, &r.Status, &r.InTime, &r.OutTime,
			&r.HoursWorked, &r.OvertimeHours, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, wrap("scan attendance", err)
		}
		records = append(records, r)
	}
	return records, wrap("list attendance", rows.Err())
}

// RecentAttendance returns a worker's latest entries, newest first.
func RecentAttendance(ctx context.Context, db *sql.DB, workerID string, limit int) ([]models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + `, w.worker_code, w.full_name
			  FROM attendance a
			  JOIN workers w ON w.id = a.worker_id
			  WHERE a.worker_id = $1
			  ORDER BY a.att_date DESC
			  LIMIT $2`

	rows, err := db.QueryContext(ctx, query, workerID, limit)
	if err != nil {
		return nil, wrap("recent attendance", err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		var r models.AttendanceRecord
		w := &models.Worker{}
		if err := rows.Scan(
			&r.ID, &r.WorkerID, &r.Date, &r.Status, &r.InTime, &r.OutTime,
			&r.HoursWorked, &r.OvertimeHours, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
			&w.Code, &w.FullName,
		); err != nil {
			return nil, wrap("scan attendance", err)
		}
		w.ID = r.WorkerID
		r.Worker = w
		records = append(records, r)
	}
	return records, wrap("recent attendance", rows.Err())
}
