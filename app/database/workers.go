package database

import (
	"context"
	"database/sql"

	"nfm-facility/app/models"
)

const workerColumns = `id, worker_code, full_name, COALESCE(nationality, ''), COALESCE(position, ''),
	status, salary, COALESCE(phone, ''), visa_expiry, created_at, updated_at`

func scanWorker(row interface{ Scan(...any) error }, w *models.Worker) error {
	return row.Scan(
		&w.ID, &w.Code, &w.FullName, &w.Nationality, &w.Position,
		&w.Status, &w.Salary, &w.Phone, &w.VisaExpiry, &w.CreatedAt, &w.UpdatedAt,
	)
}

// ListWorkers returns the roster ordered by worker code.
func ListWorkers(ctx context.Context, db *sql.DB, onlyActive bool) ([]models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers`
	if onlyActive {
		query += ` WHERE status = 'Active'`
	}
	query += ` ORDER BY worker_code`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("list workers", err)
	}
	defer rows.Close()

	workers := []models.Worker{}
	for rows.Next() {
		var w models.Worker
		if err := scanWorker(rows, &w); err != nil {
			return nil, wrap("scan worker", err)
		}
		workers = append(workers, w)
	}
	return workers, wrap("list workers", rows.Err())
}

func GetWorkerByID(ctx context.Context, db *sql.DB, id string) (*models.Worker, error) {
	w := &models.Worker{}
	row := db.QueryRowContext(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id)
	if err := scanWorker(row, w); err != nil {
		return nil, wrap("get worker", err)
	}
	return w, nil
}

func CreateWorker(ctx context.Context, db *sql.DB, w *models.Worker) error {
	query := `INSERT INTO workers (worker_code, full_name, nationality, position, status, salary, phone, visa_expiry)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRowContext(ctx, query,
		w.Code, w.FullName, w.Nationality, w.Position, w.Status, w.Salary, w.Phone, w.VisaExpiry,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	return wrap("create worker", err)
}

func UpdateWorker(ctx context.Context, db *sql.DB, w *models.Worker) error {
	query := `UPDATE workers SET worker_code = $1, full_name = $2, nationality = $3, position = $4,
			  status = $5, salary = $6, phone = $7, visa_expiry = $8, updated_at = NOW()
			  WHERE id = $9
			  RETURNING updated_at`
	err := db.QueryRowContext(ctx, query,
		w.Code, w.FullName, w.Nationality, w.Position, w.Status, w.Salary, w.Phone, w.VisaExpiry, w.ID,
	).Scan(&w.UpdatedAt)
	return wrap("update worker", err)
}

func DeleteWorker(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return wrap("delete worker", err)
	}
	return affected(res)
}

// affected maps a zero-row update or delete to ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
