package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"nfm-facility/app/models"
)

// DailyReportFilter narrows ListDailyReports. Zero values match everything.
type DailyReportFilter struct {
	Type          models.DailyReportType
	Status        models.DailyReportStatus
	WithWorkOrder bool
	Limit         int
}

// ListDailyReports returns the newest reports first with their location and work order labels.
func ListDailyReports(ctx context.Context, db *sql.DB, f DailyReportFilter) ([]models.DailyReport, error) {
	var where []string
	var args []any
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("dr.report_type = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("dr.status = $%d", len(args)))
	}
	if f.WithWorkOrder {
		where = append(where, "dr.work_order_id IS NOT NULL")
	}

	query := `SELECT dr.id, dr.report_date, dr.report_type, dr.status, dr.wc_group_id, dr.building_id,
			  dr.work_order_id, dr.summary, COALESCE(dr.notes, ''), dr.created_at,
			  COALESCE(b.name, ''), COALESCE(g.name, ''), COALESCE(wo.wo_number, '')
			  FROM daily_reports dr
			  LEFT JOIN buildings b ON b.id = dr.building_id
			  LEFT JOIN wc_groups g ON g.id = dr.wc_group_id
			  LEFT JOIN work_orders wo ON wo.id = dr.work_order_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY dr.report_date DESC, dr.created_at DESC LIMIT $%d", len(args))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("list daily reports", err)
	}
	defer rows.Close()

	reports := []models.DailyReport{}
	for rows.Next() {
		var r models.DailyReport
		if err := rows.Scan(&r.ID, &r.ReportDate, &r.Type, &r.Status, &r.WCGroupID, &r.BuildingID,
			&r.WorkOrderID, &r.Summary, &r.Notes, &r.CreatedAt,
			&r.BuildingName, &r.WCGroupName, &r.WorkOrderNumber); err != nil {
			return nil, wrap("scan daily report", err)
		}
		reports = append(reports, r)
	}
	return reports, wrap("list daily reports", rows.Err())
}

func CreateDailyReport(ctx context.Context, db *sql.DB, r *models.DailyReport) error {
	query := `INSERT INTO daily_reports (report_date, report_type, status, wc_group_id, building_id,
			  work_order_id, summary, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at`
	err := db.QueryRowContext(ctx, query,
		r.ReportDate.Format("2006-01-02"), r.Type, r.Status, r.WCGroupID, r.BuildingID,
		r.WorkOrderID, r.Summary, r.Notes,
	).Scan(&r.ID, &r.CreatedAt)
	return wrap("create daily report", err)
}

func DeleteDailyReport(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM daily_reports WHERE id = $1`, id)
	if err != nil {
		return wrap("delete daily report", err)
	}
	return affected(res)
}
