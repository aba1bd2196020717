package database

import (
	"context"
	"database/sql"
	"time"

	"nfm-facility/app/models"
)

// ListWorkOrders returns work orders requested within [start, end] with their location and assignee names.
func ListWorkOrders(ctx context.Context, db *sql.DB, start, end time.Time) ([]models.WorkOrder, error) {
	query := `SELECT wo.id, COALESCE(wo.wo_number, ''), wo.title, COALESCE(wo.description, ''), wo.status,
			  COALESCE(wo.priority, ''), COALESCE(wo.category, ''), COALESCE(wo.location_type, ''),
			  wo.building_id, wo.wc_group_id, wo.assigned_worker_id, wo.requested_at, wo.sla_hours,
			  wo.target_date, wo.closed_at, wo.created_at,
			  COALESCE(b.name, ''), COALESCE(g.name, ''), COALESCE(w.full_name, '')
			  FROM work_orders wo
			  LEFT JOIN buildings b ON b.id = wo.building_id
			  LEFT JOIN wc_groups g ON g.id = wo.wc_group_id
			  LEFT JOIN workers w ON w.id = wo.assigned_worker_id
			  WHERE wo.requested_at::date BETWEEN $1 AND $2
			  ORDER BY wo.requested_at DESC`

	rows, err := db.QueryContext(ctx, query, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, wrap("list work orders", err)
	}
	defer rows.Close()

	orders := []models.WorkOrder{}
	for rows.Next() {
		var wo models.WorkOrder
		if err := rows.Scan(
			&wo.ID, &wo.Number, &wo.Title, &wo.Description, &wo.Status,
			&wo.Priority, &wo.Category, &wo.LocationType,
			&wo.BuildingID, &wo.WCGroupID, &wo.AssignedWorkerID, &wo.RequestedAt, &wo.SLAHours,
			&wo.TargetDate, &wo.ClosedAt, &wo.CreatedAt,
			&wo.BuildingName, &wo.WCGroupName, &wo.AssignedTo,
		); err != nil {
			return nil, wrap("scan work order", err)
		}
		orders = append(orders, wo)
	}
	return orders, wrap("list work orders", rows.Err())
}

func CreateWorkOrder(ctx context.Context, db *sql.DB, wo *models.WorkOrder) error {
	query := `INSERT INTO work_orders (wo_number, title, description, status, priority, category, location_type,
			  building_id, wc_group_id, assigned_worker_id, requested_at, sla_hours, target_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING id, created_at`
	err := db.QueryRowContext(ctx, query,
		wo.Number, wo.Title, wo.Description, wo.Status, wo.Priority, wo.Category, wo.LocationType,
		wo.BuildingID, wo.WCGroupID, wo.AssignedWorkerID, wo.RequestedAt, wo.SLAHours, wo.TargetDate,
	).Scan(&wo.ID, &wo.CreatedAt)
	return wrap("create work order", err)
}

// UpdateWorkOrderStatus moves an order to status. Closing statuses stamp closed_at once;
// reopening clears it.
func UpdateWorkOrderStatus(ctx context.Context, db *sql.DB, id string, status models.WorkOrderStatus, at time.Time) error {
	query := `UPDATE work_orders SET status = $1,
			  closed_at = CASE WHEN $2 THEN COALESCE(closed_at, $3) ELSE NULL END
			  WHERE id = $4`
	res, err := db.ExecContext(ctx, query, status, status.IsClosed(), at, id)
	if err != nil {
		return wrap("update work order", err)
	}
	return affected(res)
}

// LatestWorkOrderNumber returns the highest NPS-WO number issued so far, or "" when there is none.
func LatestWorkOrderNumber(ctx context.Context, db *sql.DB) (string, error) {
	var number string
	err := db.QueryRowContext(ctx, `SELECT wo_number FROM work_orders
			  WHERE wo_number LIKE 'NPS-WO-%'
			  ORDER BY length(wo_number) DESC, wo_number DESC
			  LIMIT 1`).Scan(&number)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return number, wrap("latest work order number", err)
}
