package database

import (
	"context"
	"database/sql"

	"nfm-facility/app/models"
)

const inspectionColumns = `bi.id, bi.building_id, bi.inspected_at, COALESCE(bi.inspector_name, ''),
			  bi.cleanliness_rating, bi.safety_rating, bi.maintenance_rating, COALESCE(bi.comments, ''),
			  COALESCE(bi.photo_path, ''), bi.created_at, b.name`

func scanInspection(rows *sql.Rows, in *models.BuildingInspection) error {
	return rows.Scan(&in.ID, &in.BuildingID, &in.InspectedAt, &in.InspectorName,
		&in.CleanlinessRating, &in.SafetyRating, &in.MaintenanceRating, &in.Comments,
		&in.PhotoPath, &in.CreatedAt, &in.BuildingName)
}

// ListInspections returns the latest inspections across all buildings, newest first.
func ListInspections(ctx context.Context, db *sql.DB, limit int) ([]models.BuildingInspection, error) {
	query := `SELECT ` + inspectionColumns + `
			  FROM building_inspections bi
			  JOIN buildings b ON b.id = bi.building_id
			  ORDER BY bi.inspected_at DESC
			  LIMIT $1`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, wrap("list inspections", err)
	}
	defer rows.Close()

	inspections := []models.BuildingInspection{}
	for rows.Next() {
		var in models.BuildingInspection
		if err := scanInspection(rows, &in); err != nil {
			return nil, wrap("scan inspection", err)
		}
		inspections = append(inspections, in)
	}
	return inspections, wrap("list inspections", rows.Err())
}

func CreateInspection(ctx context.Context, db *sql.DB, in *models.BuildingInspection) error {
	query := `INSERT INTO building_inspections (building_id, inspected_at, inspector_name, cleanliness_rating,
			  safety_rating, maintenance_rating, comments)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at`
	err := db.QueryRowContext(ctx, query,
		in.BuildingID, in.InspectedAt, in.InspectorName, in.CleanlinessRating,
		in.SafetyRating, in.MaintenanceRating, in.Comments,
	).Scan(&in.ID, &in.CreatedAt)
	return wrap("create inspection", err)
}
