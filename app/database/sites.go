package database

import (
	"context"
	"database/sql"

	"nfm-facility/app/models"
)

func ListBuildings(ctx context.Context, db *sql.DB) ([]models.Building, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, COALESCE(zone, ''), COALESCE(notes, ''), created_at
			  FROM buildings ORDER BY name`)
	if err != nil {
		return nil, wrap("list buildings", err)
	}
	defer rows.Close()

	buildings := []models.Building{}
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Zone, &b.Notes, &b.CreatedAt); err != nil {
			return nil, wrap("scan building", err)
		}
		buildings = append(buildings, b)
	}
	return buildings, wrap("list buildings", rows.Err())
}

func CreateBuilding(ctx context.Context, db *sql.DB, b *models.Building) error {
	err := db.QueryRowContext(ctx, `INSERT INTO buildings (name, zone, notes) VALUES ($1, $2, $3)
			  RETURNING id, created_at`, b.Name, b.Zone, b.Notes).Scan(&b.ID, &b.CreatedAt)
	return wrap("create building", err)
}

func DeleteBuilding(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM buildings WHERE id = $1`, id)
	if err != nil {
		return wrap("delete building", err)
	}
	return affected(res)
}

func ListWCGroups(ctx context.Context, db *sql.DB) ([]models.WCGroup, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, COALESCE(location, ''), COALESCE(notes, ''), created_at
			  FROM wc_groups ORDER BY name`)
	if err != nil {
		return nil, wrap("list wc groups", err)
	}
	defer rows.Close()

	groups := []models.WCGroup{}
	for rows.Next() {
		var g models.WCGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Location, &g.Notes, &g.CreatedAt); err != nil {
			return nil, wrap("scan wc group", err)
		}
		groups = append(groups, g)
	}
	return groups, wrap("list wc groups", rows.Err())
}

func CreateWCGroup(ctx context.Context, db *sql.DB, g *models.WCGroup) error {
	err := db.QueryRowContext(ctx, `INSERT INTO wc_groups (name, location, notes) VALUES ($1, $2, $3)
			  RETURNING id, created_at`, g.Name, g.Location, g.Notes).Scan(&g.ID, &g.CreatedAt)
	return wrap("create wc group", err)
}

func DeleteWCGroup(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM wc_groups WHERE id = $1`, id)
	if err != nil {
		return wrap("delete wc group", err)
	}
	return affected(res)
}
