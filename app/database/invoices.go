package database

import (
	"context"
	"database/sql"
	"fmt"

	"nfm-facility/app/models"
)

func CreateInvoice(ctx context.Context, db *sql.DB, inv *models.Invoice) error {
	query := `INSERT INTO invoices (invoice_no, year, month, labour_total, fleet_total, other_total,
			  overhead_pct, overhead_amount, grand_total, client_name, contract_ref, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id, created_at`
	err := db.QueryRowContext(ctx, query,
		inv.Number, inv.Year, inv.Month, inv.LabourTotal, inv.FleetTotal, inv.OtherTotal,
		inv.OverheadPct, inv.OverheadAmount, inv.GrandTotal, inv.ClientName, inv.ContractRef, inv.Notes,
	).Scan(&inv.ID, &inv.CreatedAt)
	return wrap("create invoice", err)
}

// ListInvoices returns the most recent invoices, newest first.
func ListInvoices(ctx context.Context, db *sql.DB, limit int) ([]models.Invoice, error) {
	query := `SELECT id, invoice_no, year, month, labour_total, fleet_total, other_total, overhead_pct,
			  overhead_amount, grand_total, COALESCE(client_name, ''), COALESCE(contract_ref, ''),
			  COALESCE(notes, ''), created_at
			  FROM invoices
			  ORDER BY created_at DESC
			  LIMIT $1`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, wrap("list invoices", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.Number, &inv.Year, &inv.Month, &inv.LabourTotal, &inv.FleetTotal, &inv.OtherTotal,
			&inv.OverheadPct, &inv.OverheadAmount, &inv.GrandTotal, &inv.ClientName, &inv.ContractRef,
			&inv.Notes, &inv.CreatedAt,
		); err != nil {
			return nil, wrap("scan invoice", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, wrap("list invoices", rows.Err())
}

// LatestInvoiceNumber returns the highest invoice number issued for the month, or "" when there is none.
func LatestInvoiceNumber(ctx context.Context, db *sql.DB, year, month int) (string, error) {
	prefix := fmt.Sprintf("INV-%04d%02d-", year, month)
	var number string
	err := db.QueryRowContext(ctx, `SELECT invoice_no FROM invoices
			  WHERE invoice_no LIKE $1
			  ORDER BY length(invoice_no) DESC, invoice_no DESC
			  LIMIT 1`, prefix+"%").Scan(&number)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return number, wrap("latest invoice number", err)
}
