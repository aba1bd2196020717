package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a monthly facility-management invoice to the client.
type Invoice struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Number         string          `json:"invoice_no" gorm:"uniqueIndex;not null"`
	Year           int             `json:"year" gorm:"not null;index:idx_invoice_period"`
	Month          int             `json:"month" gorm:"not null;index:idx_invoice_period"`
	LabourTotal    decimal.Decimal `json:"labour_total" gorm:"type:numeric(16,2)"`
	FleetTotal     decimal.Decimal `json:"fleet_total" gorm:"type:numeric(16,2)"`
	OtherTotal     decimal.Decimal `json:"other_total" gorm:"type:numeric(16,2)"`
	OverheadPct    decimal.Decimal `json:"overhead_pct" gorm:"type:numeric(5,2)"`
	OverheadAmount decimal.Decimal `json:"overhead_amount" gorm:"type:numeric(16,2)"`
	GrandTotal     decimal.Decimal `json:"grand_total" gorm:"type:numeric(16,2)"`
	ClientName     string          `json:"client_name"`
	ContractRef    string          `json:"contract_ref"`
	Notes          string          `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
}
