package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker is a member of the site workforce. Salary is the base pay for a standard month.
type Worker struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string          `json:"worker_code" gorm:"uniqueIndex;not null" validate:"required"`
	FullName    string          `json:"full_name" gorm:"not null" validate:"required"`
	Nationality string          `json:"nationality"`
	Position    string          `json:"position"`
	Status      WorkerStatus    `json:"status" gorm:"not null;type:varchar(20);default:'Active'"`
	Salary      decimal.Decimal `json:"salary" gorm:"type:numeric(14,2);default:0" validate:"gte=0"`
	Phone       string          `json:"phone,omitempty"`
	VisaExpiry  *time.Time      `json:"visa_expiry,omitempty" gorm:"type:date"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsActive reports whether the worker takes part in current-period aggregation.
func (w *Worker) IsActive() bool {
	return w.Status == WorkerActive
}
