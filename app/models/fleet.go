package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FleetVehicle is a vehicle or piece of equipment billed by the hour.
type FleetVehicle struct {
	ID         string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name       string          `json:"name" gorm:"not null" validate:"required"`
	Category   string          `json:"category"`
	PlateNo    string          `json:"plate_no"`
	HourlyRate decimal.Decimal `json:"hourly_rate" gorm:"type:numeric(14,2);default:0"`
	DailyRate  decimal.Decimal `json:"daily_rate" gorm:"type:numeric(14,2);default:0"`
	Status     VehicleStatus   `json:"status" gorm:"type:varchar(20);default:'Available'"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// FleetUsage is one fleet timesheet line: a vehicle operated by a worker on a date.
type FleetUsage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	VehicleID string    `json:"vehicle_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	WorkerID  *string   `json:"worker_id,omitempty" gorm:"index;type:uuid"`
	UsedDate  time.Time `json:"used_date" gorm:"not null;index;type:date"`
	HoursUsed float64   `json:"hours_used" gorm:"type:numeric(6,2);default:0"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	VehicleName string          `json:"vehicle_name,omitempty" gorm:"-"`
	HourlyRate  decimal.Decimal `json:"hourly_rate" gorm:"-"`
	WorkerName  string          `json:"worker_name,omitempty" gorm:"-"`
}

// Cost is the billable amount of the line at the vehicle's hourly rate.
func (u *FleetUsage) Cost() decimal.Decimal {
	return u.HourlyRate.Mul(decimal.NewFromFloat(u.HoursUsed))
}
