package models

import "time"

// AttendanceRecord is one worker's attendance for one calendar date.
// Hours are only meaningful for Present rows; other statuses are saved with zero hours.
type AttendanceRecord struct {
	ID            string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	WorkerID      string           `json:"worker_id" gorm:"not null;uniqueIndex:idx_attendance_worker_date;type:uuid" validate:"required,uuid"`
	Date          time.Time        `json:"att_date" gorm:"not null;uniqueIndex:idx_attendance_worker_date;type:date" validate:"required"`
	Status        AttendanceStatus `json:"status" gorm:"not null;type:varchar(10)" validate:"required,oneof=Present Absent Leave Off"`
	InTime        string           `json:"in_time,omitempty" gorm:"type:time"`
	OutTime       string           `json:"out_time,omitempty" gorm:"type:time"`
	HoursWorked   float64          `json:"hours_worked" gorm:"type:numeric(6,2);default:0"`
	OvertimeHours float64          `json:"overtime_hours" gorm:"type:numeric(6,2);default:0"`
	Notes         string           `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time        `json:"updated_at" gorm:"autoUpdateTime"`

	Worker *Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID;references:ID"`
}
