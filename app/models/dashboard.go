package models

import "time"

// DashboardStats is the overview shown on the landing page.
type DashboardStats struct {
	ActiveWorkers   int             `json:"active_workers"`
	WorkOrders      map[string]int  `json:"work_orders"`
	TodayAttendance map[string]int  `json:"today_attendance"`
	AttendanceTrend []AttendanceDay `json:"attendance_trend"`
	FleetHours      []VehicleHours  `json:"fleet_hours"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// AttendanceDay counts statuses recorded on one date.
type AttendanceDay struct {
	Date    time.Time `json:"date"`
	Present int       `json:"present"`
	Absent  int       `json:"absent"`
	Leave   int       `json:"leave"`
	Off     int       `json:"off"`
}

// VehicleHours is the usage of one vehicle over the dashboard window.
type VehicleHours struct {
	VehicleName string  `json:"vehicle_name"`
	Hours       float64 `json:"hours"`
}
