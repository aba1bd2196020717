package models

import "time"

// DailyReportType groups daily reports by what they cover.
type DailyReportType string

const (
	ReportWC       DailyReportType = "WC"
	ReportBuilding DailyReportType = "Building"
	ReportGeneral  DailyReportType = "General"
	ReportFleet    DailyReportType = "Fleet"
	ReportOther    DailyReportType = "Other"
)

// Valid reports whether t is a known report type.
func (t DailyReportType) Valid() bool {
	switch t {
	case ReportWC, ReportBuilding, ReportGeneral, ReportFleet, ReportOther:
		return true
	}
	return false
}

// DailyReportStatus is the supervisor's verdict for the day.
type DailyReportStatus string

const (
	ReportNormal   DailyReportStatus = "Normal"
	ReportIssue    DailyReportStatus = "Issue"
	ReportCritical DailyReportStatus = "Critical"
)

// Valid reports whether s is a known report status.
func (s DailyReportStatus) Valid() bool {
	return s == ReportNormal || s == ReportIssue || s == ReportCritical
}

// DailyReport is a supervisor's end-of-day note, optionally tied to a location or work order.
type DailyReport struct {
	ID          string            `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ReportDate  time.Time         `json:"report_date" gorm:"not null;index;type:date"`
	Type        DailyReportType   `json:"report_type" gorm:"not null;type:varchar(20)" validate:"required,oneof=WC Building General Fleet Other"`
	Status      DailyReportStatus `json:"status" gorm:"not null;type:varchar(20)" validate:"required,oneof=Normal Issue Critical"`
	WCGroupID   *string           `json:"wc_group_id,omitempty" gorm:"type:uuid"`
	BuildingID  *string           `json:"building_id,omitempty" gorm:"type:uuid"`
	WorkOrderID *string           `json:"work_order_id,omitempty" gorm:"type:uuid"`
	Summary     string            `json:"summary" gorm:"not null" validate:"required"`
	Notes       string            `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time         `json:"created_at" gorm:"autoCreateTime"`

	BuildingName    string `json:"building_name,omitempty" gorm:"-"`
	WCGroupName     string `json:"wc_group_name,omitempty" gorm:"-"`
	WorkOrderNumber string `json:"wo_number,omitempty" gorm:"-"`
}
