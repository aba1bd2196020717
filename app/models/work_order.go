package models

import "time"

// WorkOrder is a maintenance or cleaning job raised against a building or WC group.
type WorkOrder struct {
	ID               string            `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Number           string            `json:"wo_number" gorm:"uniqueIndex"`
	Title            string            `json:"title" gorm:"not null" validate:"required"`
	Description      string            `json:"description" gorm:"type:text"`
	Status           WorkOrderStatus   `json:"status" gorm:"not null;type:varchar(20);default:'Open'"`
	Priority         WorkOrderPriority `json:"priority" gorm:"type:varchar(20);default:'Medium'"`
	Category         string            `json:"category"`
	LocationType     string            `json:"location_type"` // building | wc_group
	BuildingID       *string           `json:"building_id,omitempty" gorm:"type:uuid"`
	WCGroupID        *string           `json:"wc_group_id,omitempty" gorm:"type:uuid"`
	AssignedWorkerID *string           `json:"assigned_worker_id,omitempty" gorm:"index;type:uuid"`
	RequestedAt      time.Time         `json:"requested_at" gorm:"not null;index"`
	SLAHours         int               `json:"sla_hours" gorm:"default:0"`
	TargetDate       *time.Time        `json:"target_date,omitempty" gorm:"type:date"`
	ClosedAt         *time.Time        `json:"closed_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at" gorm:"autoCreateTime"`

	BuildingName string `json:"building_name,omitempty" gorm:"-"`
	WCGroupName  string `json:"wc_group_name,omitempty" gorm:"-"`
	AssignedTo   string `json:"assigned_to,omitempty" gorm:"-"`
}
