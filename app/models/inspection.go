package models

import "time"

// BuildingInspection scores a building on a 1 to 5 scale per area.
// PhotoPath is read back for rows that already reference a stored photo.
type BuildingInspection struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BuildingID        string    `json:"building_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	InspectedAt       time.Time `json:"inspected_at" gorm:"not null;index"`
	InspectorName     string    `json:"inspector_name"`
	CleanlinessRating int       `json:"cleanliness_rating" validate:"min=1,max=5"`
	SafetyRating      int       `json:"safety_rating" validate:"min=1,max=5"`
	MaintenanceRating int       `json:"maintenance_rating" validate:"min=1,max=5"`
	Comments          string    `json:"comments" gorm:"type:text"`
	PhotoPath         string    `json:"photo_path,omitempty"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`

	BuildingName string `json:"building_name,omitempty" gorm:"-"`
}
