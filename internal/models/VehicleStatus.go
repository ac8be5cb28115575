// internal/models/vehicle_status.go
package models

import "gorm.io/gorm"

// Lifecycle status names seeded on first start.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// VehicleStatus is the lifecycle-status reference list (Active/Inactive
// plus whatever an admin adds later).
type VehicleStatus struct {
	gorm.Model
	Name      string `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	SortOrder int    `json:"sort_order" gorm:"default:1000"`
}
