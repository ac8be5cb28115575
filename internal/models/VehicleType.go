// internal/models/vehicle_type.go
package models

import "gorm.io/gorm"

// DefaultSortOrder is the fallback rank for reference rows created without
// an explicit order. It sorts after every deliberately curated row.
const DefaultSortOrder = 1000

// VehicleType is an admin-managed reference row. SortOrder is a manually
// curated display rank; every listing and report orders by it, never by
// name, so the chronology of vehicle classes stays meaningful.
type VehicleType struct {
	gorm.Model
	Name      string `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	SortOrder int    `json:"sort_order" gorm:"default:1000"`
}
