// internal/models/operational_category.go
package models

import "gorm.io/gorm"

// OperationalCategory is the readiness classification reference list
// (fully mission capable, degraded, non-mission capable, ...).
type OperationalCategory struct {
	gorm.Model
	Name      string `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	SortOrder int    `json:"sort_order" gorm:"default:1000"`
}
