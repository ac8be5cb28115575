// internal/models/location.go
package models

import "gorm.io/gorm"

// Location is a TOB: a named site where vehicles are based.
type Location struct {
	gorm.Model
	Name      string `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	SortOrder int    `json:"sort_order" gorm:"default:1000"`

	// Site position stored as WKB (point, SRID 4326).
	// API input/output is GeoJSON; handlers convert at the boundary.
	Position []byte `gorm:"type:bytea" json:"-"`
}
