// internal/models/tob_report.go
package models

import "gorm.io/gorm"

// TobReport is a free-text remark keyed by location name, upserted by
// editors from the location overview.
type TobReport struct {
	gorm.Model
	LocationName string `json:"location_name" gorm:"uniqueIndex;not null" binding:"required"`
	Remark       string `json:"remark"`
}
