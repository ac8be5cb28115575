// internal/models/vehicle.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Vehicle is one fleet vehicle. Reference FKs are RESTRICT so a reference
// row still in use cannot be deleted (surfaces as a 23503 to the handler).
// Maintenance logs cascade with the vehicle.
type Vehicle struct {
	gorm.Model
	UID     string `json:"uid" gorm:"uniqueIndex;not null"`
	Mileage int    `json:"mileage"`

	VehicleTypeID         uint `json:"vehicle_type_id"`
	LocationID            uint `json:"location_id"`
	VehicleStatusID       uint `json:"vehicle_status_id"`
	OperationalCategoryID uint `json:"operational_category_id"`

	// StatusChangedAt is stamped on every lifecycle-status change and
	// drives the dashboard's days-inactive count.
	StatusChangedAt time.Time `json:"status_changed_at"`

	// DeviceUserID links the synthetic vehicle_user credential created by
	// auto-provisioning, if any.
	DeviceUserID *uint `json:"device_user_id,omitempty"`

	VehicleType         VehicleType         `gorm:"foreignKey:VehicleTypeID;constraint:OnDelete:RESTRICT;" json:"vehicle_type,omitempty"`
	Location            Location            `gorm:"foreignKey:LocationID;constraint:OnDelete:RESTRICT;" json:"location,omitempty"`
	VehicleStatus       VehicleStatus       `gorm:"foreignKey:VehicleStatusID;constraint:OnDelete:RESTRICT;" json:"vehicle_status,omitempty"`
	OperationalCategory OperationalCategory `gorm:"foreignKey:OperationalCategoryID;constraint:OnDelete:RESTRICT;" json:"operational_category,omitempty"`

	MaintenanceLogs []MaintenanceLog `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE;" json:"maintenance_logs,omitempty"`
}
