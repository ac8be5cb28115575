// internal/models/profile.go
package models

import "gorm.io/gorm"

// Role values carried on a profile. Exact string match everywhere.
const (
	RoleSuperAdmin  = "super_admin"
	RoleAdmin       = "admin"
	RoleTobAdmin    = "tob_admin"
	RoleVehicleUser = "vehicle_user"
)

// Profile carries the role and scope assignments for one User.
type Profile struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"uniqueIndex"`
	Role   string `json:"role"`

	// AssignedTOB scopes a tob_admin to one location by name.
	AssignedTOB string `json:"assigned_tob,omitempty"`

	// AssignedVehicleID binds a vehicle_user device account to its vehicle.
	AssignedVehicleID *uint `json:"assigned_vehicle_id,omitempty"`
}

// ValidRole reports whether s is one of the four known roles.
func ValidRole(s string) bool {
	switch s {
	case RoleSuperAdmin, RoleAdmin, RoleTobAdmin, RoleVehicleUser:
		return true
	}
	return false
}
