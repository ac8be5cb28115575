package models

import "gorm.io/gorm"

// User is a credential record. Everything role-related lives on the
// associated Profile; a User without a Profile can authenticate but is
// denied by the session resolver on every protected route.
type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile,omitempty"`
}
