package models

import (
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `gorm:"uniqueIndex;size:150" json:"email"`
	Phone    string `gorm:"size:20;index" json:"phone"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never returned

	PhoneVerified bool `gorm:"column:phone_verified;default:false" json:"phoneVerified"`
}
