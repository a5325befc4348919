package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	RoomType   string `json:"roomType" gorm:"column:room_type;size:100;index"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`

	MaxGuests int     `json:"maxGuests" gorm:"column:max_guests;default:2"`
	BasePrice float64 `json:"basePrice" gorm:"column:base_price"`

	// 0 means "not configured"; pricing falls back to the default GST rate.
	GSTPercentage float64 `json:"gstPercentage" gorm:"column:gst_percentage"`

	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`
	BedType   string         `json:"bedType" gorm:"column:bed_type;size:50"`
	ViewType  string         `json:"viewType" gorm:"column:view_type;size:50"`
	Size      string         `json:"size" gorm:"size:50"`

	IsAvailable bool `json:"isAvailable" gorm:"column:is_available;default:true"`
	IsActive    bool `json:"isActive" gorm:"column:is_active;default:true"`

	Images datatypes.JSON `json:"images,omitempty" gorm:"column:images"`

	Description string `json:"description" gorm:"type:text"`
}
