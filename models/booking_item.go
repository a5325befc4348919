package models

import (
	"time"

	"gorm.io/gorm"
)

// BookingItem reserves one room unit for the parent booking's date range.
// Dates are denormalized onto the item so overlap queries don't need a join
// back to bookings for the interval.
type BookingItem struct {
	gorm.Model

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`
	RoomID    uint `gorm:"index;column:room_id" json:"room_id"`

	CheckIn  time.Time `gorm:"column:check_in;index" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"check_out"`

	// Occupancy status of this unit only; payment lives on the parent order.
	Status string `gorm:"column:status;size:32" json:"status"`

	NightlyRate float64 `gorm:"column:nightly_rate" json:"nightly_rate"`
	Nights      int     `gorm:"column:nights" json:"nights"`
	LineCharges float64 `gorm:"column:line_charges" json:"line_charges"`
	LineGST     float64 `gorm:"column:line_gst" json:"line_gst"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
