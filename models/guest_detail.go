package models

import "time"

// GuestDetail is one occupant on a booking. The occupant count is bounded by
// the total capacity of the reserved rooms.
type GuestDetail struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`

	Name string `gorm:"size:255" json:"name"`
	Age  int    `json:"age"`
}
