package models

import "time"

// Payment is a record of a payment event against a booking. The gateway
// handshake itself is external; only the outcome is stored here.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	BookingID uint    `gorm:"index;column:booking_id" json:"booking_id"`
	Amount    float64 `json:"amount"`
	Method    string  `gorm:"size:50" json:"method"`
	Reference string  `gorm:"size:100" json:"reference"`
	Status    string  `gorm:"size:32" json:"status"`
	Notes     string  `gorm:"type:text" json:"notes,omitempty"`
}
