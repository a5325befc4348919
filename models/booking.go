package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. The order owns payment status and aggregate amounts;
// each BookingItem owns only its own occupancy status.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending             = "pending"
	PaymentStatusVerificationPending = "verification_pending"
	PaymentStatusPaid                = "paid"
	PaymentStatusFailed              = "failed"
)

const (
	BookingForSelf     = "self"
	BookingForRelative = "relative"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingNumber string `gorm:"column:booking_number;uniqueIndex;size:32" json:"booking_number"`
	CustomerID    uint   `gorm:"index;column:customer_id" json:"customer_id"`

	CheckIn  time.Time `gorm:"column:check_in;index" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"check_out"`

	Status        string `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32;index" json:"payment_status"`

	GuestName string `gorm:"column:guest_name;size:255" json:"guest_name"`
	Email     string `gorm:"size:150" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	Address   string `gorm:"type:text" json:"address"`
	City      string `gorm:"size:100" json:"city"`
	State     string `gorm:"size:100" json:"state"`
	Pincode   string `gorm:"size:10" json:"pincode"`

	IDType   string `gorm:"column:id_type;size:50" json:"id_type"`
	IDNumber string `gorm:"column:id_number;size:50" json:"id_number"`

	// Opaque storage paths keyed by document kind (government_id, bank_id,
	// employee_id, guest_id). Served to admins through signed URLs only.
	DocumentPaths datatypes.JSON `gorm:"column:document_paths" json:"document_paths,omitempty"`

	BookingFor       string `gorm:"column:booking_for;size:20;default:self" json:"booking_for"`
	RelativeIDType   string `gorm:"column:relative_id_type;size:50" json:"relative_id_type,omitempty"`
	RelativeIDNumber string `gorm:"column:relative_id_number;size:50" json:"relative_id_number,omitempty"`

	NumGuests       int    `gorm:"column:num_guests;default:1" json:"num_guests"`
	SpecialRequests string `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`

	// Derived at creation; RoomCharges + GSTAmount == TotalAmount.
	RoomCharges   float64 `gorm:"column:room_charges" json:"room_charges"`
	GSTAmount     float64 `gorm:"column:gst_amount" json:"gst_amount"`
	TotalAmount   float64 `gorm:"column:total_amount" json:"total_amount"`
	AdvancePaid   float64 `gorm:"column:advance_paid" json:"advance_paid"`
	BalanceAmount float64 `gorm:"column:balance_amount" json:"balance_amount"`

	Items    []BookingItem `gorm:"foreignKey:BookingID" json:"items"`
	Guests   []GuestDetail `gorm:"foreignKey:BookingID" json:"guests,omitempty"`
	Payments []Payment     `gorm:"foreignKey:BookingID" json:"payments,omitempty"`

	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
}

// IsActiveStatus reports whether the booking still holds inventory or has
// held it (everything except cancelled).
func (b Booking) IsActiveStatus() bool {
	return b.Status != BookingStatusCancelled
}
