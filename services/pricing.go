package services

import (
	"math"
	"time"

	"guesthouse-backend/models"
)

// DefaultGSTPercent is the fallback tax rate used when a room's exact GST
// rate is not known at pricing time (the cart snapshot does not carry one).
const DefaultGSTPercent = 12.0

// Totals is the result of one pricing computation. GrandTotal is always
// exactly Subtotal + Tax.
type Totals struct {
	Nights     int     `json:"nights"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grandTotal"`
}

// Nights counts billable nights as ceil of the elapsed duration in days.
// A 14:00 check-in to 11:00 check-out three days later is 3 nights.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// GSTRateFor resolves the effective GST percentage for a room: the live rate
// when the room is in the map and has one configured, else the default.
func GSTRateFor(roomID uint, gstByRoom map[uint]float64) float64 {
	if rate, ok := gstByRoom[roomID]; ok && rate > 0 {
		return rate
	}
	return DefaultGSTPercent
}

// ComputeTotals prices the cart for the given stay. gstByRoom carries the
// live per-room GST rates when known. zeroRate is the special-discount mode
// for admin offline bookings: every effective nightly price becomes 0, so
// GST drops out with it. Never reachable from customer checkout.
func ComputeTotals(entries []models.CartEntry, checkIn, checkOut time.Time, gstByRoom map[uint]float64, zeroRate bool) Totals {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return Totals{}
	}

	t := Totals{Nights: nights}
	for _, entry := range entries {
		if entry.Quantity <= 0 {
			continue
		}
		price := entry.Price
		if zeroRate {
			price = 0
		}
		lineSubtotal := price * float64(entry.Quantity) * float64(nights)
		lineTax := lineSubtotal * GSTRateFor(entry.RoomID, gstByRoom) / 100
		t.Subtotal += lineSubtotal
		t.Tax += lineTax
	}
	t.GrandTotal = t.Subtotal + t.Tax
	return t
}

// CartCapacity is the maximum occupant count the selection can host.
func CartCapacity(entries []models.CartEntry) int {
	total := 0
	for _, entry := range entries {
		total += entry.MaxGuests * entry.Quantity
	}
	return total
}
