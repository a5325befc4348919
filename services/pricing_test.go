package services

import (
	"math"
	"testing"
	"time"

	"guesthouse-backend/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNights(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:     "afternoon checkin morning checkout counts full nights",
			checkIn:  time.Date(2025, 11, 15, 14, 0, 0, 0, loc),
			checkOut: time.Date(2025, 11, 18, 11, 0, 0, 0, loc),
			want:     3,
		},
		{
			name:     "exact 24h is one night",
			checkIn:  time.Date(2025, 11, 15, 12, 0, 0, 0, loc),
			checkOut: time.Date(2025, 11, 16, 12, 0, 0, 0, loc),
			want:     1,
		},
		{
			name:     "same instant is zero",
			checkIn:  time.Date(2025, 11, 15, 12, 0, 0, 0, loc),
			checkOut: time.Date(2025, 11, 15, 12, 0, 0, 0, loc),
			want:     0,
		},
		{
			name:     "reversed dates are zero",
			checkIn:  time.Date(2025, 11, 18, 12, 0, 0, 0, loc),
			checkOut: time.Date(2025, 11, 15, 12, 0, 0, 0, loc),
			want:     0,
		},
		{
			name: "zero times are zero",
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGSTRateFor(t *testing.T) {
	rates := map[uint]float64{1: 18, 2: 0}

	if got := GSTRateFor(1, rates); got != 18 {
		t.Errorf("configured rate: got %v, want 18", got)
	}
	if got := GSTRateFor(2, rates); got != DefaultGSTPercent {
		t.Errorf("zero configured rate should fall back: got %v, want %v", got, DefaultGSTPercent)
	}
	if got := GSTRateFor(99, rates); got != DefaultGSTPercent {
		t.Errorf("unknown room should fall back: got %v, want %v", got, DefaultGSTPercent)
	}
}

func TestComputeTotalsSingleRoom(t *testing.T) {
	checkIn := time.Date(2025, 11, 15, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 11, 18, 11, 0, 0, 0, time.UTC)
	entries := []models.CartEntry{
		{RoomID: 1, RoomType: "deluxe", Price: 2500, Quantity: 1, MaxGuests: 2},
	}

	got := ComputeTotals(entries, checkIn, checkOut, nil, false)

	if got.Nights != 3 {
		t.Fatalf("nights = %d, want 3", got.Nights)
	}
	if !almostEqual(got.Subtotal, 7500) {
		t.Errorf("subtotal = %v, want 7500", got.Subtotal)
	}
	if !almostEqual(got.Tax, 900) {
		t.Errorf("tax = %v, want 900", got.Tax)
	}
	if !almostEqual(got.GrandTotal, 8400) {
		t.Errorf("grand total = %v, want 8400", got.GrandTotal)
	}
	if !almostEqual(got.GrandTotal, got.Subtotal+got.Tax) {
		t.Errorf("grand total %v != subtotal %v + tax %v", got.GrandTotal, got.Subtotal, got.Tax)
	}
}

func TestComputeTotalsMultipleEntries(t *testing.T) {
	checkIn := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 12, 3, 10, 0, 0, 0, time.UTC)
	entries := []models.CartEntry{
		{RoomID: 1, RoomType: "standard", Price: 1000, Quantity: 2, MaxGuests: 2},
		{RoomID: 5, RoomType: "suite", Price: 2000, Quantity: 1, MaxGuests: 4},
	}

	got := ComputeTotals(entries, checkIn, checkOut, nil, false)

	// 2 nights: 2x1000x2 + 1x2000x2 = 8000, GST 12% = 960
	if got.Nights != 2 {
		t.Fatalf("nights = %d, want 2", got.Nights)
	}
	if !almostEqual(got.Subtotal, 8000) {
		t.Errorf("subtotal = %v, want 8000", got.Subtotal)
	}
	if !almostEqual(got.Tax, 960) {
		t.Errorf("tax = %v, want 960", got.Tax)
	}
	if !almostEqual(got.GrandTotal, 8960) {
		t.Errorf("grand total = %v, want 8960", got.GrandTotal)
	}
}

func TestComputeTotalsPerRoomRates(t *testing.T) {
	checkIn := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)
	entries := []models.CartEntry{
		{RoomID: 1, Price: 1000, Quantity: 1},
		{RoomID: 2, Price: 1000, Quantity: 1},
	}
	rates := map[uint]float64{1: 18}

	got := ComputeTotals(entries, checkIn, checkOut, rates, false)

	// room 1 at 18%, room 2 at the default 12%
	if !almostEqual(got.Tax, 180+120) {
		t.Errorf("tax = %v, want 300", got.Tax)
	}
}

func TestComputeTotalsZeroRate(t *testing.T) {
	checkIn := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC)
	entries := []models.CartEntry{
		{RoomID: 1, Price: 2500, Quantity: 2},
	}

	got := ComputeTotals(entries, checkIn, checkOut, nil, true)

	if got.Nights != 3 {
		t.Fatalf("nights = %d, want 3", got.Nights)
	}
	if got.Subtotal != 0 || got.Tax != 0 || got.GrandTotal != 0 {
		t.Errorf("special discount should zero everything, got %+v", got)
	}
}

func TestComputeTotalsInvalidRange(t *testing.T) {
	checkOut := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	checkIn := checkOut.AddDate(0, 0, 2)
	entries := []models.CartEntry{{RoomID: 1, Price: 2500, Quantity: 1}}

	got := ComputeTotals(entries, checkIn, checkOut, nil, false)
	if got != (Totals{}) {
		t.Errorf("reversed range should price to zero, got %+v", got)
	}
}

func TestCartCapacity(t *testing.T) {
	entries := []models.CartEntry{
		{RoomID: 1, MaxGuests: 2, Quantity: 2},
		{RoomID: 3, MaxGuests: 4, Quantity: 1},
	}
	if got := CartCapacity(entries); got != 8 {
		t.Errorf("capacity = %d, want 8", got)
	}
	if got := CartCapacity(nil); got != 0 {
		t.Errorf("empty capacity = %d, want 0", got)
	}
}
