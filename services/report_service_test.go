package services

import (
	"testing"
	"time"

	"guesthouse-backend/models"
)

func TestComputeDashboard(t *testing.T) {
	rooms := []models.Room{
		{Model: modelWithID(1), IsActive: true},
		{Model: modelWithID(2), IsActive: true},
		{Model: modelWithID(3), IsActive: false},
	}
	bookings := []models.Booking{
		{Status: models.BookingStatusPending, PaymentStatus: models.PaymentStatusPending, TotalAmount: 5000},
		{Status: models.BookingStatusConfirmed, PaymentStatus: models.PaymentStatusPaid, TotalAmount: 8400},
		{Status: models.BookingStatusCheckedIn, PaymentStatus: models.PaymentStatusPaid, TotalAmount: 3000},
		{Status: models.BookingStatusCancelled, PaymentStatus: models.PaymentStatusFailed, TotalAmount: 9999},
	}

	stats := ComputeDashboard(bookings, rooms)

	if stats.TotalBookings != 4 {
		t.Errorf("total bookings = %d, want 4", stats.TotalBookings)
	}
	if stats.PendingBookings != 1 {
		t.Errorf("pending = %d, want 1", stats.PendingBookings)
	}
	if stats.ActiveBookings != 2 {
		t.Errorf("active = %d, want 2", stats.ActiveBookings)
	}
	if stats.CheckedInBookings != 1 {
		t.Errorf("checked in = %d, want 1", stats.CheckedInBookings)
	}
	if stats.TotalRooms != 3 || stats.ActiveRooms != 2 {
		t.Errorf("rooms = %d/%d, want 3/2", stats.ActiveRooms, stats.TotalRooms)
	}
	// Only paid bookings count toward revenue.
	if !almostEqual(stats.TotalRevenue, 11400) {
		t.Errorf("revenue = %v, want 11400", stats.TotalRevenue)
	}
}

func TestSeriesBuckets(t *testing.T) {
	now := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)

	if got := len(seriesBuckets("weekly", now)); got != 7 {
		t.Errorf("weekly buckets = %d, want 7", got)
	}
	if got := len(seriesBuckets("yearly", now)); got != 5 {
		t.Errorf("yearly buckets = %d, want 5", got)
	}
	monthly := seriesBuckets("monthly", now)
	if len(monthly) != 12 {
		t.Fatalf("monthly buckets = %d, want 12", len(monthly))
	}
	if monthly[len(monthly)-1].label != "2025-11" {
		t.Errorf("last monthly label = %q, want 2025-11", monthly[len(monthly)-1].label)
	}
	if unknown := seriesBuckets("whatever", now); len(unknown) != 12 {
		t.Errorf("unknown period should fall back to monthly, got %d buckets", len(unknown))
	}
}

func TestComputeSeriesZeroCapacity(t *testing.T) {
	now := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{
			Status:        models.BookingStatusConfirmed,
			PaymentStatus: models.PaymentStatusPaid,
			TotalAmount:   8400,
			Items: []models.BookingItem{
				{RoomID: 1, CheckIn: day(10), CheckOut: day(13), Status: models.BookingStatusConfirmed},
			},
		},
	}

	// No active rooms at all: occupancy must be 0, never a division error.
	points := ComputeSeries(bookings, nil, "weekly", now)
	for _, p := range points {
		if p.Occupancy != 0 {
			t.Errorf("bucket %s: occupancy = %v, want 0 with no capacity", p.Label, p.Occupancy)
		}
	}
}

func TestComputeSeriesOccupancy(t *testing.T) {
	now := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	rooms := []models.Room{
		{Model: modelWithID(1), IsActive: true},
		{Model: modelWithID(2), IsActive: true},
	}
	booking := models.Booking{
		Status:    models.BookingStatusConfirmed,
		CreatedAt: day(12),
		Items: []models.BookingItem{
			{RoomID: 1, CheckIn: day(12), CheckOut: day(14), Status: models.BookingStatusConfirmed},
			{RoomID: 2, CheckIn: day(12), CheckOut: day(14), Status: models.BookingStatusCancelled},
		},
	}

	points := ComputeSeries([]models.Booking{booking}, rooms, "weekly", now)

	var day12 *SeriesPoint
	for i := range points {
		if points[i].Label == "2025-11-12" {
			day12 = &points[i]
		}
	}
	if day12 == nil {
		t.Fatal("bucket for 2025-11-12 missing")
	}
	// One of two rooms booked for the day: 1 room-night over 2 capacity.
	if !almostEqual(day12.Occupancy, 0.5) {
		t.Errorf("occupancy = %v, want 0.5", day12.Occupancy)
	}
}

func TestClippedNights(t *testing.T) {
	if got := clippedNights(day(10), day(14), day(12), day(20)); !almostEqual(got, 2) {
		t.Errorf("clip at window start: got %v, want 2", got)
	}
	if got := clippedNights(day(10), day(14), day(1), day(12)); !almostEqual(got, 2) {
		t.Errorf("clip at window end: got %v, want 2", got)
	}
	if got := clippedNights(day(14), day(10), day(1), day(20)); got != 0 {
		t.Errorf("reversed interval: got %v, want 0", got)
	}
	if got := clippedNights(time.Time{}, day(10), day(1), day(20)); got != 0 {
		t.Errorf("zero check-in: got %v, want 0", got)
	}
}

func TestComputeRoomTypeRevenue(t *testing.T) {
	rooms := []models.Room{
		{Model: modelWithID(1), RoomType: "deluxe"},
		{Model: modelWithID(2), RoomType: "standard"},
	}
	bookings := []models.Booking{
		{
			PaymentStatus: models.PaymentStatusPaid,
			Items: []models.BookingItem{
				{RoomID: 1, LineCharges: 7500, LineGST: 900},
				{RoomID: 2, LineCharges: 2000, LineGST: 240},
				{RoomID: 99, LineCharges: 1000, LineGST: 120}, // room since deleted
			},
		},
		{
			PaymentStatus: models.PaymentStatusPending,
			Items:         []models.BookingItem{{RoomID: 1, LineCharges: 5000, LineGST: 600}},
		},
	}

	out := ComputeRoomTypeRevenue(bookings, rooms)

	if len(out) != 3 {
		t.Fatalf("room types = %d, want 3", len(out))
	}
	if out[0].RoomType != "deluxe" || !almostEqual(out[0].Revenue, 8400) {
		t.Errorf("top entry = %+v, want deluxe 8400", out[0])
	}
	found := false
	for _, entry := range out {
		if entry.RoomType == "unknown" {
			found = true
			if !almostEqual(entry.Revenue, 1120) {
				t.Errorf("unknown revenue = %v, want 1120", entry.Revenue)
			}
		}
	}
	if !found {
		t.Error("items pointing at deleted rooms should land under \"unknown\"")
	}
}

func TestComputeStatusDistribution(t *testing.T) {
	bookings := []models.Booking{
		{Status: models.BookingStatusConfirmed},
		{Status: models.BookingStatusConfirmed},
		{Status: models.BookingStatusPending},
	}

	out := ComputeStatusDistribution(bookings)

	if len(out) != 2 {
		t.Fatalf("statuses = %d, want 2", len(out))
	}
	if out[0].Status != models.BookingStatusConfirmed || out[0].Count != 2 {
		t.Errorf("top status = %+v", out[0])
	}
	if !almostEqual(out[0].Percent, 66.67) {
		t.Errorf("percent = %v, want 66.67", out[0].Percent)
	}
	if !almostEqual(out[1].Percent, 33.33) {
		t.Errorf("percent = %v, want 33.33", out[1].Percent)
	}

	if empty := ComputeStatusDistribution(nil); len(empty) != 0 {
		t.Errorf("no bookings should produce no shares, got %+v", empty)
	}
}
