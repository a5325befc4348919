package services

import (
	"testing"
	"time"

	"guesthouse-backend/models"

	"gorm.io/gorm"
)

func day(d int) time.Time {
	return time.Date(2025, 11, d, 0, 0, 0, 0, time.UTC)
}

func modelWithID(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical ranges", day(10), day(12), day(10), day(12), true},
		{"partial overlap", day(10), day(13), day(12), day(15), true},
		{"containment", day(10), day(20), day(12), day(14), true},
		{"back to back, checkout equals checkin", day(10), day(12), day(12), day(14), false},
		{"back to back reversed", day(12), day(14), day(10), day(12), false},
		{"disjoint", day(1), day(3), day(10), day(12), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOccupiedRoomIDs(t *testing.T) {
	windows := []ReservationWindow{
		{RoomID: 1, CheckIn: day(10), CheckOut: day(12), ItemStatus: models.BookingStatusConfirmed},
		{RoomID: 2, CheckIn: day(10), CheckOut: day(12), ItemStatus: models.BookingStatusCancelled},
		{RoomID: 3, CheckIn: day(1), CheckOut: day(5), ItemStatus: models.BookingStatusConfirmed},
	}

	occupied := OccupiedRoomIDs(windows, day(11), day(13))

	if !occupied[1] {
		t.Error("room 1 overlaps and should be occupied")
	}
	if occupied[2] {
		t.Error("individually cancelled item must release its unit")
	}
	if occupied[3] {
		t.Error("room 3 does not overlap the requested range")
	}
}

func TestCheckAvailabilityRequiresDates(t *testing.T) {
	// Date validation short-circuits before any database access.
	svc := NewAvailabilityService(nil)
	in, out := day(12), day(10)

	tests := []struct {
		name     string
		checkIn  *time.Time
		checkOut *time.Time
	}{
		{"both nil", nil, nil},
		{"missing checkout", &in, nil},
		{"missing checkin", nil, &out},
		{"zero values", &time.Time{}, &time.Time{}},
		{"reversed range", &in, &out},
		{"same day", &in, &in},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.CheckAvailability(tt.checkIn, tt.checkOut)
			if err != nil {
				t.Fatalf("CheckAvailability() error = %v, want nil", err)
			}
			if result.Message != MsgSelectDates {
				t.Errorf("message = %q, want %q", result.Message, MsgSelectDates)
			}
			if len(result.Rooms) != 0 {
				t.Errorf("rooms = %d, want 0", len(result.Rooms))
			}
		})
	}
}

func TestAvailabilityForMessages(t *testing.T) {
	rooms := []models.Room{
		{Model: modelWithID(1), RoomType: "standard", IsActive: true, IsAvailable: true},
	}
	windows := []ReservationWindow{
		{RoomID: 1, CheckIn: day(10), CheckOut: day(14), ItemStatus: models.BookingStatusConfirmed},
	}

	booked := availabilityFor(rooms, windows, day(11), day(13))
	if booked.Message != MsgNoRoomsForDates {
		t.Errorf("fully booked message = %q, want %q", booked.Message, MsgNoRoomsForDates)
	}
	if MsgNoRoomsForDates == MsgSelectDates {
		t.Error("fully booked and missing dates must surface different messages")
	}

	open := availabilityFor(rooms, nil, day(20), day(22))
	if open.Message != "" {
		t.Errorf("message = %q, want empty when rooms are free", open.Message)
	}
	if len(open.Rooms) != 1 || open.CountsByType["standard"] != 1 {
		t.Errorf("free rooms = %d (standard count %d), want 1 free standard unit",
			len(open.Rooms), open.CountsByType["standard"])
	}
}

func TestFreeRooms(t *testing.T) {
	rooms := []models.Room{
		{Model: modelWithID(1), RoomType: "standard", IsActive: true, IsAvailable: true},
		{Model: modelWithID(2), RoomType: "standard", IsActive: true, IsAvailable: true},
		{Model: modelWithID(3), RoomType: "standard", IsActive: true, IsAvailable: false},
		{Model: modelWithID(4), RoomType: "deluxe", IsActive: false, IsAvailable: true},
		{Model: modelWithID(5), RoomType: "deluxe", IsActive: true, IsAvailable: true},
	}
	occupied := map[uint]bool{2: true}

	free, counts := FreeRooms(rooms, occupied)

	if len(free) != 2 {
		t.Fatalf("free rooms = %d, want 2", len(free))
	}
	if counts["standard"] != 1 {
		t.Errorf("standard count = %d, want 1", counts["standard"])
	}
	if counts["deluxe"] != 1 {
		t.Errorf("deluxe count = %d, want 1", counts["deluxe"])
	}
}
