package services

import (
	"fmt"
	"time"

	"guesthouse-backend/models"

	"gorm.io/gorm"
)

// Messages surfaced when a search can't produce availability. Missing dates
// are not an error: zero-availability-by-default is the safe failure mode.
const (
	MsgSelectDates     = "please select check-in and check-out dates"
	MsgNoRoomsForDates = "no rooms available for these dates"
)

// Booking statuses that block inventory. Pending (unconfirmed) bookings do
// not hold rooms; only confirmed and checked-in ones do.
var blockingStatuses = []string{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}

// ReservationWindow is one reserved room-night interval with enough context
// to decide whether it blocks a requested range.
type ReservationWindow struct {
	RoomID     uint
	CheckIn    time.Time
	CheckOut   time.Time
	ItemStatus string
}

// AvailabilityResult reports, for a requested interval, every free active
// room plus free-unit counts grouped by room type.
type AvailabilityResult struct {
	Rooms        []models.Room  `json:"rooms"`
	CountsByType map[string]int `json:"countsByType"`
	Message      string         `json:"message,omitempty"`
}

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// Overlaps tests two half-open [start, end) intervals. A check-out on the
// same day as another booking's check-in is not a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// OccupiedRoomIDs returns the set of room units blocked for the requested
// interval. Individually cancelled items release their unit even when the
// parent order is still active.
func OccupiedRoomIDs(windows []ReservationWindow, checkIn, checkOut time.Time) map[uint]bool {
	occupied := map[uint]bool{}
	for _, w := range windows {
		if w.ItemStatus == models.BookingStatusCancelled {
			continue
		}
		if Overlaps(w.CheckIn, w.CheckOut, checkIn, checkOut) {
			occupied[w.RoomID] = true
		}
	}
	return occupied
}

// FreeRooms filters the catalog down to bookable, customer-visible rooms not
// in the occupied set, and counts free units per room type.
func FreeRooms(rooms []models.Room, occupied map[uint]bool) ([]models.Room, map[string]int) {
	free := make([]models.Room, 0, len(rooms))
	counts := map[string]int{}
	for _, room := range rooms {
		if !room.IsActive || !room.IsAvailable {
			continue
		}
		if occupied[room.ID] {
			continue
		}
		free = append(free, room)
		counts[room.RoomType]++
	}
	return free, counts
}

// CheckAvailability is the single availability interface used both at search
// time and at pre-checkout re-verification, so the overlap rule lives in one
// place. It is advisory: the booking transaction re-checks under row locks.
func (s *AvailabilityService) CheckAvailability(checkIn, checkOut *time.Time) (AvailabilityResult, error) {
	if checkIn == nil || checkOut == nil || checkIn.IsZero() || checkOut.IsZero() {
		return AvailabilityResult{Rooms: []models.Room{}, CountsByType: map[string]int{}, Message: MsgSelectDates}, nil
	}
	if !checkOut.After(*checkIn) {
		return AvailabilityResult{Rooms: []models.Room{}, CountsByType: map[string]int{}, Message: MsgSelectDates}, nil
	}

	var rooms []models.Room
	if err := s.DB.Where("is_active = ? AND is_available = ?", true, true).Find(&rooms).Error; err != nil {
		return AvailabilityResult{}, fmt.Errorf("load rooms: %w", err)
	}

	windows, err := s.reservationWindows(*checkIn, *checkOut)
	if err != nil {
		return AvailabilityResult{}, err
	}

	return availabilityFor(rooms, windows, *checkIn, *checkOut), nil
}

// availabilityFor assembles the search result for a loaded catalog and the
// reservation windows overlapping the requested range.
func availabilityFor(rooms []models.Room, windows []ReservationWindow, checkIn, checkOut time.Time) AvailabilityResult {
	free, counts := FreeRooms(rooms, OccupiedRoomIDs(windows, checkIn, checkOut))
	result := AvailabilityResult{Rooms: free, CountsByType: counts}
	if len(free) == 0 {
		result.Message = MsgNoRoomsForDates
	}
	return result
}

// Catalog returns the full customer-visible catalog when no dates are given.
func (s *AvailabilityService) Catalog() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Where("is_active = ?", true).Find(&rooms).Error
	return rooms, err
}

// reservationWindows fetches every item of a confirmed/checked-in booking
// that could overlap the requested range.
func (s *AvailabilityService) reservationWindows(checkIn, checkOut time.Time) ([]ReservationWindow, error) {
	var windows []ReservationWindow
	err := s.DB.
		Table("booking_items").
		Select("booking_items.room_id, booking_items.check_in, booking_items.check_out, booking_items.status AS item_status").
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Where("bookings.deleted_at IS NULL AND booking_items.deleted_at IS NULL").
		Where("bookings.status IN ?", blockingStatuses).
		Where("booking_items.check_in < ? AND booking_items.check_out > ?", checkOut, checkIn).
		Scan(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	return windows, nil
}
