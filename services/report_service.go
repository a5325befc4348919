package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"guesthouse-backend/models"

	"gorm.io/gorm"
)

// Admin reconciliation views: derived read-only aggregates recomputed from
// the full bookings and rooms collections on every load. Nothing here is
// cached or authoritative; malformed records contribute zero instead of
// aborting the view.

type DashboardStats struct {
	TotalBookings     int64   `json:"totalBookings"`
	ActiveBookings    int64   `json:"activeBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	CheckedInBookings int64   `json:"checkedInBookings"`
	TotalRooms        int64   `json:"totalRooms"`
	ActiveRooms       int64   `json:"activeRooms"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

type SeriesPoint struct {
	Label     string  `json:"label"`
	Revenue   float64 `json:"revenue"`
	Occupancy float64 `json:"occupancy"`
}

type RoomTypeRevenue struct {
	RoomType string  `json:"roomType"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type StatusShare struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

func (s *ReportService) fetch() ([]models.Booking, []models.Room, error) {
	var bookings []models.Booking
	if err := s.DB.Preload("Items").Find(&bookings).Error; err != nil {
		return nil, nil, fmt.Errorf("load bookings: %w", err)
	}
	var rooms []models.Room
	if err := s.DB.Find(&rooms).Error; err != nil {
		return nil, nil, fmt.Errorf("load rooms: %w", err)
	}
	return bookings, rooms, nil
}

func (s *ReportService) Dashboard() (DashboardStats, error) {
	bookings, rooms, err := s.fetch()
	if err != nil {
		return DashboardStats{}, err
	}
	return ComputeDashboard(bookings, rooms), nil
}

func (s *ReportService) Series(period string, now time.Time) ([]SeriesPoint, error) {
	bookings, rooms, err := s.fetch()
	if err != nil {
		return nil, err
	}
	return ComputeSeries(bookings, rooms, period, now), nil
}

func (s *ReportService) RevenueByRoomType() ([]RoomTypeRevenue, error) {
	bookings, rooms, err := s.fetch()
	if err != nil {
		return nil, err
	}
	return ComputeRoomTypeRevenue(bookings, rooms), nil
}

func (s *ReportService) StatusDistribution() ([]StatusShare, error) {
	bookings, _, err := s.fetch()
	if err != nil {
		return nil, err
	}
	return ComputeStatusDistribution(bookings), nil
}

// ComputeDashboard derives the headline counters. Revenue counts only paid
// bookings.
func ComputeDashboard(bookings []models.Booking, rooms []models.Room) DashboardStats {
	stats := DashboardStats{TotalRooms: int64(len(rooms))}
	for _, room := range rooms {
		if room.IsActive {
			stats.ActiveRooms++
		}
	}
	for _, b := range bookings {
		stats.TotalBookings++
		switch b.Status {
		case models.BookingStatusPending:
			stats.PendingBookings++
		case models.BookingStatusConfirmed:
			stats.ActiveBookings++
		case models.BookingStatusCheckedIn:
			stats.ActiveBookings++
			stats.CheckedInBookings++
		}
		if b.PaymentStatus == models.PaymentStatusPaid {
			stats.TotalRevenue += b.TotalAmount
		}
	}
	return stats
}

// bucket is one time window of a series.
type bucket struct {
	label string
	start time.Time
	end   time.Time
}

func seriesBuckets(period string, now time.Time) []bucket {
	var out []bucket
	switch period {
	case "weekly":
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		for i := 6; i >= 0; i-- {
			start := day.AddDate(0, 0, -i)
			out = append(out, bucket{label: start.Format("2006-01-02"), start: start, end: start.AddDate(0, 0, 1)})
		}
	case "yearly":
		for i := 4; i >= 0; i-- {
			start := time.Date(now.Year()-i, 1, 1, 0, 0, 0, 0, now.Location())
			out = append(out, bucket{label: start.Format("2006"), start: start, end: start.AddDate(1, 0, 0)})
		}
	default: // monthly
		for i := 11; i >= 0; i-- {
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
			out = append(out, bucket{label: start.Format("2006-01"), start: start, end: start.AddDate(0, 1, 0)})
		}
	}
	return out
}

// ComputeSeries builds the revenue + occupancy time series for a period
// ("weekly", "monthly" or "yearly"). Occupancy is booked room-nights over
// active-room capacity for the window; zero active rooms yields 0.
func ComputeSeries(bookings []models.Booking, rooms []models.Room, period string, now time.Time) []SeriesPoint {
	activeRooms := 0
	for _, room := range rooms {
		if room.IsActive {
			activeRooms++
		}
	}

	buckets := seriesBuckets(period, now)
	points := make([]SeriesPoint, len(buckets))

	for i, bk := range buckets {
		point := SeriesPoint{Label: bk.label}

		for _, b := range bookings {
			if b.PaymentStatus == models.PaymentStatusPaid &&
				!b.CreatedAt.Before(bk.start) && b.CreatedAt.Before(bk.end) {
				point.Revenue += b.TotalAmount
			}
			if !b.IsActiveStatus() {
				continue
			}
			for _, item := range b.Items {
				if item.Status == models.BookingStatusCancelled {
					continue
				}
				point.Occupancy += clippedNights(item.CheckIn, item.CheckOut, bk.start, bk.end)
			}
		}

		days := bk.end.Sub(bk.start).Hours() / 24
		capacity := float64(activeRooms) * days
		if capacity > 0 {
			point.Occupancy = point.Occupancy / capacity
		} else {
			point.Occupancy = 0
		}
		points[i] = point
	}
	return points
}

// clippedNights counts the room-nights of [checkIn, checkOut) that fall
// inside the window. Malformed intervals contribute zero.
func clippedNights(checkIn, checkOut, winStart, winEnd time.Time) float64 {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return 0
	}
	start := checkIn
	if start.Before(winStart) {
		start = winStart
	}
	end := checkOut
	if end.After(winEnd) {
		end = winEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours() / 24
}

// ComputeRoomTypeRevenue ranks room types by paid revenue attributed through
// booking items. Items pointing at deleted rooms count under "unknown".
func ComputeRoomTypeRevenue(bookings []models.Booking, rooms []models.Room) []RoomTypeRevenue {
	typeByRoom := make(map[uint]string, len(rooms))
	for _, room := range rooms {
		typeByRoom[room.ID] = room.RoomType
	}

	acc := map[string]*RoomTypeRevenue{}
	for _, b := range bookings {
		if b.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		for _, item := range b.Items {
			if item.Status == models.BookingStatusCancelled {
				continue
			}
			roomType, ok := typeByRoom[item.RoomID]
			if !ok || roomType == "" {
				roomType = "unknown"
			}
			entry, ok := acc[roomType]
			if !ok {
				entry = &RoomTypeRevenue{RoomType: roomType}
				acc[roomType] = entry
			}
			entry.Revenue += item.LineCharges + item.LineGST
			entry.Bookings++
		}
	}

	out := make([]RoomTypeRevenue, 0, len(acc))
	for _, entry := range acc {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// ComputeStatusDistribution reports the share of each booking status.
func ComputeStatusDistribution(bookings []models.Booking) []StatusShare {
	counts := map[string]int{}
	for _, b := range bookings {
		status := b.Status
		if status == "" {
			status = "unknown"
		}
		counts[status]++
	}

	total := len(bookings)
	out := make([]StatusShare, 0, len(counts))
	for status, count := range counts {
		share := StatusShare{Status: status, Count: count}
		if total > 0 {
			share.Percent = math.Round(float64(count)/float64(total)*10000) / 100
		}
		out = append(out, share)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
