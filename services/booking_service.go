package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel errors the controllers map onto the error taxonomy: validation,
// availability conflict, upload failure, generic.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrRoomsUnavailable = errors.New("selected rooms are no longer available")
	ErrUploadFailed     = errors.New("document upload failed")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBadTransition    = errors.New("status transition not allowed")
)

var aadhaarPattern = regexp.MustCompile(`^[0-9]{12}$`)

// ValidationError carries a single actionable message naming what is missing
// or malformed. Nothing is submitted while one of these is pending.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// formatMissing names the first 3 missing items plus a count of the rest.
func formatMissing(prefix string, items []string) string {
	shown := items
	extra := 0
	if len(items) > 3 {
		shown = items[:3]
		extra = len(items) - 3
	}
	msg := prefix + ": " + strings.Join(shown, ", ")
	if extra > 0 {
		msg += fmt.Sprintf(" and %d more", extra)
	}
	return msg
}

// GuestDetailInput is one occupant as submitted from checkout. Age arrives
// as a string and must be numeric.
type GuestDetailInput struct {
	Name string `json:"name"`
	Age  string `json:"age"`
}

// SubmissionInput is everything checkout sends for booking creation.
type SubmissionInput struct {
	CheckIn  time.Time
	CheckOut time.Time

	GuestDetails []GuestDetailInput

	Address string
	City    string
	State   string
	Pincode string

	IDType   string
	IDNumber string

	BookingFor       string
	RelativeIDType   string
	RelativeIDNumber string

	SpecialRequests string

	Documents map[string]DocumentFile
}

// ValidateSubmission runs the ordered pre-submission checks. It touches no
// network or storage; callers must not proceed past a non-nil return.
func ValidateSubmission(input SubmissionInput, entries []models.CartEntry, phoneVerified bool) *ValidationError {
	// (a) phone verification gate
	if !phoneVerified {
		return &ValidationError{Message: "please verify your phone number before booking"}
	}

	// (b) guest details: every occupant needs a name and a numeric age
	if len(input.GuestDetails) == 0 {
		return &ValidationError{Message: "please add at least one guest"}
	}
	var badGuests []string
	for i, g := range input.GuestDetails {
		label := fmt.Sprintf("guest %d", i+1)
		if strings.TrimSpace(g.Name) == "" {
			badGuests = append(badGuests, label+" name")
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(g.Age)); err != nil {
			badGuests = append(badGuests, label+" age")
		}
	}
	if len(badGuests) > 0 {
		return &ValidationError{Message: formatMissing("missing or invalid guest details", badGuests)}
	}
	if capacity := CartCapacity(entries); capacity > 0 && len(input.GuestDetails) > capacity {
		return &ValidationError{Message: fmt.Sprintf("selected rooms can host at most %d guests", capacity)}
	}

	// (c) address
	var missingAddr []string
	for _, f := range []struct{ label, value string }{
		{"street address", input.Address},
		{"city", input.City},
		{"state", input.State},
		{"pincode", input.Pincode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missingAddr = append(missingAddr, f.label)
		}
	}
	if len(missingAddr) > 0 {
		return &ValidationError{Message: formatMissing("missing address fields", missingAddr)}
	}

	// (d) identity proof; aadhaar numbers are exactly 12 digits
	if strings.TrimSpace(input.IDType) == "" || strings.TrimSpace(input.IDNumber) == "" {
		return &ValidationError{Message: "please provide your ID proof type and number"}
	}
	if strings.EqualFold(strings.TrimSpace(input.IDType), "aadhaar") &&
		!aadhaarPattern.MatchString(strings.TrimSpace(input.IDNumber)) {
		return &ValidationError{Message: "aadhaar number must be exactly 12 digits"}
	}

	// (e) mandatory government-ID document
	doc, ok := input.Documents[DocGovernmentID]
	if !ok || len(doc.Data) == 0 {
		return &ValidationError{Message: "please attach your government ID document"}
	}

	return nil
}

// BookingService orchestrates booking submission: validation, document
// upload, and the transactional reservation write.
type BookingService struct {
	DB   *gorm.DB
	Docs DocumentStore
	Cart *CartService
	OTP  *OTPService
}

func NewBookingService(db *gorm.DB, docs DocumentStore, cart *CartService, otp *OTPService) *BookingService {
	return &BookingService{DB: db, Docs: docs, Cart: cart, OTP: otp}
}

// Submit runs the customer checkout. The cart is cleared only after the
// booking is committed; validation, upload and conflict failures all leave
// it intact so the user can retry without re-entering everything.
func (s *BookingService) Submit(ctx context.Context, customer models.Customer, sessionID string, input SubmissionInput) (*models.Booking, error) {
	cart, err := s.Cart.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	entries := Entries(cart)
	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}

	phoneVerified := customer.PhoneVerified || s.OTP.IsVerified(ctx, sessionID)
	if verr := ValidateSubmission(input, entries, phoneVerified); verr != nil {
		return nil, verr
	}

	// Upload documents first; no booking exists without its mandatory ID.
	paths := map[string]string{}
	for _, kind := range []string{DocGovernmentID, DocBankID, DocEmployeeID, DocGuestID} {
		file, ok := input.Documents[kind]
		if !ok || len(file.Data) == 0 {
			continue
		}
		path, err := s.Docs.Save(ctx, kind, file)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUploadFailed, kind, err)
		}
		paths[kind] = path
	}

	booking, err := s.createReservation(ctx, customer, input, entries, paths, false)
	if err != nil {
		return nil, err
	}

	if err := s.Cart.ClearCart(ctx, sessionID); err != nil {
		log.Printf("warning: failed to clear cart for session %s: %v", sessionID, err)
	}

	return booking, nil
}

// createReservation re-checks availability under row locks and writes the
// booking atomically. zeroRate is the admin special-discount mode.
func (s *BookingService) createReservation(ctx context.Context, customer models.Customer, input SubmissionInput, entries []models.CartEntry, docPaths map[string]string, zeroRate bool) (*models.Booking, error) {
	var booking *models.Booking

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the candidate rooms of every requested type so two checkouts
		// racing for the last unit serialize here.
		roomTypes := make([]string, 0, len(entries))
		for _, entry := range entries {
			roomTypes = append(roomTypes, entry.RoomType)
		}

		var rooms []models.Room
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("room_type IN ? AND is_active = ? AND is_available = ?", roomTypes, true, true).
			Find(&rooms).Error; err != nil {
			return fmt.Errorf("lock rooms: %w", err)
		}

		roomIDs := make([]uint, 0, len(rooms))
		gstByRoom := make(map[uint]float64, len(rooms))
		roomByID := make(map[uint]models.Room, len(rooms))
		for _, room := range rooms {
			roomIDs = append(roomIDs, room.ID)
			gstByRoom[room.ID] = room.GSTPercentage
			roomByID[room.ID] = room
		}

		var windows []ReservationWindow
		if err := tx.
			Table("booking_items").
			Select("booking_items.room_id, booking_items.check_in, booking_items.check_out, booking_items.status AS item_status").
			Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
			Where("bookings.deleted_at IS NULL AND booking_items.deleted_at IS NULL").
			Where("bookings.status IN ?", blockingStatuses).
			Where("booking_items.room_id IN ?", roomIDs).
			Where("booking_items.check_in < ? AND booking_items.check_out > ?", input.CheckOut, input.CheckIn).
			Scan(&windows).Error; err != nil {
			return fmt.Errorf("load reservations: %w", err)
		}

		occupied := OccupiedRoomIDs(windows, input.CheckIn, input.CheckOut)

		units, err := assignUnits(entries, rooms, occupied)
		if err != nil {
			return err
		}

		totals := ComputeTotals(entries, input.CheckIn, input.CheckOut, gstByRoom, zeroRate)
		if totals.Nights <= 0 {
			return &ValidationError{Message: "check-out must be after check-in"}
		}

		number, err := utils.GenerateBookingNumber(time.Now())
		if err != nil {
			return fmt.Errorf("generate booking number: %w", err)
		}

		docJSON, err := json.Marshal(docPaths)
		if err != nil {
			return fmt.Errorf("encode document paths: %w", err)
		}

		status := models.BookingStatusPending
		if zeroRate {
			// Offline bookings are entered by staff at the desk and are
			// confirmed on the spot.
			status = models.BookingStatusConfirmed
		}

		b := models.Booking{
			BookingNumber: number,
			CustomerID:    customer.ID,
			CheckIn:       input.CheckIn,
			CheckOut:      input.CheckOut,
			Status:        status,
			PaymentStatus: models.PaymentStatusPending,

			GuestName: customer.FullName,
			Email:     customer.Email,
			Phone:     customer.Phone,
			Address:   input.Address,
			City:      input.City,
			State:     input.State,
			Pincode:   input.Pincode,

			IDType:        input.IDType,
			IDNumber:      input.IDNumber,
			DocumentPaths: datatypes.JSON(docJSON),

			BookingFor:       input.BookingFor,
			RelativeIDType:   input.RelativeIDType,
			RelativeIDNumber: input.RelativeIDNumber,

			NumGuests:       len(input.GuestDetails),
			SpecialRequests: input.SpecialRequests,

			RoomCharges:   totals.Subtotal,
			GSTAmount:     totals.Tax,
			TotalAmount:   totals.GrandTotal,
			BalanceAmount: totals.GrandTotal,
		}
		if b.BookingFor == "" {
			b.BookingFor = models.BookingForSelf
		}

		if err := tx.Create(&b).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		for _, unit := range units {
			entry := unit.entry
			room := roomByID[unit.roomID]
			rate := entry.Price
			if zeroRate {
				rate = 0
			}
			lineCharges := rate * float64(totals.Nights)
			lineGST := lineCharges * GSTRateFor(room.ID, gstByRoom) / 100
			item := models.BookingItem{
				BookingID:   b.ID,
				RoomID:      unit.roomID,
				CheckIn:     input.CheckIn,
				CheckOut:    input.CheckOut,
				Status:      status,
				NightlyRate: rate,
				Nights:      totals.Nights,
				LineCharges: lineCharges,
				LineGST:     lineGST,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create booking item: %w", err)
			}
			b.Items = append(b.Items, item)
		}

		for _, g := range input.GuestDetails {
			age, _ := strconv.Atoi(strings.TrimSpace(g.Age))
			detail := models.GuestDetail{
				BookingID: b.ID,
				Name:      strings.TrimSpace(g.Name),
				Age:       age,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return fmt.Errorf("create guest detail: %w", err)
			}
			b.Guests = append(b.Guests, detail)
		}

		booking = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// assignedUnit ties a chosen room unit back to the cart entry it fills.
type assignedUnit struct {
	roomID uint
	entry  models.CartEntry
}

// assignUnits picks concrete free units for every cart entry: the selected
// room first, then further free units of the same type up to the quantity.
// Returns ErrRoomsUnavailable when any entry can't be fully satisfied.
func assignUnits(entries []models.CartEntry, rooms []models.Room, occupied map[uint]bool) ([]assignedUnit, error) {
	taken := map[uint]bool{}
	var out []assignedUnit

	for _, entry := range entries {
		if entry.Quantity <= 0 {
			continue
		}
		need := entry.Quantity

		free := func(id uint) bool { return !occupied[id] && !taken[id] }

		// Preferred unit: the room the customer actually clicked.
		for _, room := range rooms {
			if room.ID == entry.RoomID && free(room.ID) {
				taken[room.ID] = true
				out = append(out, assignedUnit{roomID: room.ID, entry: entry})
				need--
				break
			}
		}
		// Remaining quantity from other units of the same type.
		for _, room := range rooms {
			if need == 0 {
				break
			}
			if room.RoomType != entry.RoomType || !free(room.ID) {
				continue
			}
			taken[room.ID] = true
			out = append(out, assignedUnit{roomID: room.ID, entry: entry})
			need--
		}
		if need > 0 {
			return nil, ErrRoomsUnavailable
		}
	}
	return out, nil
}

// OfflineBookingInput is the admin walk-in entry form. SpecialDiscount
// zeroes every room rate (and with it the GST).
type OfflineBookingInput struct {
	CustomerName string
	Email        string
	Phone        string
	CheckIn      time.Time
	CheckOut     time.Time
	Rooms        []struct {
		RoomID   uint `json:"room_id"`
		Quantity int  `json:"quantity"`
	}
	NumGuests       int
	SpecialRequests string
	SpecialDiscount bool
}

// CreateOffline enters a walk-in booking on behalf of a guest. This is the
// only path where the special-discount pricing mode is reachable.
func (s *BookingService) CreateOffline(ctx context.Context, input OfflineBookingInput) (*models.Booking, error) {
	if input.CustomerName == "" {
		return nil, &ValidationError{Message: "guest name is required"}
	}
	if len(input.Rooms) == 0 {
		return nil, &ValidationError{Message: "select at least one room"}
	}
	if !input.CheckOut.After(input.CheckIn) {
		return nil, &ValidationError{Message: "check-out must be after check-in"}
	}

	// Walk-in guests get a lightweight customer record keyed by phone.
	var customer models.Customer
	err := s.DB.WithContext(ctx).Where("phone = ? AND phone <> ''", input.Phone).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || customer.ID == 0 {
		customer = models.Customer{FullName: input.CustomerName, Email: input.Email, Phone: input.Phone}
		if err := s.DB.WithContext(ctx).Create(&customer).Error; err != nil {
			return nil, fmt.Errorf("create walk-in customer: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}

	entries := make([]models.CartEntry, 0, len(input.Rooms))
	for _, sel := range input.Rooms {
		var room models.Room
		if err := s.DB.WithContext(ctx).First(&room, sel.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ValidationError{Message: fmt.Sprintf("room %d not found", sel.RoomID)}
			}
			return nil, fmt.Errorf("lookup room: %w", err)
		}
		qty := sel.Quantity
		if qty <= 0 {
			qty = 1
		}
		entries = append(entries, models.CartEntry{
			RoomID:    room.ID,
			RoomType:  room.RoomType,
			Price:     room.BasePrice,
			Quantity:  qty,
			MaxGuests: room.MaxGuests,
		})
	}

	numGuests := input.NumGuests
	if numGuests <= 0 {
		numGuests = 1
	}
	guestDetails := []GuestDetailInput{{Name: input.CustomerName, Age: "0"}}

	sub := SubmissionInput{
		CheckIn:         input.CheckIn,
		CheckOut:        input.CheckOut,
		GuestDetails:    guestDetails,
		SpecialRequests: input.SpecialRequests,
		BookingFor:      models.BookingForSelf,
	}

	booking, err := s.createReservation(ctx, customer, sub, entries, map[string]string{}, input.SpecialDiscount)
	if err != nil {
		return nil, err
	}
	if numGuests > 1 {
		if err := s.DB.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("num_guests", numGuests).Error; err != nil {
			log.Printf("warning: failed to update guest count for booking %d: %v", booking.ID, err)
		} else {
			booking.NumGuests = numGuests
		}
	}
	return booking, nil
}

// ---------------------------
// Status transitions
// ---------------------------

var allowedTransitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCheckedIn, models.BookingStatusCancelled},
	models.BookingStatusCheckedIn: {models.BookingStatusCheckedOut},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves a booking (and its items) through the lifecycle.
// Confirmation triggers the guest email best-effort.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uint, newStatus string) (*models.Booking, error) {
	var booking models.Booking

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items.Room").
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if !transitionAllowed(booking.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrBadTransition, booking.Status, newStatus)
		}

		// Confirming starts blocking inventory; make sure no other confirmed
		// booking took the units while this one sat pending.
		if newStatus == models.BookingStatusConfirmed {
			roomIDs := make([]uint, 0, len(booking.Items))
			for _, item := range booking.Items {
				if item.Status != models.BookingStatusCancelled {
					roomIDs = append(roomIDs, item.RoomID)
				}
			}
			var conflicts int64
			if err := tx.
				Table("booking_items").
				Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
				Where("bookings.deleted_at IS NULL AND booking_items.deleted_at IS NULL").
				Where("bookings.id <> ? AND bookings.status IN ?", booking.ID, blockingStatuses).
				Where("booking_items.room_id IN ?", roomIDs).
				Where("booking_items.check_in < ? AND booking_items.check_out > ?", booking.CheckOut, booking.CheckIn).
				Count(&conflicts).Error; err != nil {
				return err
			}
			if conflicts > 0 {
				return ErrRoomsUnavailable
			}
		}

		if err := tx.Model(&booking).Update("status", newStatus).Error; err != nil {
			return err
		}
		// Items follow the order unless individually cancelled.
		if err := tx.Model(&models.BookingItem{}).
			Where("booking_id = ? AND status <> ?", bookingID, models.BookingStatusCancelled).
			Update("status", newStatus).Error; err != nil {
			return err
		}
		booking.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newStatus == models.BookingStatusConfirmed && booking.Email != "" {
		rooms := make([]utils.RoomInfo, 0, len(booking.Items))
		for _, item := range booking.Items {
			rooms = append(rooms, utils.RoomInfo{Number: item.Room.RoomNumber, Type: item.Room.RoomType})
		}
		if err := utils.SendBookingConfirmationEmail(
			booking.Email, booking.BookingNumber, booking.GuestName, rooms,
			booking.CheckIn.Format("2006-01-02"), booking.CheckOut.Format("2006-01-02"),
			booking.TotalAmount,
		); err != nil {
			log.Printf("warning: confirmation email for %s failed: %v", booking.BookingNumber, err)
		}
	}

	return &booking, nil
}

// RecordPayment stores a payment event and rolls the order's payment status
// and paid/balance amounts forward.
func (s *BookingService) RecordPayment(ctx context.Context, bookingID uint, payment models.Payment, newPaymentStatus string) (*models.Booking, error) {
	var booking models.Booking

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		switch newPaymentStatus {
		case models.PaymentStatusPending, models.PaymentStatusVerificationPending,
			models.PaymentStatusPaid, models.PaymentStatusFailed:
		default:
			return &ValidationError{Message: "unknown payment status"}
		}

		payment.BookingID = booking.ID
		if payment.Amount > 0 {
			if err := tx.Create(&payment).Error; err != nil {
				return fmt.Errorf("record payment: %w", err)
			}
		}

		updates := map[string]interface{}{"payment_status": newPaymentStatus}
		if newPaymentStatus == models.PaymentStatusPaid && payment.Amount > 0 {
			advance := booking.AdvancePaid + payment.Amount
			balance := booking.TotalAmount - advance
			if balance < 0 {
				balance = 0
			}
			updates["advance_paid"] = advance
			updates["balance_amount"] = balance
			booking.AdvancePaid = advance
			booking.BalanceAmount = balance
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return err
		}
		booking.PaymentStatus = newPaymentStatus
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
