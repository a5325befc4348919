package controllers

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"guesthouse-backend/config"
	"guesthouse-backend/middleware"
	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type documentPayload struct {
	Filename string `json:"filename"`
	Data     string `json:"data"` // base64, with or without data: prefix
}

type createBookingPayload struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`

	Guests []services.GuestDetailInput `json:"guests"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`

	IDType   string `json:"id_type"`
	IDNumber string `json:"id_number"`

	BookingFor       string `json:"booking_for"`
	RelativeIDType   string `json:"relative_id_type"`
	RelativeIDNumber string `json:"relative_id_number"`

	SpecialRequests string `json:"special_requests"`

	Documents map[string]documentPayload `json:"documents"`
}

type statusUpdatePayload struct {
	Status string `json:"status" binding:"required,bookingstatus"`
}

type paymentUpdatePayload struct {
	PaymentStatus string  `json:"payment_status" binding:"required"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Reference     string  `json:"reference"`
	Notes         string  `json:"notes"`
}

type offlineBookingPayload struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CheckIn      string `json:"check_in" binding:"required"`
	CheckOut     string `json:"check_out" binding:"required"`
	Rooms        []struct {
		RoomID   uint `json:"room_id"`
		Quantity int  `json:"quantity"`
	} `json:"rooms" binding:"required"`
	NumGuests       int    `json:"num_guests"`
	SpecialRequests string `json:"special_requests"`
	SpecialDiscount bool   `json:"special_discount"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func decodeDocuments(payload map[string]documentPayload) (map[string]services.DocumentFile, error) {
	docs := map[string]services.DocumentFile{}
	for kind, doc := range payload {
		raw := doc.Data
		if idx := strings.Index(raw, "base64,"); idx >= 0 {
			raw = raw[idx+7:]
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, err
		}
		docs[kind] = services.DocumentFile{Filename: doc.Filename, Data: data}
	}
	return docs, nil
}

func parseBookingDate(raw string) (time.Time, bool) {
	if t := parseDateParam(raw); t != nil {
		return *t, true
	}
	return time.Time{}, false
}

// ---------------------------
// 1) Customer checkout (POST /api/bookings)
// ---------------------------

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "invalid payload: "+err.Error())
		return
	}

	checkIn, okIn := parseBookingDate(payload.CheckIn)
	checkOut, okOut := parseBookingDate(payload.CheckOut)
	if !okIn || !okOut || !checkOut.After(checkIn) {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "check-out must be after check-in")
		return
	}

	docs, err := decodeDocuments(payload.Documents)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "attached document is not valid base64")
		return
	}

	userID := c.GetUint(middleware.CtxUserID)
	var customer models.Customer
	if err := config.DB.First(&customer, userID).Error; err != nil {
		utils.JSONErrorCode(c, http.StatusUnauthorized, "error.loginRequired", "please login to continue")
		return
	}

	input := services.SubmissionInput{
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		GuestDetails:     payload.Guests,
		Address:          payload.Address,
		City:             payload.City,
		State:            payload.State,
		Pincode:          payload.Pincode,
		IDType:           payload.IDType,
		IDNumber:         payload.IDNumber,
		BookingFor:       payload.BookingFor,
		RelativeIDType:   payload.RelativeIDType,
		RelativeIDNumber: payload.RelativeIDNumber,
		SpecialRequests:  payload.SpecialRequests,
		Documents:        docs,
	}

	sessionID := c.GetString(middleware.CtxSessionID)
	booking, err := ctrl.BookingSvc.Submit(c.Request.Context(), customer, sessionID, input)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", verr.Message)
		case errors.Is(err, services.ErrEmptyCart):
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "your cart is empty")
		case errors.Is(err, services.ErrRoomsUnavailable):
			// Distinct from validation: the inventory moved underneath us.
			utils.JSONErrorCode(c, http.StatusConflict, "error.noLongerAvailable",
				"selected rooms are no longer available for these dates")
		case errors.Is(err, services.ErrUploadFailed):
			utils.JSONErrorCode(c, http.StatusBadGateway, "error.uploadFailed",
				"document upload failed, please try again")
		default:
			log.Printf("booking submission failed: %v", err)
			utils.JSONErrorCode(c, http.StatusInternalServerError, "error.bookingFailed",
				"booking failed, please try again")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"booking_ids":    []uint{booking.ID},
		"booking_number": booking.BookingNumber,
		"total_amount":   booking.TotalAmount,
		// The frontend takes the first identifier on to the payment step.
		"payment_booking_id": booking.ID,
	})
}

// ---------------------------
// 2) Cart quote (GET /api/cart/quote?check_in=&check_out=)
// ---------------------------
//
// Same pricing the checkout uses, with live GST rates, so the search page,
// room detail and checkout all show identical totals.

func (ctrl *BookingController) QuoteCart(c *gin.Context) {
	checkIn := parseDateParam(c.Query("check_in"))
	checkOut := parseDateParam(c.Query("check_out"))

	sessionID := c.GetString(middleware.CtxSessionID)
	cart, err := ctrl.BookingSvc.Cart.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load cart")
		return
	}
	entries := services.Entries(cart)

	gstByRoom := map[uint]float64{}
	if len(entries) > 0 {
		ids := make([]uint, 0, len(entries))
		for _, entry := range entries {
			ids = append(ids, entry.RoomID)
		}
		var rooms []models.Room
		if err := config.DB.Where("id IN ?", ids).Find(&rooms).Error; err == nil {
			for _, room := range rooms {
				gstByRoom[room.ID] = room.GSTPercentage
			}
		}
	}

	var ci, co time.Time
	if checkIn != nil {
		ci = *checkIn
	}
	if checkOut != nil {
		co = *checkOut
	}
	totals := services.ComputeTotals(entries, ci, co, gstByRoom, false)
	utils.JSONSuccess(c, http.StatusOK, totals)
}

// ---------------------------
// 3) Customer booking views
// ---------------------------

func (ctrl *BookingController) GetMyBookings(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)
	var bookings []models.Booking
	if err := config.DB.
		Preload("Items.Room").
		Where("customer_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (ctrl *BookingController) GetMyBookingDetails(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)
	var booking models.Booking
	if err := config.DB.
		Preload("Items.Room").Preload("Guests").Preload("Payments").
		Where("id = ? AND customer_id = ?", c.Param("id"), userID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": booking})
}

// ---------------------------
// 4) Admin booking management
// ---------------------------

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	query := config.DB.Preload("Items.Room").Preload("Customer").Order("created_at DESC")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	var booking models.Booking
	if err := config.DB.
		Preload("Items.Room").Preload("Guests").Preload("Payments").Preload("Customer").
		First(&booking, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": booking})
}

func (ctrl *BookingController) UpdateBookingStatus(c *gin.Context) {
	var payload statusUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid status payload")
		return
	}

	id, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := ctrl.BookingSvc.UpdateStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found")
		case errors.Is(err, services.ErrBadTransition):
			utils.JSONError(c, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrRoomsUnavailable):
			utils.JSONErrorCode(c, http.StatusConflict, "error.noLongerAvailable",
				"rooms were taken by another confirmed booking")
		default:
			log.Printf("status update failed for booking %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to update status")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": booking})
}

func (ctrl *BookingController) UpdatePaymentStatus(c *gin.Context) {
	var payload paymentUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment payload")
		return
	}

	id, ok := paramUint(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	payment := models.Payment{
		Amount:    payload.Amount,
		Method:    payload.Method,
		Reference: payload.Reference,
		Status:    payload.PaymentStatus,
		Notes:     payload.Notes,
	}

	booking, err := ctrl.BookingSvc.RecordPayment(c.Request.Context(), id, payment, payload.PaymentStatus)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found")
		case errors.As(err, &verr):
			utils.JSONError(c, http.StatusBadRequest, verr.Message)
		default:
			log.Printf("payment update failed for booking %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to update payment")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": booking})
}

// CreateOfflineBooking enters a walk-in booking; the only path that can use
// the special-discount (zero rate) pricing mode.
func (ctrl *BookingController) CreateOfflineBooking(c *gin.Context) {
	var payload offlineBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	checkIn, okIn := parseBookingDate(payload.CheckIn)
	checkOut, okOut := parseBookingDate(payload.CheckOut)
	if !okIn || !okOut {
		utils.JSONError(c, http.StatusBadRequest, "invalid dates")
		return
	}

	input := services.OfflineBookingInput{
		CustomerName:    payload.CustomerName,
		Email:           payload.Email,
		Phone:           payload.Phone,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Rooms:           payload.Rooms,
		NumGuests:       payload.NumGuests,
		SpecialRequests: payload.SpecialRequests,
		SpecialDiscount: payload.SpecialDiscount,
	}

	booking, err := ctrl.BookingSvc.CreateOffline(c.Request.Context(), input)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.JSONError(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, services.ErrRoomsUnavailable):
			utils.JSONErrorCode(c, http.StatusConflict, "error.noLongerAvailable",
				"selected rooms are no longer available for these dates")
		default:
			log.Printf("offline booking failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"booking": booking})
}
