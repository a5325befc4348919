package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"guesthouse-backend/config"
	"guesthouse-backend/middleware"
	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type registerPayload struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type phoneRequestPayload struct {
	Phone string `json:"phone" binding:"required"`
}

type phoneVerifyPayload struct {
	Code string `json:"code" binding:"required"`
}

const customerTokenTTL = 24 * time.Hour
const adminTokenTTL = 12 * time.Hour

type AuthController struct {
	OTP *services.OTPService
}

func NewAuthController(otp *services.OTPService) *AuthController {
	return &AuthController{OTP: otp}
}

// Register creates a customer account.
func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	customer := models.Customer{
		FullName: strings.TrimSpace(payload.FullName),
		Email:    strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:    strings.TrimSpace(payload.Phone),
		Password: string(hash),
	}
	if err := config.DB.Create(&customer).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			utils.JSONError(c, http.StatusConflict, "an account with this email already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	token, err := utils.IssueToken(customer.ID, utils.AudienceCustomer, "", customerTokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"token":    token,
		"customer": customer,
	})
}

// Login authenticates a customer.
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" {
		utils.JSONError(c, http.StatusBadRequest, "email required")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("email = ?", email).First(&customer).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.IssueToken(customer.ID, utils.AudienceCustomer, "", customerTokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token":    token,
		"customer": customer,
	})
}

// RequestPhoneCode sends (or mock-logs) an OTP for the session's phone.
func (ctrl *AuthController) RequestPhoneCode(c *gin.Context) {
	var payload phoneRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "phone required")
		return
	}

	sessionID := c.GetString(middleware.CtxSessionID)
	if err := ctrl.OTP.RequestCode(c.Request.Context(), sessionID, strings.TrimSpace(payload.Phone)); err != nil {
		if errors.Is(err, services.ErrInvalidPhone) {
			utils.JSONError(c, http.StatusBadRequest, "invalid phone number")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to send verification code")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"sent": true})
}

// VerifyPhoneCode confirms the OTP and marks the session phone-verified.
func (ctrl *AuthController) VerifyPhoneCode(c *gin.Context) {
	var payload phoneVerifyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "code required")
		return
	}

	sessionID := c.GetString(middleware.CtxSessionID)
	if err := ctrl.OTP.VerifyCode(c.Request.Context(), sessionID, strings.TrimSpace(payload.Code)); err != nil {
		if errors.Is(err, services.ErrCodeMismatch) {
			utils.JSONError(c, http.StatusBadRequest, "verification code incorrect or expired")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "verification failed")
		return
	}

	// Persist the flag on the account too, so re-logins skip the gate.
	userID := c.GetUint(middleware.CtxUserID)
	if err := config.DB.Model(&models.Customer{}).Where("id = ?", userID).
		Update("phone_verified", true).Error; err != nil {
		// Session flag already set; the account column is best-effort.
		log.Printf("warning: failed to persist phone_verified: %v", err)
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"verified": true})
}

// AdminLogin authenticates an admin account.
func AdminLogin(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" {
		username = strings.TrimSpace(payload.Email)
	}
	if username == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "login failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.IssueToken(admin.ID, utils.AudienceAdmin, "admin", adminTokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":        admin.ID,
			"full_name": admin.FullName,
			"username":  admin.Username,
		},
	})
}
