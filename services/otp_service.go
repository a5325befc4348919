package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"math/big"
	"regexp"
	"time"

	"guesthouse-backend/utils"
)

// Phone-OTP verification gate. The booking orchestrator refuses to submit
// until the session's phone is verified. SMS dispatch is external; with no
// provider configured, codes are written to the log (dev fallback, same as
// the SMTP-less email mock).

const (
	otpTTL         = 5 * time.Minute
	verifiedTTL    = 2 * time.Hour
	otpCodeLength  = 6
	otpCodeCharset = "0123456789"
)

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrCodeMismatch = errors.New("verification code incorrect or expired")
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type OTPService struct {
	Store SessionStore
}

func NewOTPService(store SessionStore) *OTPService {
	return &OTPService{Store: store}
}

func otpKey(sessionID string) string      { return "otp:" + sessionID }
func verifiedKey(sessionID string) string { return "otp:verified:" + sessionID }

// RequestCode generates and "sends" a verification code for the phone.
func (s *OTPService) RequestCode(ctx context.Context, sessionID, phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	code, err := randomFromCharsetLocal(otpCodeLength, otpCodeCharset)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.Store.Set(ctx, otpKey(sessionID), code, otpTTL); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	provider := utils.EnvOrDefault("SMS_PROVIDER", "")
	if provider == "" {
		log.Printf("[MOCK SMS] to:%s code:%s", maskPhone(phone), code)
		return nil
	}
	// Real provider dispatch would go here; none is wired in this deployment.
	log.Printf("[SMS:%s] to:%s", provider, phone)
	return nil
}

// VerifyCode checks the submitted code and flags the session verified.
func (s *OTPService) VerifyCode(ctx context.Context, sessionID, code string) error {
	stored, err := s.Store.Get(ctx, otpKey(sessionID))
	if errors.Is(err, ErrKeyNotFound) {
		return ErrCodeMismatch
	}
	if err != nil {
		return fmt.Errorf("load code: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrCodeMismatch
	}
	_ = s.Store.Del(ctx, otpKey(sessionID))
	return s.Store.Set(ctx, verifiedKey(sessionID), "1", verifiedTTL)
}

// IsVerified reports whether this session has passed phone verification.
func (s *OTPService) IsVerified(ctx context.Context, sessionID string) bool {
	val, err := s.Store.Get(ctx, verifiedKey(sessionID))
	return err == nil && val == "1"
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return "******" + phone[len(phone)-4:]
}

func randomFromCharsetLocal(n int, charset string) (string, error) {
	alphaLen := big.NewInt(int64(len(charset)))
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		out[i] = charset[num.Int64()]
	}
	return string(out), nil
}
