package services

import (
	"context"
	"errors"
	"testing"
)

func TestRequestCodeRejectsBadPhone(t *testing.T) {
	svc := NewOTPService(NewMemorySessionStore())
	for _, phone := range []string{"", "12345", "not-a-phone", "+12 34"} {
		if err := svc.RequestCode(context.Background(), "customer:1", phone); !errors.Is(err, ErrInvalidPhone) {
			t.Errorf("phone %q: expected ErrInvalidPhone, got %v", phone, err)
		}
	}
}

func TestVerifyCodeFlow(t *testing.T) {
	store := NewMemorySessionStore()
	svc := NewOTPService(store)
	ctx := context.Background()

	if err := svc.RequestCode(ctx, "customer:1", "+919876543210"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	code, err := store.Get(ctx, "otp:customer:1")
	if err != nil {
		t.Fatalf("code not stored: %v", err)
	}
	if len(code) != otpCodeLength {
		t.Fatalf("code %q has wrong length", code)
	}

	if err := svc.VerifyCode(ctx, "customer:1", "000000x"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("wrong code: expected ErrCodeMismatch, got %v", err)
	}
	if svc.IsVerified(ctx, "customer:1") {
		t.Fatal("session must not be verified after a failed attempt")
	}

	if err := svc.VerifyCode(ctx, "customer:1", code); err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}
	if !svc.IsVerified(ctx, "customer:1") {
		t.Fatal("session should be verified")
	}

	// The code is single-use.
	if err := svc.VerifyCode(ctx, "customer:1", code); !errors.Is(err, ErrCodeMismatch) {
		t.Errorf("reused code: expected ErrCodeMismatch, got %v", err)
	}
}

func TestVerifyCodeWithoutRequest(t *testing.T) {
	svc := NewOTPService(NewMemorySessionStore())
	if err := svc.VerifyCode(context.Background(), "customer:2", "123456"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
}

func TestMaskPhone(t *testing.T) {
	if got := maskPhone("+919876543210"); got != "******3210" {
		t.Errorf("maskPhone = %q", got)
	}
	if got := maskPhone("123"); got != "123" {
		t.Errorf("short phone should pass through, got %q", got)
	}
}
