package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateBookingNumber(t *testing.T) {
	at := time.Date(2025, 11, 15, 18, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^GH-20251115-[A-HJ-NP-Z2-9]{4}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		number, err := GenerateBookingNumber(at)
		if err != nil {
			t.Fatalf("GenerateBookingNumber: %v", err)
		}
		if !pattern.MatchString(number) {
			t.Fatalf("number %q does not match expected format", number)
		}
		// The charset drops lookalikes; make sure none sneak in.
		suffix := number[len(number)-4:]
		if strings.ContainsAny(suffix, "01ILO") {
			t.Fatalf("number %q contains an ambiguous character", number)
		}
		seen[number] = true
	}
	if len(seen) < 2 {
		t.Error("suffixes should vary across generations")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(16)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	if len(token) != 32 {
		t.Errorf("token length = %d, want 32 hex chars", len(token))
	}
	if _, err := GenerateSecureToken(0); err == nil {
		t.Error("zero length should error")
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("GH_TEST_KEY", "value")
	if got := EnvOrDefault("GH_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("got %q, want value", got)
	}
	t.Setenv("GH_TEST_KEY", "   ")
	if got := EnvOrDefault("GH_TEST_KEY", "fallback"); got != "fallback" {
		t.Errorf("blank env should fall back, got %q", got)
	}
	if got := EnvOrDefault("GH_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("missing env should fall back, got %q", got)
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"asha.verma@example.com", "a********a@e******.com"},
		{"ab@example.com", "a*@e******.com"},
		{"a@example.com", "a@e******.com"},
		{"not-an-email", "not-an-email"},
	}
	for _, tt := range tests {
		if got := MaskEmail(tt.in); got != tt.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
