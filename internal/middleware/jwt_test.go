package middleware

import (
	"testing"
	"time"
)

func TestDeviceTokenRoundTrip(t *testing.T) {
	tok, err := GenerateDeviceToken(7, 42, 10*time.Minute)
	if err != nil {
		t.Fatalf("GenerateDeviceToken: %v", err)
	}
	uid, vid, err := ParseDeviceToken(tok)
	if err != nil {
		t.Fatalf("ParseDeviceToken: %v", err)
	}
	if uid != 7 || vid != 42 {
		t.Fatalf("got user=%d vehicle=%d, want 7/42", uid, vid)
	}
}

func TestSessionTokenRejectedAsDeviceToken(t *testing.T) {
	tok, err := GenerateToken(7, "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, _, err := ParseDeviceToken(tok); err == nil {
		t.Fatalf("expected session token to be rejected for device login")
	}
}

func TestExpiredDeviceTokenRejected(t *testing.T) {
	tok, err := GenerateDeviceToken(7, 42, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateDeviceToken: %v", err)
	}
	if _, _, err := ParseDeviceToken(tok); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}
