package auth

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.CreateAccessToken("admin-1", []string{"admin", "support"})
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}

	user, err := m.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken failed: %v", err)
	}
	if user.ID != "admin-1" {
		t.Errorf("ID = %q, want admin-1", user.ID)
	}
	if len(user.Roles) != 2 || user.Roles[0] != "admin" || user.Roles[1] != "support" {
		t.Errorf("Roles = %v, want [admin support]", user.Roles)
	}
}

func TestCreateAccessToken_EmptySubject(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	if _, err := m.CreateAccessToken("", nil); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	issued := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := issued

	m := NewManagerWithClock("test-secret", 30*time.Minute, func() time.Time { return clock })

	token, err := m.CreateAccessToken("admin-1", nil)
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}

	clock = issued.Add(29 * time.Minute)
	if _, err := m.VerifyAccessToken(token); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	clock = issued.Add(31 * time.Minute)
	if _, err := m.VerifyAccessToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	minter := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := minter.CreateAccessToken("admin-1", nil)
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}

	if _, err := verifier.VerifyAccessToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := m.VerifyAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("VerifyAccessToken(%q) = %v, want ErrTokenInvalid", tok, err)
		}
	}
}
