package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/devcollab/devcollab/internal/app/system/auth"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)

	signed, err := tokens.Generate("user-1", "sess-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.SessionID != "sess-1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestTokens_WrongSecret(t *testing.T) {
	signed, err := auth.NewTokens("secret-a", time.Hour).Generate("u", "s")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	_, err = auth.NewTokens("secret-b", time.Hour).Validate(signed)
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokens_Expired(t *testing.T) {
	tokens := auth.NewTokens("test-secret", -time.Minute)
	signed, err := tokens.Generate("u", "s")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := tokens.Validate(signed); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokens_Garbage(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	if _, err := tokens.Validate("not.a.token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
