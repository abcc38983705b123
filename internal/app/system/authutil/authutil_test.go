package authutil_test

import (
	"errors"
	"testing"

	"github.com/devcollab/devcollab/internal/app/system/authutil"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := authutil.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !authutil.CheckPassword("correct horse", hash) {
		t.Error("correct password rejected")
	}
	if authutil.CheckPassword("wrong horse", hash) {
		t.Error("wrong password accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := authutil.ValidatePassword("123456"); err != nil {
		t.Errorf("six characters must pass, got %v", err)
	}
	if err := authutil.ValidatePassword("12345"); !errors.Is(err, authutil.ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.com", "x+tag@sub.domain.org"}
	for _, email := range valid {
		if !authutil.ValidEmail(email) {
			t.Errorf("expected %q valid", email)
		}
	}

	invalid := []string{"", "plain", "@b.co", "a@", "a@b", "a@@b.co", "a@.co", "a@bco."}
	for _, email := range invalid {
		if authutil.ValidEmail(email) {
			t.Errorf("expected %q invalid", email)
		}
	}
}
