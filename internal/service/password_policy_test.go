package service

import (
	"errors"
	"testing"

	"github.com/panaderia-next/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}

	if err := validatePassword(policy, "Secreto42"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	for _, bad := range []string{"Ab1", "alllower1", "ALLUPPER1", "NoDigits"} {
		err := validatePassword(policy, bad)
		if !errors.Is(err, ErrPasswordTooWeak) {
			t.Fatalf("password %q: expected ErrPasswordTooWeak, got %v", bad, err)
		}
	}
}

func TestValidatePasswordDefaultMinLength(t *testing.T) {
	policy := config.PasswordPolicyConfig{}
	if err := validatePassword(policy, "short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("zero min length should fall back to 8, got %v", err)
	}
	if err := validatePassword(policy, "longenough"); err != nil {
		t.Fatalf("no character class requirements set, got %v", err)
	}
}
