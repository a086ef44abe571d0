package service

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/panaderia-next/internal/config"
)

// ErrPasswordTooWeak flags a password rejected by the active policy.
var ErrPasswordTooWeak = errors.New("password does not meet the policy")

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	minLength := policy.MinLength
	if minLength <= 0 {
		minLength = 8
	}
	if len(password) < minLength {
		return fmt.Errorf("%w: at least %d characters required", ErrPasswordTooWeak, minLength)
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}
	if policy.RequireUpper && !hasUpper {
		return fmt.Errorf("%w: an uppercase letter is required", ErrPasswordTooWeak)
	}
	if policy.RequireLower && !hasLower {
		return fmt.Errorf("%w: a lowercase letter is required", ErrPasswordTooWeak)
	}
	if policy.RequireNumber && !hasNumber {
		return fmt.Errorf("%w: a digit is required", ErrPasswordTooWeak)
	}
	return nil
}
