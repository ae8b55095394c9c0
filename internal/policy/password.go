package policy

import (
	"strings"
	"unicode"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// passwordSpecials is the accepted special-character set.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// PasswordFailure identifies the first rule a candidate password broke.
type PasswordFailure string

const (
	PasswordTooShort      PasswordFailure = "too_short"
	PasswordNoUppercase   PasswordFailure = "missing_uppercase"
	PasswordNoLowercase   PasswordFailure = "missing_lowercase"
	PasswordNoDigit       PasswordFailure = "missing_digit"
	PasswordNoSpecialChar PasswordFailure = "missing_special_char"
)

// PasswordPolicyError reports why a password was rejected. Callers must
// surface the specific reason, never a bare yes/no.
type PasswordPolicyError struct {
	Reason PasswordFailure
}

func (e *PasswordPolicyError) Error() string {
	switch e.Reason {
	case PasswordTooShort:
		return "password must be at least 8 characters long"
	case PasswordNoUppercase:
		return "password must contain at least one uppercase letter"
	case PasswordNoLowercase:
		return "password must contain at least one lowercase letter"
	case PasswordNoDigit:
		return "password must contain at least one number"
	case PasswordNoSpecialChar:
		return "password must contain at least one special character"
	}
	return "password does not meet complexity requirements"
}

// ValidatePassword checks the complexity policy: minimum length plus at
// least one uppercase letter, lowercase letter, digit, and special
// character. Rules are checked in that order and the first failure wins.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &PasswordPolicyError{Reason: PasswordTooShort}
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(passwordSpecials, r) {
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return &PasswordPolicyError{Reason: PasswordNoUppercase}
	case !hasLower:
		return &PasswordPolicyError{Reason: PasswordNoLowercase}
	case !hasDigit:
		return &PasswordPolicyError{Reason: PasswordNoDigit}
	case !hasSpecial:
		return &PasswordPolicyError{Reason: PasswordNoSpecialChar}
	}

	return nil
}
