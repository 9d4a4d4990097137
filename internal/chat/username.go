package chat

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const specialCharacters = "!@#$%^&*()-_+=[]{}|;:'\",.<>/?`~"

// Standardize returns the form of a username used as the room membership key:
// trimmed and case-folded. The original spelling is kept separately for
// display only.
func Standardize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidateUsername checks the standardized username against the format rules.
// The rules are checked in a fixed order and the first failure is returned.
func ValidateUsername(username string) *Error {
	if utf8.RuneCountInString(username) < 5 {
		return newError(ErrorCodeInvalidUsername, "Username must be at least 5 characters long.")
	}

	digits := 0
	for _, r := range username {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 2 {
		return newError(ErrorCodeInvalidUsername, "Username must contain at least 2 numbers.")
	}

	if !strings.ContainsAny(username, specialCharacters) {
		return newError(ErrorCodeInvalidUsername, "Username must contain at least 1 special character.")
	}

	return nil
}
