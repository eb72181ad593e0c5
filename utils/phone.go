package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhoneNumber strips formatting for storage, keeping a leading +.
func NormalizePhoneNumber(phoneNumber string) string {
	hasPlus := strings.HasPrefix(strings.TrimSpace(phoneNumber), "+")
	digits := nonDigits.ReplaceAllString(phoneNumber, "")
	if hasPlus {
		return "+" + digits
	}
	return digits
}

// ValidatePhoneNumber accepts E.164-ish numbers: 7 to 15 digits, optional +.
func ValidatePhoneNumber(phoneNumber string) bool {
	digits := nonDigits.ReplaceAllString(phoneNumber, "")
	return len(digits) >= 7 && len(digits) <= 15
}
