package validation

import (
	"regexp"
	"strconv"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidPassword requires at least 6 characters with an upper-case letter, a
// lower-case letter and a digit.
func ValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}

func ValidName(name string) bool {
	return name != "" && len(name) <= 191
}

// ValidNumber accepts a non-empty string that parses as a number.
func ValidNumber(number string) bool {
	number = strings.TrimSpace(number)
	if number == "" {
		return false
	}
	_, err := strconv.ParseFloat(number, 64)
	return err == nil
}
