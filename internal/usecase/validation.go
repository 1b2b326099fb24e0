package usecase

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
)

const minPasswordLength = 8

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]+$`)

	dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

	markupStripper = strings.NewReplacer("<", "", ">", "")
)

// NormalizeEmail trims and lower-cases an address. It is idempotent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail reports whether email has a single @ with a dotted domain.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone accepts digits, spaces, dashes, plus and parentheses with at least ten digits.
func ValidatePhone(phone string) bool {
	if !phonePattern.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}

// ValidatePassword requires eight characters with upper, lower and digit classes.
func ValidatePassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// Sanitize trims s and strips angle brackets.
func Sanitize(s string) string {
	return markupStripper.Replace(strings.TrimSpace(s))
}

// ParseAppointmentDate parses value and requires it to be strictly after now.
// Date-only values are taken as UTC midnight.
func ParseAppointmentDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if !parsed.After(now) {
			return time.Time{}, domainErrors.NewValidationError("date", "Invalid date")
		}
		return parsed, nil
	}
	return time.Time{}, domainErrors.NewValidationError("date", "Invalid date")
}

// MaxTotal is the largest declared total accepted for a booking. Points for
// it still fit a 32-bit integer.
const MaxTotal = math.MaxInt32 / 10

// PointsFor converts a declared total into loyalty points: ten per currency unit, rounded down.
func PointsFor(total float64) int {
	return int(math.Floor(total * 10))
}
