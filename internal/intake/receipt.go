// Package intake holds the domain logic shared by the submit and status
// handlers: receipt identifier generation and the mapping between intake
// records and the Notion database schema.
package intake

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
)

// NewReceiptID builds the receipt identifier shown to the customer:
// YYMMDD-HHMMSS-<name-without-spaces>-<last4phonedigits>. The timestamp is
// taken from now as given; callers pass wall-clock time in the shop timezone.
func NewReceiptID(now time.Time, customerName, phone string) string {
	cleanName := whitespacePattern.ReplaceAllString(strings.TrimSpace(customerName), "")
	return fmt.Sprintf("%s-%s-%s", now.Format("060102-150405"), cleanName, LastFourDigits(phone))
}

// LastFourDigits strips phone to digits only and returns the last 4,
// zero-padded on the left when fewer than 4 digits exist.
func LastFourDigits(phone string) string {
	digits := nonDigitPattern.ReplaceAllString(phone, "")
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	for len(digits) < 4 {
		digits = "0" + digits
	}
	return digits
}

// ValidChallenge reports whether last4 is exactly 4 digits.
func ValidChallenge(last4 string) bool {
	if len(last4) != 4 {
		return false
	}
	for _, r := range last4 {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
