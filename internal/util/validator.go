package util

import (
	"fmt"
	"strings"
	"time"
)

// ValidateAmount checks that an amount is positive and below the sanity cap.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 {
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateCurrencyCode checks for a 3-letter ISO 4217 style code and returns
// it uppercased.
func ValidateCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("currency code must be 3 letters, got %q", code)
	}
	for _, ch := range code {
		if ch < 'A' || ch > 'Z' {
			return "", fmt.Errorf("invalid currency code %q", code)
		}
	}
	return code, nil
}

// ParseDate parses the date formats accepted on transaction payloads.
func ParseDate(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,          // 2025-12-03T00:00:00Z
		"2006-01-02T15:04:05", // 2025-12-03T00:00:00
		"2006-01-02",          // 2025-12-03
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}
