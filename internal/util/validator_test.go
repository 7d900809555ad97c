package util

import (
	"testing"
	"time"
)

func TestValidateAmount_Positive(t *testing.T) {
	testCases := []float64{0.01, 1.0, 100.5, 9999999.99}

	for _, amount := range testCases {
		if err := ValidateAmount(amount); err != nil {
			t.Errorf("ValidateAmount(%f) error = %v, want nil", amount, err)
		}
	}
}

func TestValidateAmount_Invalid(t *testing.T) {
	testCases := []float64{0, -0.01, -100, 10000000}

	for _, amount := range testCases {
		if err := ValidateAmount(amount); err == nil {
			t.Errorf("ValidateAmount(%f) error = nil, want error", amount)
		}
	}
}

func TestValidateCurrencyCode(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"USD", "USD", false},
		{"eur", "EUR", false},
		{" gbp ", "GBP", false},
		{"", "", true},
		{"US", "", true},
		{"USDC", "", true},
		{"U5D", "", true},
	}

	for _, tc := range testCases {
		got, err := ValidateCurrencyCode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ValidateCurrencyCode(%q) error = nil, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateCurrencyCode(%q) error = %v, want nil", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ValidateCurrencyCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{
		"2025-06-15",
		"2025-06-15T10:30:00",
		"2025-06-15T10:30:00Z",
	}
	for _, s := range valid {
		d, err := ParseDate(s)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", s, err)
			continue
		}
		if d.Year() != 2025 || d.Month() != time.June || d.Day() != 15 {
			t.Errorf("ParseDate(%q) = %v, wrong date", s, d)
		}
	}

	invalid := []string{"", "2025/06/15", "15-06-2025", "not-a-date"}
	for _, s := range invalid {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", s)
		}
	}
}
