// Package core holds the expense record model and the derived-view
// pipeline shared by the server, the repository and the mirror worker.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice converts a user-supplied amount string to a price value.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Explicit signs are rejected outright so a negative amount can never enter
// the model, and the parsed value must be strictly greater than zero.
// The supplied precision is preserved; no rounding happens here.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPrice
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidPrice
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidPrice
	}
	for _, part := range parts {
		for _, r := range part {
			if !unicode.IsDigit(r) {
				return 0, ErrInvalidPrice
			}
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	if v <= 0 {
		return 0, ErrInvalidPrice
	}
	return v, nil
}

// FormatAmount renders a price sum with exactly two decimal places.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
