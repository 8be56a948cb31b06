package utils

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Indonesian mobile numbers: optional +62/62 or leading 0, then 8xx.
var phoneRegex = regexp.MustCompile(`^(\+62|62|0)8[1-9][0-9]{6,10}$`)

// NewValidator returns the request validator with the custom tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	return v
}

// ValidPhone reports whether s looks like a reachable customer phone number.
func ValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// QueryInt parses a positive integer query parameter, falling back to def on
// absence or garbage.
func QueryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
