// Package inputval checks free-text form input before it is sent to the API.
package inputval

import (
	"net/mail"
	"strconv"
	"strings"
)

// IsValidEmail reports whether s is a bare address (no display name).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	local, domain := s[:at], s[at+1:]
	return validDotted(local) && validDotted(domain)
}

func validDotted(s string) bool {
	return s != "" &&
		!strings.HasPrefix(s, ".") &&
		!strings.HasSuffix(s, ".") &&
		!strings.Contains(s, "..")
}

// PhoneDigits is the length of a phone number the API accepts.
const PhoneDigits = 10

// IsValidPhone reports whether s is exactly PhoneDigits ASCII digits.
func IsValidPhone(s string) bool {
	if len(s) != PhoneDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseFloatIn parses s and checks lo <= v <= hi.
func ParseFloatIn(s string, lo, hi float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v != v || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

// ParseIntIn parses s and checks lo <= v <= hi.
func ParseIntIn(s string, lo, hi int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

// Checkbox reports whether an HTML checkbox value means checked.
func Checkbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
