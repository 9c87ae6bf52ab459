package validation

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Phone numbers as typed on the post form: digits, spaces, +, -, parentheses, dots.
var phoneRe = regexp.MustCompile(`^\+?[0-9\s\-().]{6,}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(strings.TrimSpace(phone))
}

// Field is a named form value.
type Field struct {
	Name  string
	Value string
}

// FirstMissing returns the name of the first blank field, or "" if all are set.
func FirstMissing(fields ...Field) string {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return f.Name
		}
	}
	return ""
}
