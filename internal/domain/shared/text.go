package shared

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const maxEmailLength = 200

// NormalizeEmail trims and lower-cases an address. A blank address is
// allowed and stays blank.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case email == "":
		return "", nil
	case len(email) > maxEmailLength:
		return "", NewDomainError("INVALID_EMAIL", fmt.Sprintf("Email cannot exceed %d characters", maxEmailLength))
	case !emailPattern.MatchString(email):
		return "", NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return email, nil
}

// MaxLength fails with code when s is longer than limit bytes
func MaxLength(code, label, s string, limit int) error {
	if len(s) > limit {
		return NewDomainError(code, fmt.Sprintf("%s cannot exceed %d characters", label, limit))
	}
	return nil
}
