// Package validate holds the payload-level invariant checks that run
// at write time, after policy has allowed the write. Each check is an
// independent predicate; MessageInsert runs all of them regardless of
// earlier failures and reports every violation at once.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
)

const (
	MaxEmailLength = 255
	MaxPhoneLength = 20
	MaxBodyLength  = 5000
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{6,20}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// ValidEmail checks a non-empty email against the local@domain pattern
// and the length cap.
func ValidEmail(email string) bool {
	if len(email) > MaxEmailLength {
		return false
	}
	return emailPattern.MatchString(email)
}

// ValidPhone strips spaces, dashes, and parentheses, then requires an
// optional leading plus followed by 6-20 digits. The raw value is also
// capped at 20 characters.
func ValidPhone(phone string) bool {
	if len(phone) > MaxPhoneLength {
		return false
	}
	return phonePattern.MatchString(phoneStrip.Replace(phone))
}

// MessageInsert validates an inquiry payload against the authenticated
// actor. Every check runs; one failure is enough to reject the whole
// insert.
func MessageInsert(actorID string, m *models.Message) error {
	var reasons []string

	if m.SeekerID != actorID {
		reasons = append(reasons, "seeker_id must match the authenticated user")
	}

	if m.Email != "" && !ValidEmail(m.Email) {
		reasons = append(reasons, "email is not a valid address")
	}

	if m.Phone != "" && !ValidPhone(m.Phone) {
		reasons = append(reasons, "phone is not a valid number")
	}

	body := strings.TrimSpace(m.Body)
	if body == "" {
		reasons = append(reasons, "body must not be empty")
	} else if utf8.RuneCountInString(m.Body) > MaxBodyLength {
		reasons = append(reasons, fmt.Sprintf("body exceeds %d characters", MaxBodyLength))
	}

	if len(reasons) > 0 {
		return apperr.Validation(reasons...)
	}
	return nil
}

// ProfileContact validates the updatable contact fields of a profile.
// Both fields are optional; present values must be well-formed.
func ProfileContact(phone string) error {
	var reasons []string

	if phone != "" && !ValidPhone(phone) {
		reasons = append(reasons, "phone is not a valid number")
	}

	if len(reasons) > 0 {
		return apperr.Validation(reasons...)
	}
	return nil
}
