package salon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxNameLen        = 100
	maxRoleLen        = 50
	maxCategoryLen    = 50
	maxAddressLen     = 255
	maxDescriptionLen = 500
	maxNotesLen       = 500
)

var (
	emailRx = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRx = regexp.MustCompile(`^\d{10,11}$`)
)

// requireText trims s and checks it is non-empty and within max runes.
// Returns the trimmed value.
func requireText(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, "cannot be empty")
	}
	if len([]rune(s)) > max {
		return "", invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return s, nil
}

// optionalText trims *s and checks length; empty becomes nil.
func optionalText(field string, s *string, max int) (*string, error) {
	if s == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil, nil
	}
	if len([]rune(trimmed)) > max {
		return nil, invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return &trimmed, nil
}

func validEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", invalid("email", "cannot be empty")
	}
	if !emailRx.MatchString(email) {
		return "", invalid("email", "is not a valid email address")
	}
	return email, nil
}

func validPhone(phone *string) (*string, error) {
	if phone == nil {
		return nil, nil
	}
	p := strings.TrimSpace(*phone)
	if p == "" {
		return nil, nil
	}
	if !phoneRx.MatchString(p) {
		return nil, invalid("phone", "must be a 10 or 11 digit number")
	}
	return &p, nil
}

func validPrice(field string, price decimal.Decimal) error {
	if price.Sign() <= 0 {
		return invalid(field, "must be greater than zero")
	}
	return nil
}

// normalizeSpecialties trims entries, drops blanks and removes duplicates
// while preserving input order.
func normalizeSpecialties(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
