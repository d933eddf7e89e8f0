package company

import (
	"strings"
	"time"
	"unicode"

	"jobboard/internal/common"
)

type Company struct {
	ID          common.UUID `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Website     string      `json:"website"`
	IsActive    bool        `json:"is_active"`
	IsVerified  bool        `json:"is_verified"`
	CreatedBy   common.UUID `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Slugify lowercases the name and collapses every non-alphanumeric run into a
// single hyphen. Deterministic: the same name always yields the same slug.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
