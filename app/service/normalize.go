package service

import "strings"

// NormalizeEmail produces the case-folded form used for lookups and
// uniqueness checks, distinct from the display form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeUserName(userName string) string {
	return strings.ToLower(strings.TrimSpace(userName))
}
