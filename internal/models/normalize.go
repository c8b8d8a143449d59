package models

import "strings"

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeSlug lower-cases a slug, turns spaces into underscores and drops apostrophes.
func NormalizeSlug(slug string) string {
	slug = strings.ToLower(slug)
	slug = strings.ReplaceAll(slug, " ", "_")
	return strings.ReplaceAll(slug, "'", "")
}
