package publish

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const maxSlugLen = 64

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses non-alphanumeric runs to dashes, and cuts
// at 64 characters. Empty input yields an empty slug.
func Slugify(s string) string {
	s = nonSlug.ReplaceAllString(strings.ToLower(s), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLen {
		s = strings.Trim(s[:maxSlugLen], "-")
	}
	return s
}

// SafeSlug never returns empty: unusable input falls back to a
// time-derived drop slug.
func SafeSlug(s string) string {
	if slug := Slugify(s); slug != "" {
		return slug
	}
	return "drop-" + strconv.FormatInt(time.Now().UnixMilli(), 36)
}
