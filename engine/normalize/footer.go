package normalize

import (
	"regexp"
	"strings"

	"github.com/sporez/cardforge/engine/domain"
)

// isoTimestamp matches RFC 3339 timestamp fragments embedded in footer text.
var isoTimestamp = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?`)

// FlattenFooter reduces any historical footer representation, a free string
// or a {tags,set,timestamp} block, to one string with embedded timestamps
// stripped and the brand suffix appended exactly once. Flattening an already
// flattened footer returns it unchanged.
func FlattenFooter(raw any) string {
	var flat string
	switch v := raw.(type) {
	case string:
		flat = v
	case map[string]any:
		var parts []string
		if tags := Partial(v).Strings("tags"); len(tags) > 0 {
			parts = append(parts, strings.Join(tags, " "))
		}
		if set := Partial(v).Str("set"); set != "" {
			parts = append(parts, set)
		}
		// The timestamp member lives in Card.Timestamp, not the footer.
		flat = strings.Join(parts, " | ")
	}

	flat = isoTimestamp.ReplaceAllString(flat, "")
	flat = strings.Trim(strings.Join(strings.Fields(flat), " "), " |•-")
	flat = strings.TrimSpace(flat)

	if strings.Contains(flat, domain.BrandFooter) {
		return flat
	}
	if flat == "" {
		return domain.BrandFooter
	}
	return flat + " | " + domain.BrandFooter
}
