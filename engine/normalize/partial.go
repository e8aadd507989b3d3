package normalize

import "strings"

// Partial is an incoming card of unknown shape. Several historical producers
// emitted different layouts (flat enrich output, nested header/artwork
// blocks, already-normalized cards); accessors below cover every path the
// service has ever had to read.
type Partial map[string]any

// Str walks a nested key path and returns the trimmed string at the end, or
// "" when the path is absent or not a string.
func (p Partial) Str(path ...string) string {
	var cur any = map[string]any(p)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[key]
	}
	switch v := cur.(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}

// List returns the slice at a nested key path, or nil.
func (p Partial) List(path ...string) []any {
	var cur any = map[string]any(p)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	if l, ok := cur.([]any); ok {
		return l
	}
	return nil
}

// Strings returns the string members of the slice at path, trimmed, with
// blanks dropped.
func (p Partial) Strings(path ...string) []string {
	var out []string
	for _, v := range p.List(path...) {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// accessor yields one candidate value for a field.
type accessor func() string

// firstNonEmpty evaluates accessors in order and returns the first non-empty
// value. Every alias chain in this package runs through it, so each field's
// resolution order is explicit and testable on its own.
func firstNonEmpty(accessors ...accessor) string {
	for _, get := range accessors {
		if v := get(); v != "" {
			return v
		}
	}
	return ""
}

// lit wraps a known value as an accessor.
func lit(s string) accessor { return func() string { return s } }
