// Package stablehash implements the two deterministic string hashes the card
// pipeline depends on. Both accumulate into a signed 32-bit integer with
// wraparound, so independently written ports produce bit-identical values.
package stablehash

import "strconv"

// ShortIDLen is the maximum length of a base-36 short id.
const ShortIDLen = 8

// Sum31 accumulates h = h*31 + codepoint per rune, wrapped to 32 bits, and
// returns the absolute value as a non-negative int64.
func Sum31(s string) int64 {
	return abs32(accumulate(s, 31))
}

// Pick31 reduces Sum31(s) into [0, n). n must be positive.
func Pick31(s string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(Sum31(s) % int64(n))
}

// ShortID hashes s with the 33-multiplier variant and renders the absolute
// value in base 36, truncated to ShortIDLen characters. Used where a compact
// displayable id is needed rather than a numeric pick.
func ShortID(s string) string {
	enc := strconv.FormatInt(abs32(accumulate(s, 33)), 36)
	if len(enc) > ShortIDLen {
		enc = enc[:ShortIDLen]
	}
	return enc
}

func accumulate(s string, mult int32) int32 {
	var h int32
	for _, r := range s {
		h = h*mult + int32(r)
	}
	return h
}

// abs32 widens before negating so math.MinInt32 does not overflow.
func abs32(h int32) int64 {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
