// Package stats derives the numeric and cosmetic game stats of a card from
// its category and identity. Synthesis is pure: the tribute pick is an
// identity-stable hash over [1, cap], so the same card always rolls the same
// stats, spread across the category's allowed range.
package stats

import (
	"math"
	"strings"

	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/pkg/stablehash"
)

// TributeGlyph renders once per tribute point on the card face.
const TributeGlyph = "🙇‍♂️"

// Stats is everything the synthesizer stamps onto a card.
type Stats struct {
	Atk          int
	Def          int
	Level        int
	TributeCount int
	Tribute      string // TributeGlyph repeated TributeCount times
	Icon         string
	Rarity       string
	FrameType    string
	Color        string
	Emoji        string
}

// Identity builds the stable identity string for a card.
func Identity(name, sourceURL string) string {
	return name + "|" + sourceURL
}

// Synthesize computes stats for a category and identity. It is total: an
// unknown category uses the neutral trait row rather than failing.
func Synthesize(category domain.Category, identity string) Stats {
	tr := domain.TraitsOf(category)
	cap := tr.MaxTribute
	if cap < 1 {
		cap = 1
	}

	tribute := stablehash.Pick31(identity, cap) + 1

	atk := int(math.Round(domain.MinAtk + float64(tribute)/float64(cap)*(domain.MaxAtk-domain.MinAtk)))
	def := int(math.Round(float64(atk) * 0.8))
	if def < domain.MinDef {
		def = domain.MinDef
	}

	return Stats{
		Atk:          atk,
		Def:          def,
		Level:        tribute,
		TributeCount: tribute,
		Tribute:      strings.Repeat(TributeGlyph, tribute),
		Icon:         tr.Icon,
		Rarity:       tr.Rarity,
		FrameType:    tr.FrameType,
		Color:        tr.Color,
		Emoji:        tr.Emoji,
	}
}

// Apply stamps s onto c, overwriting any prior stats and cosmetics that are
// category-derived. Name, effects, tags and images are untouched.
func Apply(c *domain.Card, s Stats) {
	c.Atk = s.Atk
	c.Def = s.Def
	c.Level = s.Level
	c.TributeCount = s.TributeCount
	c.Tribute = s.Tribute
	c.Rarity = s.Rarity
	c.FrameType = s.FrameType
	if c.Icon == "" {
		c.Icon = s.Icon
	}
}

// Restamp recomputes stats for a card from its current category and identity
// and applies them. Used after fusion so merged cards always reflect their
// final category, never a contributor's.
func Restamp(c *domain.Card) {
	Apply(c, Synthesize(c.Category, Identity(c.Name, c.SourceURL)))
}
