// Package fuse merges the normalized cards of one batch into a single
// representative card. Merging is order-sensitive: the primary card anchors
// every scalar field, list fields concatenate in input order under their
// caps, and the merged card's stats always come from its final category.
package fuse

import (
	"strings"

	"github.com/sporez/cardforge/engine/classify"
	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/engine/normalize"
	"github.com/sporez/cardforge/engine/stats"
	"github.com/sporez/cardforge/pkg/fn"
	"github.com/sporez/cardforge/pkg/metrics"
	"github.com/sporez/cardforge/pkg/stablehash"
)

const placeholderName = "Zetsu-Grade Fusion"

// Fuse merges cards plus the batch's raw source URLs into one FusionResult.
// An empty batch yields a placeholder card, never an error.
func Fuse(cards []domain.Card, batchURLs []string) domain.FusionResult {
	metrics.FusionsTotal.Inc()

	if len(cards) == 0 {
		return domain.FusionResult{
			Card:    placeholderCard(),
			Sources: mergeSources(nil, batchURLs),
		}
	}

	primary := pickPrimary(cards)
	// Scalar scan order: primary first, then everyone in input order.
	scan := append([]domain.Card{primary}, cards...)

	merged := domain.Card{
		ID:        firstScalar(scan, func(c domain.Card) string { return c.ID }),
		Name:      firstScalar(scan, func(c domain.Card) string { return c.Name }),
		Icon:      firstScalar(scan, func(c domain.Card) string { return c.Icon }),
		About:     firstScalar(scan, func(c domain.Card) string { return c.About }),
		Tribute:   firstScalar(scan, func(c domain.Card) string { return c.Tribute }),
		FrameType: firstScalar(scan, func(c domain.Card) string { return c.FrameType }),
		Timestamp: firstScalar(scan, func(c domain.Card) string { return c.Timestamp }),
		SourceURL: firstScalar(scan, func(c domain.Card) string { return c.SourceURL }),
		Category:  firstCategory(scan),
		Footer:    normalize.FlattenFooter(firstScalar(scan, func(c domain.Card) string { return c.Footer })),

		Effects:    mergeEffects(cards),
		CardImages: mergeImages(cards),
		Tags:       mergeStrings(cards, func(c domain.Card) []string { return c.Tags }, domain.MaxTags),
		CardSets:   mergeStrings(cards, func(c domain.Card) []string { return c.CardSets }, domain.MaxCardSets),
	}

	if merged.Category == "" {
		merged.Category = classify.Categorize(classify.Signals{
			Tags:  merged.Tags,
			Title: merged.Name,
			Brand: merged.About,
		})
	}
	// The fused card's stats reflect its final category, never a
	// contributor's.
	stats.Restamp(&merged)

	return domain.FusionResult{
		Card:    merged,
		Sources: mergeSources(cards, batchURLs),
	}
}

// pickPrimary prefers the first card with artwork, then the first with an
// effect, then the first card.
func pickPrimary(cards []domain.Card) domain.Card {
	for _, c := range cards {
		if len(c.CardImages) > 0 {
			return c
		}
	}
	for _, c := range cards {
		if len(c.Effects) > 0 {
			return c
		}
	}
	return cards[0]
}

func firstScalar(scan []domain.Card, get func(domain.Card) string) string {
	for _, c := range scan {
		if v := strings.TrimSpace(get(c)); v != "" {
			return v
		}
	}
	return ""
}

func firstCategory(scan []domain.Card) domain.Category {
	for _, c := range scan {
		if c.Category != "" {
			return c.Category
		}
	}
	return ""
}

func mergeEffects(cards []domain.Card) []domain.Effect {
	var all []domain.Effect
	for _, c := range cards {
		all = append(all, c.Effects...)
	}
	all = fn.Filter(all, func(e domain.Effect) bool { return strings.TrimSpace(e.Text) != "" })
	all = fn.UniqueBy(all, func(e domain.Effect) string {
		return strings.ToLower(strings.TrimSpace(e.Text))
	})
	return fn.Cap(all, domain.MaxEffects)
}

func mergeImages(cards []domain.Card) []domain.CardImage {
	var all []domain.CardImage
	for _, c := range cards {
		all = append(all, c.CardImages...)
	}
	all = fn.Filter(all, func(i domain.CardImage) bool { return i.ImageURL != "" })
	all = fn.UniqueBy(all, func(i domain.CardImage) string { return strings.ToLower(i.ImageURL) })
	return fn.Cap(all, domain.MaxImages)
}

func mergeStrings(cards []domain.Card, get func(domain.Card) []string, limit int) []string {
	var all []string
	for _, c := range cards {
		all = append(all, get(c)...)
	}
	all = fn.Filter(all, func(s string) bool { return strings.TrimSpace(s) != "" })
	all = fn.UniqueBy(all, strings.ToLower)
	return fn.Cap(all, limit)
}

func mergeSources(cards []domain.Card, batchURLs []string) []string {
	var all []string
	for _, c := range cards {
		all = append(all, c.SourceURL)
	}
	all = append(all, batchURLs...)
	all = fn.Filter(all, func(s string) bool { return strings.TrimSpace(s) != "" })
	all = fn.UniqueBy(all, strings.ToLower)
	return fn.Cap(all, domain.MaxSources)
}

// placeholderCard is returned for empty batches: empty lists, brand footer,
// and a deterministic category so stats still validate.
func placeholderCard() domain.Card {
	c := domain.Card{
		ID:       stablehash.ShortID(placeholderName),
		Name:     placeholderName,
		Footer:   normalize.FlattenFooter(""),
		Category: classify.Categorize(classify.Signals{Title: placeholderName}),
	}
	stats.Restamp(&c)
	return c
}
