// Package domain defines the card schema, the fixed category enumeration with
// its per-category traits, and validation for the CardForge pipeline. It acts
// as the validation gate at pipeline entry and exit points.
package domain

// ExtractedMetadata is what the extractor distills from one fetched document.
// Every field except URL is optional; Image, when set, has already passed the
// validity/tracker/pixel filter.
type ExtractedMetadata struct {
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	SiteName    string   `json:"siteName,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Author      string   `json:"author,omitempty"`
}

// Effect is one effect line on a card.
type Effect struct {
	Icons string `json:"icons"`
	Emoji string `json:"emoji"`
	Text  string `json:"text"`
}

// CardImage wraps an artwork URL, matching the renderer's schema.
type CardImage struct {
	ImageURL string `json:"image_url"`
}

// Card is the canonical normalized card. The front-end renderer consumes this
// shape verbatim, so field names and JSON tags are load-bearing.
type Card struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Icon         string      `json:"icon"`
	About        string      `json:"about"`
	Tribute      string      `json:"tribute"`
	Effects      []Effect    `json:"effects"`
	Rarity       string      `json:"rarity"`
	Tags         []string    `json:"tags"`
	CardSets     []string    `json:"card_sets"`
	Timestamp    string      `json:"timestamp"`
	Footer       string      `json:"footer"`
	CardImages   []CardImage `json:"card_images"`
	FrameType    string      `json:"frameType"`
	Category     Category    `json:"category"`
	Atk          int         `json:"atk"`
	Def          int         `json:"def"`
	Level        int         `json:"level"`
	TributeCount int         `json:"tribute_count"`
	SourceURL    string      `json:"sourceUrl"`
}

// FusionResult is the sole externally visible output of a batch request.
type FusionResult struct {
	Card    Card     `json:"card"`
	Sources []string `json:"sources"`
}

// Caps applied by the normalizer and the fusion engine.
const (
	MaxEffects   = 4
	MaxTags      = 12
	MaxCardSets  = 6
	MaxImages    = 3
	MaxSources   = 20
	MaxKeywords  = 20
	MaxEffectLen = 280
)

// BrandFooter is appended exactly once when footers are flattened.
const BrandFooter = "Jessica AI • SPZ | Zetsumetsu Eoe™ | ZETSUMETSU CORPORATION | Artworqq Kevin Suber"

// Stat bounds for every category.
const (
	MinAtk = 1000
	MaxAtk = 5000
	MinDef = 1000
)
