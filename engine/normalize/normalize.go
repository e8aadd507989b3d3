// Package normalize reconciles an arbitrary partial card with extracted page
// metadata into the canonical card schema. Every field resolves through an
// explicit ordered alias chain; the chains are the contract with the
// historical input shapes this service still accepts.
package normalize

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sporez/cardforge/engine/classify"
	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/engine/stats"
	"github.com/sporez/cardforge/pkg/fn"
	"github.com/sporez/cardforge/pkg/stablehash"
)

const maxPreFusionEffects = 3

// Normalize produces one canonical card from a partial card and/or the
// metadata extracted for its URL. Either input may be nil/empty; the result
// always satisfies domain.ValidateCard. Normalizing an already normalized
// card reproduces it, timestamp excepted.
func Normalize(p Partial, meta *domain.ExtractedMetadata) domain.Card {
	if p == nil {
		p = Partial{}
	}
	m := domain.ExtractedMetadata{}
	if meta != nil {
		m = *meta
	}

	sourceURL := firstNonEmpty(
		func() string { return p.Str("sourceUrl") },
		func() string { return p.Str("_source_url") },
		func() string { return p.Str("url") },
		func() string { return p.Str("link") },
		func() string { return p.Str("links", "url") },
		lit(m.URL),
	)

	name := firstNonEmpty(
		func() string { return p.Str("name") },
		func() string { return p.Str("title") },
		func() string { return p.Str("header", "name") },
		func() string { return p.Str("hero", "title") },
		func() string { return p.Str("banner", "title") },
		lit(m.Title),
		lit(hostname(sourceURL)),
		lit(sourceURL),
	)

	about := firstNonEmpty(
		func() string { return p.Str("about") },
		func() string { return p.Str("siteName") },
		func() string { return p.Str("brand") },
		func() string { return p.Str("typeBanner", "about") },
		lit(m.SiteName),
	)

	desc1 := firstNonEmpty(
		func() string { return p.Str("description") },
		func() string { return p.Str("desc") },
		func() string { return p.Str("effectBox", "description") },
		lit(m.Description),
	)
	desc2 := p.Str("desc2")

	tags := resolveTags(p, m.Keywords)

	category := classify.Categorize(classify.Signals{
		Hint:  p.Str("category"),
		Tags:  tags,
		Title: name,
		Desc1: desc1,
		Desc2: desc2,
		Brand: about,
	})

	st := stats.Synthesize(category, stats.Identity(name, sourceURL))

	card := domain.Card{
		ID:         resolveID(p, sourceURL, name),
		Name:       name,
		Icon:       firstNonEmpty(func() string { return p.Str("icon") }, func() string { return p.Str("header", "icon") }),
		About:      about,
		Effects:    resolveEffects(p, m, st),
		Tags:       tags,
		CardSets:   resolveCardSets(p, about),
		Timestamp:  resolveTimestamp(p),
		Footer:     resolveFooter(p),
		CardImages: resolveImages(p, m, sourceURL),
		Category:   category,
		SourceURL:  sourceURL,
	}
	stats.Apply(&card, st)
	return card
}

// resolveID keeps an explicit id; otherwise the id is a pure function of the
// source URL or name so re-normalizing yields the same card.
func resolveID(p Partial, sourceURL, name string) string {
	if id := firstNonEmpty(func() string { return p.Str("id") }, func() string { return p.Str("_id") }); id != "" {
		return id
	}
	if seed := firstNonEmpty(lit(sourceURL), lit(name)); seed != "" {
		return stablehash.ShortID(seed)
	}
	return uuid.NewString()
}

// resolveEffects: explicit effects (objects or plain strings) win, then the
// nested effect block, then synthesis from metadata. Empty-text entries are
// dropped everywhere; icons/emoji default to the category's.
func resolveEffects(p Partial, m domain.ExtractedMetadata, st stats.Stats) []domain.Effect {
	effects := coerceEffects(p.List("effects"), st)
	if len(effects) == 0 {
		effects = coerceEffects(p.List("effectBox", "effects"), st)
		if desc := p.Str("effectBox", "description"); desc != "" {
			effects = append([]domain.Effect{makeEffect(desc, st)}, effects...)
		}
	}
	if len(effects) == 0 {
		for _, text := range []string{m.Description, m.Title} {
			if text != "" {
				effects = append(effects, makeEffect(text, st))
			}
		}
	}
	effects = fn.UniqueBy(effects, func(e domain.Effect) string {
		return strings.ToLower(strings.TrimSpace(e.Text))
	})
	return fn.Cap(effects, maxPreFusionEffects)
}

func coerceEffects(raw []any, st stats.Stats) []domain.Effect {
	var out []domain.Effect
	for _, v := range raw {
		switch e := v.(type) {
		case string:
			if strings.TrimSpace(e) != "" {
				out = append(out, makeEffect(e, st))
			}
		case map[string]any:
			text := strings.TrimSpace(Partial(e).Str("text"))
			if text == "" {
				continue
			}
			eff := makeEffect(text, st)
			if icons := Partial(e).Str("icons"); icons != "" {
				eff.Icons = icons
			}
			if emoji := Partial(e).Str("emoji"); emoji != "" {
				eff.Emoji = emoji
			}
			out = append(out, eff)
		}
	}
	return out
}

func makeEffect(text string, st stats.Stats) domain.Effect {
	return domain.Effect{Icons: st.Icon, Emoji: st.Emoji, Text: truncate(text, domain.MaxEffectLen)}
}

func resolveTags(p Partial, keywords []string) []string {
	var all []string
	all = append(all, p.Strings("tags")...)
	all = append(all, p.Strings("footer", "tags")...)
	all = append(all, keywords...)
	all = fn.UniqueBy(all, strings.ToLower)
	return fn.Cap(all, domain.MaxTags)
}

// resolveCardSets unions explicit sets with the nested footer set; when
// neither exists the brand seeds a "<brand>, <year> <brand>" pair.
func resolveCardSets(p Partial, about string) []string {
	var all []string
	all = append(all, p.Strings("card_sets")...)
	if set := p.Str("footer", "set"); set != "" {
		all = append(all, set)
	}
	if len(all) == 0 && about != "" {
		year := time.Now().UTC().Format("2006")
		all = []string{about, year + " " + about}
	}
	all = fn.UniqueBy(all, strings.ToLower)
	return fn.Cap(all, domain.MaxCardSets)
}

func resolveFooter(p Partial) string {
	if f, ok := p["footer"]; ok {
		return FlattenFooter(f)
	}
	return FlattenFooter("")
}

func resolveImages(p Partial, m domain.ExtractedMetadata, sourceURL string) []domain.CardImage {
	var urls []string
	for _, v := range p.List("card_images") {
		if entry, ok := v.(map[string]any); ok {
			if u := Partial(entry).Str("image_url"); u != "" {
				urls = append(urls, u)
			}
		}
	}
	if u := firstNonEmpty(
		func() string { return p.Str("image") },
		func() string { return p.Str("img") },
		func() string { return p.Str("thumbnail") },
		func() string { return p.Str("artwork", "url") },
	); u != "" {
		urls = append(urls, u)
	}
	if m.Image != "" {
		urls = append(urls, absolutize(sourceURL, m.Image))
	}
	urls = fn.UniqueBy(urls, strings.ToLower)
	urls = fn.Cap(urls, domain.MaxImages)
	return fn.Map(urls, func(u string) domain.CardImage { return domain.CardImage{ImageURL: u} })
}

// resolveTimestamp keeps a parseable supplied timestamp (so normalization of
// a normalized card round-trips) and stamps now otherwise.
func resolveTimestamp(p Partial) string {
	raw := firstNonEmpty(
		func() string { return p.Str("timestamp") },
		func() string { return p.Str("date") },
		func() string { return p.Str("footer", "timestamp") },
	)
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// absolutize resolves src against base; unparsable inputs pass through.
func absolutize(base, src string) string {
	if src == "" || strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "data:") {
		return src
	}
	b, err := url.Parse(base)
	if err != nil {
		return src
	}
	rel, err := url.Parse(src)
	if err != nil {
		return src
	}
	return b.ResolveReference(rel).String()
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
