// Package classify maps free-text signals to one of the fixed card
// categories. Classification is a pure function of its inputs: the keyword
// rule table is immutable and the no-match fallback is a stable hash pick,
// so the same signals always yield the same category.
package classify

import (
	"strings"

	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/pkg/stablehash"
)

// Signals are the classification inputs, strongest first. Tags lead the
// candidate pool; the brand rule is checked across the whole pool before
// anything else.
type Signals struct {
	Hint  string
	Tags  []string
	Title string
	Desc1 string
	Desc2 string
	Brand string
}

// brandKeywords force the dedicated brand category wherever they appear.
var brandKeywords = []string{
	"zetsumetsu corporation", "zetsu metsu", "zetsumetsu", "zetsu", "artworqq", "nios",
}

type rule struct {
	keywords []string
	category domain.Category
}

// rules is scanned in order; the first keyword found anywhere in the pool
// wins. Order matters: e.g. "soft news" must hit before "news"-ish rules
// would, so more specific keywords come first within each entry.
var rules = []rule{
	{[]string{"breaking"}, domain.BreakingNews},
	{[]string{"politic"}, domain.Politics},
	{[]string{"national"}, domain.NationalNews},
	{[]string{"international", "world"}, domain.InternationalNews},
	{[]string{"local"}, domain.LocalNews},
	{[]string{"economy"}, domain.Economy},
	{[]string{"business", "biz"}, domain.Business},
	{[]string{"sales"}, domain.Sales},
	{[]string{"merch"}, domain.Merch},
	{[]string{"tech"}, domain.Technology},
	{[]string{"science"}, domain.Science},
	{[]string{"health", "medical"}, domain.Health},
	{[]string{"edu"}, domain.Education},
	{[]string{"climate", "environment", "green"}, domain.Environment},
	{[]string{"sport"}, domain.Sports},
	{[]string{"entertain"}, domain.Entertainment},
	{[]string{"lifestyle"}, domain.Lifestyle},
	{[]string{"travel", "tourism"}, domain.Travel},
	{[]string{"opinion"}, domain.Opinion},
	{[]string{"editorial"}, domain.Editorial},
	{[]string{"feature"}, domain.FeatureStory},
	{[]string{"photo"}, domain.Photojournalism},
	{[]string{"classified"}, domain.Classifieds},
	{[]string{"comic", "puzzle"}, domain.ComicsPuzzles},
	{[]string{"obitu"}, domain.Obituaries},
	{[]string{"weather", "forecast"}, domain.Weather},
	{[]string{"society", "community"}, domain.Society},
	{[]string{"infotainment"}, domain.Infotainment},
	{[]string{"soft news"}, domain.SoftNews},
	{[]string{"hard news"}, domain.HardNews},
	{[]string{"investigat"}, domain.Investigative},
	{[]string{"gov"}, domain.Government},
	{[]string{"crypto", "bitcoin", "eth", "defi"}, domain.Crypto},
	{[]string{"meme"}, domain.Meme},
	{[]string{"people", "human", "social media"}, domain.People},
}

// exactCategory maps a lowercased enumeration value back to its category.
var exactCategory = func() map[string]domain.Category {
	m := make(map[string]domain.Category, len(domain.CategoryTraits))
	for c := range domain.CategoryTraits {
		m[strings.ToLower(string(c))] = c
	}
	return m
}()

// Categorize resolves s to exactly one category. It never returns an empty
// or out-of-enumeration value.
func Categorize(s Signals) domain.Category {
	pool := buildPool(s)

	// Brand keywords trump everything, wherever they occur.
	for _, entry := range pool {
		for _, kw := range brandKeywords {
			if strings.Contains(entry, kw) {
				return domain.Zetsumetsu
			}
		}
	}

	// An explicit hint naming an enumeration value wins outright.
	if c, ok := exactCategory[strings.TrimSpace(strings.ToLower(s.Hint))]; ok {
		return c
	}

	for _, entry := range pool {
		for _, r := range rules {
			for _, kw := range r.keywords {
				if strings.Contains(entry, kw) {
					return r.category
				}
			}
		}
	}

	// Deterministic fallback: hash the pool into the sorted enumeration.
	all := domain.AllCategories()
	return all[stablehash.Pick31(strings.Join(pool, "\x00"), len(all))]
}

// buildPool lowercases and orders the candidate strings: tags first, then
// hint, title, descriptions, brand. Empty entries are dropped.
func buildPool(s Signals) []string {
	raw := make([]string, 0, len(s.Tags)+5)
	raw = append(raw, s.Tags...)
	raw = append(raw, s.Hint, s.Title, s.Desc1, s.Desc2, s.Brand)

	pool := raw[:0]
	for _, v := range raw {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			pool = append(pool, v)
		}
	}
	return pool
}
