package domain

import "sort"

// Category is one of the fixed 37 card categories.
type Category string

const (
	BreakingNews      Category = "Breaking News"
	Politics          Category = "Politics"
	NationalNews      Category = "National News"
	InternationalNews Category = "International News"
	LocalNews         Category = "Local News"
	Economy           Category = "Economy"
	Business          Category = "Business"
	Sales             Category = "Sales"
	Merch             Category = "Merch"
	Technology        Category = "Technology"
	Science           Category = "Science"
	Health            Category = "Health"
	Education         Category = "Education"
	Environment       Category = "Environment"
	Sports            Category = "Sports"
	Entertainment     Category = "Entertainment"
	Lifestyle         Category = "Lifestyle"
	Travel            Category = "Travel"
	Opinion           Category = "Opinion"
	Editorial         Category = "Editorial"
	FeatureStory      Category = "Feature Story"
	Photojournalism   Category = "Photojournalism"
	Classifieds       Category = "Classifieds"
	ComicsPuzzles     Category = "Comics & Puzzles"
	Obituaries        Category = "Obituaries"
	Weather           Category = "Weather"
	Society           Category = "Society"
	Infotainment      Category = "Infotainment"
	SoftNews          Category = "Soft News"
	HardNews          Category = "Hard News"
	Investigative     Category = "Investigative"
	Government        Category = "Government"
	Zetsumetsu        Category = "Zetsumetsu"
	Social            Category = "Social"
	Crypto            Category = "Crypto"
	Meme              Category = "Meme"
	People            Category = "People"
)

// Traits are the fixed cosmetic and gameplay attributes of a category.
// MaxTribute is the cap for the identity-stable tribute pick, 1..10.
type Traits struct {
	Icon       string
	Emoji      string
	Rarity     string
	FrameType  string
	Color      string
	MaxTribute int
}

// CategoryTraits is process-wide immutable configuration. Do not mutate.
var CategoryTraits = map[Category]Traits{
	BreakingNews:      {"🚨🗞️", "🚨", "UR", "breaking_news", "bright-red", 6},
	Politics:          {"🏛️🗳️", "🏛️", "SR", "politics", "maroon", 9},
	NationalNews:      {"📰🧭", "📰", "R", "national_news", "dark-blue", 8},
	InternationalNews: {"🌍📰", "🌍", "UR", "international_news", "blue", 8},
	LocalNews:         {"🏘️🗞️", "🏘️", "R", "local_news", "sky-blue", 4},
	Economy:           {"💹📈", "💹", "SR", "economy", "teal", 3},
	Business:          {"💼📊", "💼", "SR", "business", "gold", 7},
	Sales:             {"🛒🏷️", "🛒", "R", "sales", "cyan", 7},
	Merch:             {"👕🛍️", "👕", "R", "merch", "magenta", 7},
	Technology:        {"🔧🚀", "🤖", "SR", "technology", "silver", 8},
	Science:           {"🔬🧪", "🔬", "UR", "science", "blue", 8},
	Health:            {"🩺🧬", "🩺", "SR", "health", "red-orange", 4},
	Education:         {"🎓📚", "🎓", "R", "education", "sky-blue-light", 3},
	Environment:       {"🌱🌎", "🌱", "SR", "environment", "forest-green", 2},
	Sports:            {"🏅🏟️", "🏅", "R", "sports", "green", 5},
	Entertainment:     {"🎭🎬", "🎭", "SR", "entertainment", "orange", 3},
	Lifestyle:         {"🌸🧘", "🌸", "R", "lifestyle", "light-green", 6},
	Travel:            {"✈️🧭", "✈️", "R", "travel", "teal", 7},
	Opinion:           {"💬🗣️", "💬", "C", "opinion", "violet", 5},
	Editorial:         {"🖋️📜", "🖋️", "C", "editorial", "dark-violet", 6},
	FeatureStory:      {"📖✨", "📖", "UR", "feature_story", "peach", 5},
	Photojournalism:   {"📸📰", "📸", "R", "photojournalism", "gray", 5},
	Classifieds:       {"📇📢", "📇", "C", "classifieds", "beige", 4},
	ComicsPuzzles:     {"🧩🗯️", "🧩", "R", "comics_puzzles", "yellow-green", 4},
	Obituaries:        {"⚰️🕯️", "⚰️", "C", "obituaries", "black", 5},
	Weather:           {"☀️🌧️", "☀️", "C", "weather", "light-gray", 4},
	Society:           {"👥🏙️", "👥", "R", "society", "rose", 5},
	Infotainment:      {"📺🎤", "📺", "SR", "infotainment", "neon-yellow", 5},
	SoftNews:          {"🪶📰", "🪶", "C", "soft_news", "peach-light", 5},
	HardNews:          {"🗞️📢", "🗞️", "R", "hard_news", "dark-red", 8},
	Investigative:     {"🔎🗃️", "🔎", "UR", "investigative", "dark-blue", 9},
	Government:        {"⚖️🏛️", "⚖️", "UR", "government", "gray", 10},
	Zetsumetsu:        {"🪬🌀", "🪬", "ZEOE", "zetsu", "linear-gradient(135deg,#e63946,#6f42c1,#00e6e6)", 10},
	Social:            {"📱💬", "📱", "R", "social", "rose", 5},
	Crypto:            {"🪙🔗", "🪙", "SR", "crypto", "purple", 9},
	Meme:              {"😂🔥", "😂", "R", "meme", "neon-multicolor", 2},
	People:            {"🙇‍♂️", "🙇‍♂️", "C", "people", "light-gray", 2},
}

// allCategories is the enumeration in sorted order, fixed at init so the
// deterministic classifier fallback indexes a stable list.
var allCategories = func() []Category {
	out := make([]Category, 0, len(CategoryTraits))
	for c := range CategoryTraits {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}()

// AllCategories returns the enumeration sorted lexicographically. The caller
// must not modify the returned slice.
func AllCategories() []Category { return allCategories }

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	_, ok := CategoryTraits[c]
	return ok
}

// TraitsOf looks up the trait row for c. Unknown categories fall back to a
// neutral row so downstream stat synthesis stays total.
func TraitsOf(c Category) Traits {
	if t, ok := CategoryTraits[c]; ok {
		return t
	}
	return Traits{Icon: "🧩", Emoji: "🧩", Rarity: "C", FrameType: "misc", Color: "gray", MaxTribute: 3}
}
