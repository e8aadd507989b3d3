// Package extract turns fetched web pages into ExtractedMetadata. Known
// media platforms are probed over oEmbed first; everything else goes through
// HTML meta-tag extraction with layered fallbacks, so every URL yields at
// least a hostname, an image, and a title-or-blank.
package extract

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/pkg/fn"
)

const (
	faviconService   = "https://www.google.com/s2/favicons?sz=128&domain="
	placeholderImage = "https://placehold.co/600x400/png?text=SPZ"
)

// brandDomains maps social hostnames (www/m stripped) to the canonical
// domain whose logo stands in when a page exposes no usable artwork.
var brandDomains = map[string]string{
	"youtube.com":    "youtube.com",
	"youtu.be":       "youtube.com",
	"instagram.com":  "instagram.com",
	"tiktok.com":     "tiktok.com",
	"twitter.com":    "x.com",
	"x.com":          "x.com",
	"facebook.com":   "facebook.com",
	"soundcloud.com": "soundcloud.com",
	"vimeo.com":      "vimeo.com",
	"reddit.com":     "reddit.com",
}

var cookieBanner = func() func(string) bool {
	words := []string{"cookies", "consent", "privacy", "subscribe", "newsletter", "sign up", "advert"}
	return func(t string) bool {
		t = strings.ToLower(t)
		for _, w := range words {
			if strings.Contains(t, w) {
				return true
			}
		}
		return false
	}
}()

// FromHTML extracts metadata from one fetched document. It never fails on
// missing fields, only on unparsable input.
func FromHTML(baseURL, html string) (domain.ExtractedMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.ExtractedMetadata{}, &domain.ParseError{URL: baseURL, Reason: err.Error()}
	}

	meta := collectMeta(doc)
	m := domain.ExtractedMetadata{URL: baseURL}

	m.Title = firstMeta(meta, "og:title", "twitter:title")
	if m.Title == "" {
		m.Title = squish(doc.Find("title").First().Text())
	}

	m.Description = firstMeta(meta, "description", "og:description", "twitter:description")
	if m.Description == "" {
		m.Description = firstMeaningfulText(doc)
	}

	m.SiteName = meta["og:site_name"]
	if m.SiteName == "" {
		m.SiteName = hostOf(baseURL)
	}

	m.Keywords = resolveKeywords(meta["keywords"], m.Title)
	m.Author = firstMeta(meta, "author", "og:profile:username", "twitter:creator", "twitter:site")
	m.Image = heroImage(doc, meta, baseURL)

	return m, nil
}

// collectMeta flattens meta tags into one lowercase-keyed map; the first
// occurrence of a key wins, matching document order.
func collectMeta(doc *goquery.Document) map[string]string {
	meta := make(map[string]string)
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}
		for _, attr := range []string{"property", "name"} {
			key := strings.ToLower(strings.TrimSpace(s.AttrOr(attr, "")))
			if key != "" {
				if _, seen := meta[key]; !seen {
					meta[key] = content
				}
			}
		}
	})
	return meta
}

func firstMeta(meta map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := meta[k]; v != "" {
			return v
		}
	}
	return ""
}

// firstMeaningfulText is the description fallback: the first paragraph of at
// least 80 characters, then the first heading of at least 40. Cookie and
// subscription banners are skipped.
func firstMeaningfulText(doc *goquery.Document) string {
	if t := scanText(doc, "p", 80); t != "" {
		return t
	}
	return scanText(doc, "h1, h2", 40)
}

func scanText(doc *goquery.Document, selector string, minLen int) string {
	var found string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := squish(s.Text())
		if len(t) >= minLen && !cookieBanner(t) {
			found = t
			return false
		}
		return true
	})
	return found
}

// resolveKeywords splits the keywords meta; absent that, title tokens longer
// than three characters stand in.
func resolveKeywords(raw, title string) []string {
	var out []string
	if raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}
		out = fn.UniqueBy(out, strings.ToLower)
		return fn.Cap(out, domain.MaxKeywords)
	}
	for _, tok := range strings.Fields(title) {
		tok = strings.Trim(tok, ".,;:!?\"'()[]")
		if len(tok) > 3 {
			out = append(out, tok)
		}
	}
	out = fn.UniqueBy(out, strings.ToLower)
	return fn.Cap(out, 10)
}

// heroImage resolves artwork through the fallback ladder: meta tags, then
// the largest acceptable inline image, then a brand logo for known social
// hosts, then a favicon, then the fixed placeholder. A rejected candidate
// falls through to the next rung, never aborts the ladder.
func heroImage(doc *goquery.Document, meta map[string]string, baseURL string) string {
	for _, key := range []string{"og:image", "twitter:image", "twitter:image:src"} {
		if u := absolutize(baseURL, meta[key]); u != "" && acceptableImage(u) {
			return u
		}
	}
	if u := absolutize(baseURL, linkImageSrc(doc)); u != "" && acceptableImage(u) {
		return u
	}
	if u := largestInlineImage(doc, baseURL); u != "" {
		return u
	}

	host := hostOf(baseURL)
	if host == "" {
		return placeholderImage
	}
	if canonical, ok := brandDomains[host]; ok {
		return "https://logo.clearbit.com/" + canonical
	}
	return faviconService + host
}

func linkImageSrc(doc *goquery.Document) string {
	var href string
	doc.Find("link").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, rel := range strings.Fields(strings.ToLower(s.AttrOr("rel", ""))) {
			if rel == "image_src" {
				href = strings.TrimSpace(s.AttrOr("href", ""))
				return href == ""
			}
		}
		return true
	})
	return href
}

// largestInlineImage picks the acceptable <img> with the biggest declared
// width*height. Undeclared dimensions count as zero, so when nothing
// declares a size the first acceptable image in document order wins.
func largestInlineImage(doc *goquery.Document, baseURL string) string {
	best := ""
	bestArea := -1
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := absolutize(baseURL, strings.TrimSpace(s.AttrOr("src", "")))
		if src == "" || !acceptableImage(src) {
			return
		}
		w := dimAttr(s, "width")
		h := dimAttr(s, "height")
		if pixelDimensions(w, h) {
			return
		}
		if area := w * h; area > bestArea {
			best = src
			bestArea = area
		}
	})
	return best
}

func dimAttr(s *goquery.Selection, name string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s.AttrOr(name, "")), "px"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return strings.TrimPrefix(host, "m.")
}

func absolutize(base, src string) string {
	switch {
	case src == "":
		return ""
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"), strings.HasPrefix(src, "data:"):
		return src
	case strings.HasPrefix(src, "//"):
		return "https:" + src
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

func squish(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
