package ingest

import (
	"encoding/json"

	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/engine/normalize"
)

// Request is the decoded batch request. Several historical client shapes
// funnel into it: {links}, {url}, {cards}, {items}, {results}, each
// optionally under a data wrapper. One adapter per shape keeps the
// tolerance auditable.
type Request struct {
	Session string
	Links   []string
	Cards   []normalize.Partial
}

type shapeAdapter func(normalize.Partial, *Request)

var shapeAdapters = []shapeAdapter{
	adaptLinks,
	adaptURL,
	adaptCards("cards"),
	adaptCards("items"),
	adaptCards("results"),
}

// ParseRequest decodes body into a Request. A body that is not a JSON
// object fails with ErrInvalidBody; a decoded request carrying neither
// links nor cards fails with ErrEmptyBatch.
func ParseRequest(body []byte) (Request, error) {
	var raw normalize.Partial
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Request{}, domain.ErrInvalidBody
	}

	req := Request{Session: raw.Str("session")}
	apply(raw, &req)
	if data, ok := raw["data"].(map[string]any); ok {
		apply(normalize.Partial(data), &req)
		if req.Session == "" {
			req.Session = normalize.Partial(data).Str("session")
		}
	}

	if len(req.Links) == 0 && len(req.Cards) == 0 {
		return Request{}, domain.ErrEmptyBatch
	}
	return req, nil
}

func apply(p normalize.Partial, req *Request) {
	for _, adapt := range shapeAdapters {
		adapt(p, req)
	}
}

func adaptLinks(p normalize.Partial, req *Request) {
	req.Links = append(req.Links, p.Strings("links")...)
}

func adaptURL(p normalize.Partial, req *Request) {
	if u := p.Str("url"); u != "" {
		req.Links = append(req.Links, u)
	}
}

// adaptCards ingests one list-of-objects member; crawl results and enrich
// items are partial cards like any other.
func adaptCards(key string) shapeAdapter {
	return func(p normalize.Partial, req *Request) {
		for _, v := range p.List(key) {
			if m, ok := v.(map[string]any); ok {
				req.Cards = append(req.Cards, normalize.Partial(m))
			}
		}
	}
}

// cardURL resolves the URL a partial card refers to, for pairing with
// extraction results.
func cardURL(p normalize.Partial) string {
	for _, path := range [][]string{{"sourceUrl"}, {"_source_url"}, {"url"}, {"link"}, {"links", "url"}} {
		if u := p.Str(path...); u != "" {
			return u
		}
	}
	return ""
}
