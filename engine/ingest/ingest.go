// Package ingest orchestrates one batch through the card pipeline:
// request adaptation, metadata extraction, normalization, and fusion.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/engine/extract"
	"github.com/sporez/cardforge/engine/fuse"
	"github.com/sporez/cardforge/engine/normalize"
	"github.com/sporez/cardforge/pkg/fn"
	"github.com/sporez/cardforge/pkg/metrics"
)

// Service runs batches through the pipeline. It holds no per-request state.
type Service struct {
	extractor *extract.Extractor
	log       *slog.Logger
}

func New(extractor *extract.Extractor, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{extractor: extractor, log: log}
}

// Session returns the supplied session id or mints one.
func Session(supplied string) string {
	if supplied != "" {
		return supplied
	}
	return "sess-" + uuid.NewString()
}

// CrawlEntry is the per-URL outcome of a crawl batch: metadata or an error,
// never both, in input order.
type CrawlEntry struct {
	URL      string                    `json:"url"`
	Metadata *domain.ExtractedMetadata `json:"metadata,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

// Crawl extracts metadata for every link. A per-URL failure becomes that
// entry's error string and never aborts siblings.
func (s *Service) Crawl(ctx context.Context, links []string) []CrawlEntry {
	stage := fn.TracedStage("ingest.crawl", func(ctx context.Context, urls []string) fn.Result[[]CrawlEntry] {
		results := s.extractor.ExtractBatch(ctx, urls)
		entries := make([]CrawlEntry, len(urls))
		for i, r := range results {
			entry := CrawlEntry{URL: extract.NormalizeURL(urls[i])}
			if m, err := r.Unwrap(); err != nil {
				entry.Error = err.Error()
				s.log.Warn("crawl failed", "url", entry.URL, "error", err)
			} else {
				entry.Metadata = &m
			}
			entries[i] = entry
		}
		return fn.Ok(entries)
	})
	return stage(ctx, links).UnwrapOr(nil)
}

// Enrich normalizes partial cards without fetching anything.
func (s *Service) Enrich(ctx context.Context, cards []normalize.Partial) []domain.Card {
	stage := fn.TracedStage("ingest.enrich", func(_ context.Context, partials []normalize.Partial) fn.Result[[]domain.Card] {
		out := fn.Map(partials, func(p normalize.Partial) domain.Card {
			return normalize.Normalize(p, nil)
		})
		metrics.CardsNormalizedTotal.Add(float64(len(out)))
		return fn.Ok(out)
	})
	return stage(ctx, cards).UnwrapOr(nil)
}

// FuseBatch runs a full request through extract, normalize, and fuse. A
// panic inside the pipeline is recovered into an error; partial extraction
// failures only shrink the contributor set.
func (s *Service) FuseBatch(ctx context.Context, req Request) (res domain.FusionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("fusion panic", "reason", fmt.Sprintf("%v", r))
			err = fmt.Errorf("fusion failed: %v", r)
		}
	}()

	pipeline := fn.Then(
		fn.TracedStage("ingest.normalize", func(ctx context.Context, req Request) fn.Result[[]domain.Card] {
			return fn.Ok(s.normalizeBatch(ctx, req))
		}),
		fn.TracedStage("ingest.fuse", func(_ context.Context, cards []domain.Card) fn.Result[domain.FusionResult] {
			r := fuse.Fuse(cards, fn.Map(req.Links, extract.NormalizeURL))
			if verr := domain.ValidateCard(r.Card); verr != nil {
				return fn.Err[domain.FusionResult](verr)
			}
			return fn.Ok(r)
		}),
	)

	return pipeline(ctx, req).Unwrap()
}

// normalizeBatch extracts all links, pairs results with supplied cards by
// URL, and normalizes everything to cards. Failed links drop out here;
// their URLs still count as batch sources.
func (s *Service) normalizeBatch(ctx context.Context, req Request) []domain.Card {
	byURL := make(map[string]*domain.ExtractedMetadata)
	results := s.extractor.ExtractBatch(ctx, req.Links)
	for i, r := range results {
		if m, err := r.Unwrap(); err == nil {
			byURL[extract.NormalizeURL(req.Links[i])] = &m
		} else {
			s.log.Warn("batch link failed", "url", req.Links[i], "error", err)
		}
	}

	var cards []domain.Card
	claimed := make(map[string]bool)
	for _, p := range req.Cards {
		u := extract.NormalizeURL(cardURL(p))
		meta := byURL[u]
		if meta != nil {
			claimed[u] = true
		}
		cards = append(cards, normalize.Normalize(p, meta))
	}
	// Links nobody claimed become metadata-only cards.
	for _, link := range req.Links {
		u := extract.NormalizeURL(link)
		if m := byURL[u]; m != nil && !claimed[u] {
			claimed[u] = true
			cards = append(cards, normalize.Normalize(nil, m))
		}
	}

	metrics.CardsNormalizedTotal.Add(float64(len(cards)))
	return cards
}
