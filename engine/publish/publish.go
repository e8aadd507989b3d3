// Package publish is the outbound boundary of the pipeline: it renders the
// hero page for a fused card and announces the drop on NATS. The static-page
// deployer consumes the subject; this service's contract ends there.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/pkg/metrics"
	"github.com/sporez/cardforge/pkg/natsutil"
)

// Subject carries finished drops to the deployer.
const Subject = "cardforge.publish"

// Drop is the published message: the fused card, its rendered page, and
// where the page will live.
type Drop struct {
	Session     string      `json:"session"`
	Slug        string      `json:"slug"`
	URL         string      `json:"url"`
	Card        domain.Card `json:"card"`
	Sources     []string    `json:"sources"`
	HTML        string      `json:"html"`
	PublishedAt string      `json:"published_at"`
}

// Publisher renders and announces drops.
type Publisher struct {
	nc  natsutil.Publisher
	log *slog.Logger
}

func New(nc natsutil.Publisher, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{nc: nc, log: log}
}

// Publish renders res and announces the drop. The slug derives from the card
// name with a time-based fallback, so every drop gets a routable URL.
func (p *Publisher) Publish(ctx context.Context, session string, res domain.FusionResult) (Drop, error) {
	html, err := RenderPage(res)
	if err != nil {
		metrics.PublishesTotal.WithLabelValues("error").Inc()
		return Drop{}, fmt.Errorf("render drop: %w", err)
	}

	slug := SafeSlug(res.Card.Name)
	drop := Drop{
		Session:     session,
		Slug:        slug,
		URL:         "/pages/" + slug + ".html",
		Card:        res.Card,
		Sources:     res.Sources,
		HTML:        html,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := natsutil.Publish(ctx, p.nc, Subject, drop); err != nil {
		metrics.PublishesTotal.WithLabelValues("error").Inc()
		return Drop{}, fmt.Errorf("announce drop: %w", err)
	}

	metrics.PublishesTotal.WithLabelValues("ok").Inc()
	p.log.Info("drop published", "slug", slug, "session", session, "sources", len(drop.Sources))
	return drop, nil
}
