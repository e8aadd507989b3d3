package extract

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/pkg/fn"
	"github.com/sporez/cardforge/pkg/metrics"
	"github.com/sporez/cardforge/pkg/resilience"
)

const (
	userAgent    = "Mozilla/5.0 (compatible; CardForge/1.0; +https://sporez.netlify.app)"
	maxBodyBytes = 4 << 20
)

// Options configures an Extractor. Zero values fall back to defaults.
type Options struct {
	Timeout   time.Duration // per-URL fetch timeout, default 10s
	Workers   int           // batch concurrency, default 4
	RPS       float64       // outbound request rate limit, 0 means unlimited
	Transport http.RoundTripper
}

// Extractor fetches URLs and extracts card metadata. All outbound traffic
// shares one rate limiter; oEmbed probes share one breaker group.
type Extractor struct {
	client   *http.Client
	limiter  *rate.Limiter
	breakers *resilience.Group
	workers  int
}

func New(opts Options) *Extractor {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	limit := rate.Inf
	burst := 1
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
		if b := int(opts.RPS); b > 1 {
			burst = b
		}
	}

	return &Extractor{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		limiter:  rate.NewLimiter(limit, burst),
		breakers: resilience.NewGroup(resilience.DefaultBreakerOpts),
		workers:  opts.Workers,
	}
}

// NormalizeURL trims a link and defaults the scheme to https.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "https://" + raw
	}
	return raw
}

// Extract resolves one link to metadata. Known media platforms are probed
// over oEmbed first; a successful probe skips HTML extraction entirely.
func (e *Extractor) Extract(ctx context.Context, rawURL string) fn.Result[domain.ExtractedMetadata] {
	pageURL := NormalizeURL(rawURL)
	if pageURL == "" {
		return fn.Err[domain.ExtractedMetadata](&domain.FetchError{URL: rawURL, Err: errors.New("empty link")})
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return fn.Err[domain.ExtractedMetadata](err)
	}

	if p, ok := oembedProviders[hostOf(pageURL)]; ok {
		if r := probeOEmbed(ctx, e.client, e.breakers, p, pageURL); r.IsOk() {
			return r
		}
	}

	start := time.Now()
	html, err := e.fetchHTML(ctx, pageURL)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchesTotal.WithLabelValues("error").Inc()
		return fn.Err[domain.ExtractedMetadata](err)
	}
	metrics.FetchesTotal.WithLabelValues("ok").Inc()

	return fn.FromPair(FromHTML(pageURL, html))
}

// ExtractBatch resolves links concurrently with bounded workers. Results
// keep input order; a per-URL failure never aborts its siblings.
func (e *Extractor) ExtractBatch(ctx context.Context, urls []string) []fn.Result[domain.ExtractedMetadata] {
	return fn.ParMapResult(urls, e.workers, func(u string) fn.Result[domain.ExtractedMetadata] {
		return e.Extract(ctx, u)
	})
}

func (e *Extractor) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &domain.FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", &domain.FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", &domain.FetchError{URL: pageURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &domain.FetchError{URL: pageURL, Err: err}
	}
	return string(body), nil
}
