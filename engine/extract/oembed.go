package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/pkg/fn"
	"github.com/sporez/cardforge/pkg/metrics"
	"github.com/sporez/cardforge/pkg/resilience"
)

// oembedProvider is one media platform with a JSON oEmbed endpoint.
type oembedProvider struct {
	name     string
	endpoint string // the page URL is appended url-escaped
}

// oembedProviders keys providers by hostname with www/m stripped.
var oembedProviders = map[string]oembedProvider{
	"youtube.com":    {"youtube", "https://www.youtube.com/oembed?format=json&url="},
	"youtu.be":       {"youtube", "https://www.youtube.com/oembed?format=json&url="},
	"vimeo.com":      {"vimeo", "https://vimeo.com/api/oembed.json?url="},
	"tiktok.com":     {"tiktok", "https://www.tiktok.com/oembed?url="},
	"soundcloud.com": {"soundcloud", "https://soundcloud.com/oembed?format=json&url="},
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
	ProviderName string `json:"provider_name"`
}

// probeOEmbed asks the platform's oEmbed endpoint about pageURL. Each
// provider runs behind its own circuit breaker so a dead endpoint stops
// being probed while the others keep working.
func probeOEmbed(ctx context.Context, client *http.Client, breakers *resilience.Group, p oembedProvider, pageURL string) fn.Result[domain.ExtractedMetadata] {
	r := resilience.CallResult(breakers.For(p.name), ctx, func(ctx context.Context) fn.Result[domain.ExtractedMetadata] {
		return fn.FromPair(fetchOEmbed(ctx, client, p, pageURL))
	})
	if r.IsErr() {
		metrics.OEmbedProbesTotal.WithLabelValues(p.name, "error").Inc()
	} else {
		metrics.OEmbedProbesTotal.WithLabelValues(p.name, "ok").Inc()
	}
	return r
}

func fetchOEmbed(ctx context.Context, client *http.Client, p oembedProvider, pageURL string) (domain.ExtractedMetadata, error) {
	var zero domain.ExtractedMetadata

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+url.QueryEscape(pageURL), nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return zero, &domain.FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return zero, &domain.FetchError{URL: pageURL, Status: resp.StatusCode}
	}

	var body oembedResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return zero, &domain.ParseError{URL: pageURL, Reason: fmt.Sprintf("oembed: %v", err)}
	}

	m := domain.ExtractedMetadata{
		URL:      pageURL,
		Title:    body.Title,
		SiteName: body.ProviderName,
		Author:   body.AuthorName,
	}
	if acceptableImage(body.ThumbnailURL) {
		m.Image = body.ThumbnailURL
	}
	return m, nil
}
