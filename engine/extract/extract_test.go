package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/sporez/cardforge/engine/domain"
)

func mustFromHTML(t *testing.T, base, html string) domain.ExtractedMetadata {
	t.Helper()
	m, err := FromHTML(base, html)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	return m
}

func TestTitleChain(t *testing.T) {
	m := mustFromHTML(t, "https://example.com/a", `<html><head>
		<meta property="og:title" content="OG Title">
		<meta name="twitter:title" content="TW Title">
		<title>Doc Title</title>
	</head></html>`)
	if m.Title != "OG Title" {
		t.Fatalf("title = %q, want og:title first", m.Title)
	}

	m = mustFromHTML(t, "https://example.com/a", `<html><head><title> Doc   Title </title></head></html>`)
	if m.Title != "Doc Title" {
		t.Fatalf("title = %q, want document title fallback", m.Title)
	}
}

func TestDescriptionFallbackSkipsCookieBanner(t *testing.T) {
	long := strings.Repeat("real article text ", 6)
	m := mustFromHTML(t, "https://example.com/a", `<html><body>
		<p>This site uses cookies to improve your experience and such, quite a long banner indeed it is.</p>
		<p>`+long+`</p>
	</body></html>`)
	if !strings.HasPrefix(m.Description, "real article text") {
		t.Fatalf("description = %q, want cookie banner skipped", m.Description)
	}
}

func TestDescriptionHeadingFallback(t *testing.T) {
	m := mustFromHTML(t, "https://example.com/a", `<html><body>
		<p>short</p>
		<h2>A heading long enough to stand in for a description line</h2>
	</body></html>`)
	if !strings.HasPrefix(m.Description, "A heading long enough") {
		t.Fatalf("description = %q", m.Description)
	}
}

func TestKeywordsDedupeAndCap(t *testing.T) {
	got := resolveKeywords("a, a, B , ", "")
	if !reflect.DeepEqual(got, []string{"a", "B"}) {
		t.Fatalf("keywords = %v, want [a B]", got)
	}

	many := strings.Repeat("k,", 30)
	if got := resolveKeywords(many[:len(many)-1], ""); len(got) != 1 {
		t.Fatalf("keywords = %v, want dupes collapsed", got)
	}
}

func TestKeywordsFromTitle(t *testing.T) {
	got := resolveKeywords("", "The Quantum Chips Are Finally Here, Quantum Fans!")
	for _, k := range got {
		if len(k) <= 3 {
			t.Errorf("short token %q leaked", k)
		}
	}
	if len(got) == 0 || !strings.EqualFold(got[0], "Quantum") {
		t.Fatalf("keywords = %v", got)
	}
	for i, k := range got {
		for _, other := range got[i+1:] {
			if strings.EqualFold(k, other) {
				t.Fatalf("duplicate token %q in %v", k, got)
			}
		}
	}
}

func TestSiteNameFallsBackToHost(t *testing.T) {
	m := mustFromHTML(t, "https://www.example.org/a", `<html></html>`)
	if m.SiteName != "example.org" {
		t.Fatalf("siteName = %q", m.SiteName)
	}
}

func TestAuthorChain(t *testing.T) {
	m := mustFromHTML(t, "https://example.com/a", `<html><head>
		<meta name="twitter:creator" content="@someone">
		<meta name="author" content="Jane Writer">
	</head></html>`)
	if m.Author != "Jane Writer" {
		t.Fatalf("author = %q, want author meta first", m.Author)
	}
}

func TestAcceptableImage(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://example.com/a.png", true},
		{"data:image/png;base64,AAAA", true},
		{"ftp://example.com/a.png", false},
		{"https://localhost/a.png", false},
		{"https://stats.example.com/a.png", false},
		{"https://sub.doubleclick.net/ad.png", false},
		{"https://example.com/assets/spacer.gif", false},
		{"https://example.com/img.png?width=1&height=1", false},
		{"https://example.com/img.png?width=400", true},
	}
	for _, tc := range cases {
		if got := acceptableImage(tc.url); got != tc.want {
			t.Errorf("acceptableImage(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestRejectedMetaImageFallsToInline(t *testing.T) {
	m := mustFromHTML(t, "https://example.com/a", `<html><head>
		<meta property="og:image" content="https://sub.doubleclick.net/hero.png">
	</head><body>
		<img src="/assets/pixel.gif">
		<img src="/assets/real.jpg">
	</body></html>`)
	if m.Image != "https://example.com/assets/real.jpg" {
		t.Fatalf("image = %q, want inline fallback past tracker and pixel", m.Image)
	}
}

func TestLargestInlineImageWins(t *testing.T) {
	m := mustFromHTML(t, "https://example.com/a", `<html><body>
		<img src="/small.jpg" width="100" height="100">
		<img src="/big.jpg" width="800" height="600">
		<img src="/tiny.jpg" width="2" height="2">
	</body></html>`)
	if m.Image != "https://example.com/big.jpg" {
		t.Fatalf("image = %q, want largest by area", m.Image)
	}
}

func TestUndeclaredDimsFirstMatch(t *testing.T) {
	m := mustFromHTML(t, "https://example.com/a", `<html><body>
		<img src="/first.jpg">
		<img src="/second.jpg">
	</body></html>`)
	if m.Image != "https://example.com/first.jpg" {
		t.Fatalf("image = %q, want first in document order", m.Image)
	}
}

func TestBrandIconAndFaviconFallbacks(t *testing.T) {
	m := mustFromHTML(t, "https://www.instagram.com/someone/", `<html></html>`)
	if m.Image != "https://logo.clearbit.com/instagram.com" {
		t.Fatalf("image = %q, want brand icon for social host", m.Image)
	}

	m = mustFromHTML(t, "https://blog.example.net/post", `<html></html>`)
	if m.Image != faviconService+"blog.example.net" {
		t.Fatalf("image = %q, want favicon fallback", m.Image)
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"example.com":          "https://example.com",
		" example.com ":        "https://example.com",
		"http://example.com":   "http://example.com",
		"https://example.com/": "https://example.com/",
		"":                     "",
	}
	for in, want := range cases {
		if got := NormalizeURL(in); got != want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractFromLiveServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Served Page">
			<meta property="og:site_name" content="Test Site">
		</head></html>`))
	}))
	defer srv.Close()

	e := New(Options{Workers: 2})
	r := e.Extract(context.Background(), srv.URL+"/page")
	m, err := r.Unwrap()
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if m.Title != "Served Page" || m.SiteName != "Test Site" {
		t.Fatalf("metadata = %+v", m)
	}
}

func TestExtractReportsHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := New(Options{})
	_, err := e.Extract(context.Background(), srv.URL).Unwrap()

	var fe *domain.FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusServiceUnavailable {
		t.Fatalf("err = %v, want FetchError with status 503", err)
	}
}

func TestExtractBatchKeepsOrderAndIsolatesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/bad") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`<html><head><meta property="og:title" content="` + r.URL.Path + `"></head></html>`))
	}))
	defer srv.Close()

	e := New(Options{Workers: 3})
	results := e.ExtractBatch(context.Background(), []string{
		srv.URL + "/one", srv.URL + "/bad", srv.URL + "/two",
	})

	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if m, err := results[0].Unwrap(); err != nil || m.Title != "/one" {
		t.Fatalf("results[0] = (%+v, %v)", m, err)
	}
	if results[1].IsOk() {
		t.Fatal("results[1] should carry the 404")
	}
	if m, err := results[2].Unwrap(); err != nil || m.Title != "/two" {
		t.Fatalf("results[2] = (%+v, %v)", m, err)
	}
}

// rewriteTransport redirects every request to the test server while keeping
// the original path, so platform-keyed logic sees real hostnames.
type rewriteTransport struct {
	target string
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	r2.URL.Scheme = "http"
	r2.URL.Host = strings.TrimPrefix(rt.target, "http://")
	return http.DefaultTransport.RoundTrip(r2)
}

func TestOEmbedShortCircuit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/oembed") {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"title":"Clip Title","author_name":"Some Channel","thumbnail_url":"https://i.ytimg.com/vi/abc/hq720.jpg","provider_name":"YouTube"}`))
			return
		}
		t.Error("oEmbed success must skip the HTML fetch")
	}))
	defer srv.Close()

	e := New(Options{Transport: &rewriteTransport{target: srv.URL}})
	m, err := e.Extract(context.Background(), "https://youtu.be/abc").Unwrap()
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if m.Title != "Clip Title" || m.Author != "Some Channel" || m.SiteName != "YouTube" {
		t.Fatalf("metadata = %+v", m)
	}
	if m.Image != "https://i.ytimg.com/vi/abc/hq720.jpg" {
		t.Fatalf("image = %q", m.Image)
	}
}

func TestOEmbedFailureFallsBackToHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "oembed") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`<html><head><meta property="og:title" content="Fallback Page"></head></html>`))
	}))
	defer srv.Close()

	e := New(Options{Transport: &rewriteTransport{target: srv.URL}})
	m, err := e.Extract(context.Background(), "https://vimeo.com/12345").Unwrap()
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if m.Title != "Fallback Page" {
		t.Fatalf("title = %q, want HTML fallback after failed probe", m.Title)
	}
}
