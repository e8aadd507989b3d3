package extract

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// trackerPattern rejects ad/analytics hosts that serve beacons instead of
// artwork.
var trackerPattern = regexp.MustCompile(`(?i)(doubleclick\.net|googletagmanager|google-analytics|stats\.|segment\.io|mixpanel|adservice\.)`)

// pixelNamePattern flags filenames used for 1x1 tracking pixels.
var pixelNamePattern = regexp.MustCompile(`(?i)(pixel|spacer|transparent)`)

var dottedHost = regexp.MustCompile(`(?i)\.[a-z]{2,}$`)

// acceptableImage reports whether a candidate URL may be used as card
// artwork. Candidates must be http(s) or inline data images, live on a real
// dotted hostname, and not look like a tracker or tracking pixel.
func acceptableImage(raw string) bool {
	if strings.HasPrefix(strings.ToLower(raw), "data:image/") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if !dottedHost.MatchString(u.Hostname()) {
		return false
	}
	if trackerPattern.MatchString(raw) {
		return false
	}
	return !urlLooksLikePixel(u)
}

// urlLooksLikePixel checks the URL itself for tracking pixel tells: the
// filename, or explicit 1x1 query dimensions.
func urlLooksLikePixel(u *url.URL) bool {
	if pixelNamePattern.MatchString(path.Base(u.Path)) {
		return true
	}
	q := u.Query()
	return q.Get("width") == "1" || q.Get("height") == "1"
}

// pixelDimensions reports whether declared width/height attributes are those
// of a tracking pixel. Zero means undeclared and is not held against the
// image.
func pixelDimensions(width, height int) bool {
	if width > 0 && width <= 2 {
		return true
	}
	return height > 0 && height <= 2
}
