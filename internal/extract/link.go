// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"net/url"
	"regexp"

	"github.com/pdiddy/physics-feeds/internal/httputil"
)

var absoluteHTTP = regexp.MustCompile(`^https?://`)

// CanonicalLink resolves a raw entry link to an absolute HTTPS URL.
// Absolute links pass through (upgraded to https); protocol-relative
// links get an https scheme; relative links resolve against the feed
// URL's origin. An empty link with a known DOI synthesizes a doi.org
// URL. Returns "" when nothing can be derived.
func CanonicalLink(rawLink, feedURL, doi string) string {
	switch {
	case rawLink != "" && absoluteHTTP.MatchString(rawLink):
		return httputil.EnsureHTTPS(rawLink)
	case rawLink != "" && len(rawLink) > 1 && rawLink[0] == '/' && rawLink[1] == '/':
		return "https:" + rawLink
	case rawLink != "":
		base, err := url.Parse(feedURL)
		if err != nil || base.Host == "" {
			return ""
		}
		ref, err := url.Parse(rawLink)
		if err != nil {
			return ""
		}
		origin := &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}
		return httputil.EnsureHTTPS(origin.ResolveReference(ref).String())
	case doi != "":
		return "https://doi.org/" + doi
	default:
		return ""
	}
}
