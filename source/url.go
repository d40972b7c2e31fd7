package source

import (
	"net/url"
	"strings"
)

// FixURL resolves a scraped href or src against domain.
// Absolute URLs are kept, protocol-relative ones get https, and anything else is joined to domain.
func FixURL(raw, domain string) string {
	switch {
	case strings.HasPrefix(raw, "http"):
		return raw
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return domain + raw
	default:
		return domain + "/" + raw
	}
}

// BaseURL returns scheme://host of raw, or "" when raw does not parse.
func BaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
