package finder

import (
	"context"
	"net/url"
	"strings"

	"github.com/taibuivan/artdex/internal/core/artist"
)

// GenericStrategy is the terminal fallback for sites without dedicated
// handling. It walks the source URL's directory hierarchy:
//
//   - a stored URL matches exactly if it equals the source or any of its
//     ancestor directories (an artist's gallery root covers every image
//     beneath it), and
//   - a stored URL matches by prefix if it lives in the same directory as
//     the source (two images in one gallery share an owner).
type GenericStrategy struct{}

func NewGenericStrategy() *GenericStrategy {
	return &GenericStrategy{}
}

func (strategy *GenericStrategy) Name() string { return "generic" }

func (strategy *GenericStrategy) Match(_ context.Context, source *url.URL) (*LookupKey, error) {
	host := strings.ToLower(source.Hostname())
	if host == "" || !strings.Contains(host, ".") {
		return nil, nil
	}

	sourceKey := artist.SearchKey(artist.NormalizeURL(source.String()))

	key := &LookupKey{Exact: []string{sourceKey}}

	// Walk up the hierarchy: query stripped first, then one path segment at
	// a time down to the bare host.
	trimmed := sourceKey
	if i := strings.Index(trimmed, "?"); i >= 0 {
		trimmed = strings.TrimSuffix(trimmed[:i], "/")
		key.Exact = append(key.Exact, trimmed)
	}
	for strings.Contains(trimmed, "/") {
		trimmed = trimmed[:strings.LastIndex(trimmed, "/")]
		key.Exact = append(key.Exact, trimmed)
	}

	// Same-directory match: stored URLs nested under the source's parent
	// directory. A bare domain root gets no prefix, it would sweep up every
	// URL on the site.
	if len(key.Exact) > 1 {
		key.Prefix = []string{key.Exact[1]}
	}

	return key, nil
}

// domainOf reports whether host is the given registered domain or one of
// its subdomains.
func domainOf(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
