/*
Package finder resolves source URLs to the artists that own them.

A resolution matches the incoming URL against the stored artist URL
collection. Known art-hosting sites get dedicated strategies that understand
the site's URL grammar (member pages, illustration pages, raw image hosts);
everything else falls through to a generic directory walk.

# Matching Model

A [Strategy] translates a source URL into a [LookupKey]: a set of canonical
search keys to compare against the stored collection. Exact keys must equal
a stored key; prefix keys match stored keys that sit at or below the given
directory. Exact matches always outrank prefix matches.

Strategies are consulted in registration order. The first strategy that
recognizes the URL's shape owns the resolution, even when it yields no
artists; later strategies are not consulted as a fallback.
*/
package finder

import (
	"context"
	"net/url"
)

// Site identifies an art-hosting site with an illustration-to-owner
// resolution API.
type Site string

const (
	SitePixiv     Site = "pixiv"
	SiteNicoSeiga Site = "nicoseiga"
	SiteNijie     Site = "nijie"
)

// IllustrationResolver resolves an illustration id on a hosting site to the
// site-local account id of its uploader. The second return reports whether
// the illustration exists and is attributable.
type IllustrationResolver interface {
	ResolveToOwner(ctx context.Context, site Site, illustrationID int64) (int64, bool, error)
}

// LookupKey is the stored-collection query produced by a strategy. Keys are
// schemeless comparable forms as produced by the URL search-key derivation.
type LookupKey struct {
	// Exact keys must equal a stored search key.
	Exact []string

	// Prefix keys match stored search keys equal to the key or nested
	// beneath it as a path directory.
	Prefix []string
}

// Strategy recognizes one family of source URLs.
//
// Match returns nil when the URL does not belong to the strategy's site, in
// which case the next strategy is consulted. A non-nil key claims the URL:
// the engine resolves it and stops, whatever the outcome. Errors are treated
// as a miss by the engine.
type Strategy interface {
	Name() string
	Match(ctx context.Context, source *url.URL) (*LookupKey, error)
}
