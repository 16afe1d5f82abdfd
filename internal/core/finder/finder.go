package finder

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/artdex/internal/core/artist"
	"github.com/taibuivan/artdex/internal/platform/constants"
)

// ArtistStore is the slice of artist persistence the engine needs: search-key
// lookups over active artists.
type ArtistStore interface {
	FindActiveByNormalizedURL(ctx context.Context, searchKey string) ([]*artist.Artist, error)
	FindActiveByURLPrefix(ctx context.Context, searchKey string) ([]*artist.Artist, error)
}

// Engine runs the strategy chain against the stored artist collection.
type Engine struct {
	store      ArtistStore
	strategies []Strategy
	timeout    time.Duration
	logger     *slog.Logger
}

// NewEngine constructs an [Engine] with the standard strategy order: the
// dedicated site strategies first, the generic directory walk last.
//
// timeout bounds a single strategy's Match call, which may perform an
// upstream illustration lookup.
func NewEngine(store ArtistStore, resolver IllustrationResolver, timeout time.Duration, logger *slog.Logger) *Engine {
	if timeout <= 0 {
		timeout = constants.DefaultFinderProviderTimeout
	}

	return &Engine{
		store: store,
		strategies: []Strategy{
			NewPixivStrategy(resolver),
			NewNicoSeigaStrategy(resolver),
			NewNijieStrategy(resolver),
			NewTumblrStrategy(),
			NewGenericStrategy(),
		},
		timeout: timeout,
		logger:  logger,
	}
}

// FindArtists resolves a source URL to the active artists whose stored URLs
// cover it. The result is empty, never nil, when nothing matches; a URL that
// cannot be parsed simply matches nothing.
//
// A strategy that recognizes the URL's shape owns the outcome: zero matches
// from a dedicated strategy stay zero rather than falling through to the
// generic walk. Upstream lookup failures downgrade to a per-strategy miss so
// a provider outage never fails the request.
func (engine *Engine) FindArtists(ctx context.Context, rawURL string) ([]*artist.Artist, error) {
	source, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || source.Host == "" {
		return []*artist.Artist{}, nil
	}

	for _, strategy := range engine.strategies {
		key, err := engine.match(ctx, strategy, source)
		if err != nil {
			engine.logger.Warn("finder_strategy_failed",
				slog.String("strategy", strategy.Name()),
				slog.String("url", rawURL),
				slog.String("error", err.Error()),
			)
			continue
		}
		if key == nil {
			continue
		}

		matches, err := engine.resolve(ctx, key)
		if err != nil {
			return nil, err
		}

		engine.logger.Debug("finder_resolved",
			slog.String("strategy", strategy.Name()),
			slog.String("url", rawURL),
			slog.Int("matches", len(matches)),
		)
		return matches, nil
	}

	return []*artist.Artist{}, nil
}

func (engine *Engine) match(ctx context.Context, strategy Strategy, source *url.URL) (*LookupKey, error) {
	matchCtx, cancel := context.WithTimeout(ctx, engine.timeout)
	defer cancel()

	return strategy.Match(matchCtx, source)
}

// resolve queries the stored collection for a lookup key. Exact keys outrank
// prefix keys: any exact hit suppresses the prefix pass entirely.
func (engine *Engine) resolve(ctx context.Context, key *LookupKey) ([]*artist.Artist, error) {
	seen := map[int]bool{}
	matches := []*artist.Artist{}

	for _, searchKey := range key.Exact {
		found, err := engine.store.FindActiveByNormalizedURL(ctx, searchKey)
		if err != nil {
			return nil, err
		}
		for _, a := range found {
			if !seen[a.ID] {
				seen[a.ID] = true
				matches = append(matches, a)
			}
		}
	}
	if len(matches) > 0 {
		return matches, nil
	}

	for _, searchKey := range key.Prefix {
		found, err := engine.store.FindActiveByURLPrefix(ctx, searchKey)
		if err != nil {
			return nil, err
		}
		for _, a := range found {
			if !seen[a.ID] {
				seen[a.ID] = true
				matches = append(matches, a)
			}
		}
	}

	return matches, nil
}
