package finder

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taibuivan/artdex/internal/platform/constants"
)

// # Upstream Resolver

// HTTPResolver answers illustration-to-owner lookups against the hosting
// sites' public endpoints.
type HTTPResolver struct {
	client *http.Client
}

// NewHTTPResolver constructs an [HTTPResolver]. The timeout is a hard cap
// per lookup; callers typically also bound the context.
func NewHTTPResolver(timeout time.Duration) *HTTPResolver {
	if timeout <= 0 {
		timeout = constants.DefaultFinderProviderTimeout
	}
	return &HTTPResolver{
		client: &http.Client{Timeout: timeout},
	}
}

func (resolver *HTTPResolver) ResolveToOwner(ctx context.Context, site Site, illustrationID int64) (int64, bool, error) {
	switch site {
	case SitePixiv:
		return resolver.resolvePixiv(ctx, illustrationID)
	case SiteNicoSeiga:
		return resolver.resolveNicoSeiga(ctx, illustrationID)
	case SiteNijie:
		return resolver.resolveNijie(ctx, illustrationID)
	}
	return 0, false, fmt.Errorf("unknown illustration site %q", site)
}

// resolvePixiv uses the ajax illustration endpoint, which reports the
// uploader's user id as a decimal string.
func (resolver *HTTPResolver) resolvePixiv(ctx context.Context, illustrationID int64) (int64, bool, error) {
	endpoint := fmt.Sprintf("https://www.pixiv.net/ajax/illust/%d", illustrationID)

	body, found, err := resolver.fetch(ctx, endpoint)
	if err != nil || !found {
		return 0, false, err
	}

	var payload struct {
		Error bool `json:"error"`
		Body  struct {
			UserID string `json:"userId"`
		} `json:"body"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, false, fmt.Errorf("pixiv illust %d: %w", illustrationID, err)
	}
	if payload.Error {
		return 0, false, nil
	}

	ownerID, err := strconv.ParseInt(payload.Body.UserID, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return ownerID, true, nil
}

func (resolver *HTTPResolver) resolveNicoSeiga(ctx context.Context, illustrationID int64) (int64, bool, error) {
	endpoint := fmt.Sprintf("https://seiga.nicovideo.jp/api/illust/info?id=%d", illustrationID)

	body, found, err := resolver.fetch(ctx, endpoint)
	if err != nil || !found {
		return 0, false, err
	}

	var payload struct {
		Image struct {
			UserID int64 `xml:"user_id"`
		} `xml:"image"`
	}
	if err := xml.Unmarshal(body, &payload); err != nil {
		return 0, false, fmt.Errorf("nicoseiga illust %d: %w", illustrationID, err)
	}
	if payload.Image.UserID == 0 {
		return 0, false, nil
	}
	return payload.Image.UserID, true, nil
}

// nijie view pages link back to the uploader's profile.
var nijieOwnerLink = regexp.MustCompile(`members\.php\?id=(\d+)`)

func (resolver *HTTPResolver) resolveNijie(ctx context.Context, illustrationID int64) (int64, bool, error) {
	endpoint := fmt.Sprintf("https://nijie.info/view.php?id=%d", illustrationID)

	body, found, err := resolver.fetch(ctx, endpoint)
	if err != nil || !found {
		return 0, false, err
	}

	m := nijieOwnerLink.FindSubmatch(body)
	if m == nil {
		return 0, false, nil
	}

	ownerID, err := strconv.ParseInt(string(m[1]), 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return ownerID, true, nil
}

// fetch performs the GET. A 404 reports "not found" without an error so
// deleted illustrations resolve to an empty result instead of a failure.
func (resolver *HTTPResolver) fetch(ctx context.Context, endpoint string) ([]byte, bool, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	request.Header.Set("User-Agent", constants.AppName+"/"+constants.AppVersion)

	response, err := resolver.client.Do(request)
	if err != nil {
		return nil, false, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if response.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("%s: unexpected status %d", endpoint, response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// # Cache Decorator

// CachedResolver wraps an [IllustrationResolver] with a Redis cache. Only
// successful resolutions are cached; misses and failures always retry
// upstream. Cache trouble is logged and ignored, the upstream answer wins.
type CachedResolver struct {
	next   IllustrationResolver
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedResolver(next IllustrationResolver, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedResolver {
	if ttl <= 0 {
		ttl = constants.DefaultFinderCacheTTL
	}
	return &CachedResolver{next: next, client: client, ttl: ttl, logger: logger}
}

func (resolver *CachedResolver) ResolveToOwner(ctx context.Context, site Site, illustrationID int64) (int64, bool, error) {
	key := fmt.Sprintf("%s%s:%d", constants.RedisPrefixIllustOwner, site, illustrationID)

	cached, err := resolver.client.Get(ctx, key).Result()
	if err == nil {
		if ownerID, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return ownerID, true, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		resolver.logger.Warn("finder_cache_read_failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	ownerID, ok, err := resolver.next.ResolveToOwner(ctx, site, illustrationID)
	if err != nil || !ok {
		return ownerID, ok, err
	}

	if err := resolver.client.Set(ctx, key, strconv.FormatInt(ownerID, 10), resolver.ttl).Err(); err != nil {
		resolver.logger.Warn("finder_cache_write_failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return ownerID, true, nil
}
