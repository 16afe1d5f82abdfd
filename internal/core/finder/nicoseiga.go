package finder

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// NicoSeigaStrategy recognizes Nico Seiga member pages, illustration pages,
// and the lohas image CDN.
type NicoSeigaStrategy struct {
	resolver IllustrationResolver
}

func NewNicoSeigaStrategy(resolver IllustrationResolver) *NicoSeigaStrategy {
	return &NicoSeigaStrategy{resolver: resolver}
}

func (strategy *NicoSeigaStrategy) Name() string { return "nicoseiga" }

var (
	seigaMemberPath = regexp.MustCompile(`\A/user/illust/(\d+)\z`)
	seigaIllustPath = regexp.MustCompile(`\A/seiga/im(\d+)\z`)

	// lohas.nicoseiga.jp/thumb/4744553i, lohas.nicoseiga.jp/o/.../4744553.png
	seigaImageID = regexp.MustCompile(`\A(\d+)`)
)

func (strategy *NicoSeigaStrategy) Match(ctx context.Context, source *url.URL) (*LookupKey, error) {
	host := strings.ToLower(source.Hostname())

	switch {
	case domainOf(host, "nicoseiga.jp"):
		segments := strings.Split(source.Path, "/")
		file := segments[len(segments)-1]
		if m := seigaImageID.FindStringSubmatch(file); m != nil {
			return strategy.resolveIllustration(ctx, m[1])
		}
		return &LookupKey{}, nil

	case host == "seiga.nicovideo.jp" || host == "sp.seiga.nicovideo.jp":
		if m := seigaMemberPath.FindStringSubmatch(source.Path); m != nil {
			return seigaMemberKey(m[1]), nil
		}
		if m := seigaIllustPath.FindStringSubmatch(source.Path); m != nil {
			return strategy.resolveIllustration(ctx, m[1])
		}
		return &LookupKey{}, nil
	}

	return nil, nil
}

func (strategy *NicoSeigaStrategy) resolveIllustration(ctx context.Context, rawID string) (*LookupKey, error) {
	illustrationID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || strategy.resolver == nil {
		return &LookupKey{}, nil
	}

	ownerID, ok, err := strategy.resolver.ResolveToOwner(ctx, SiteNicoSeiga, illustrationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &LookupKey{}, nil
	}
	return seigaMemberKey(strconv.FormatInt(ownerID, 10)), nil
}

func seigaMemberKey(memberID string) *LookupKey {
	return &LookupKey{
		Exact: []string{
			fmt.Sprintf("seiga.nicovideo.jp/user/illust/%s", memberID),
			fmt.Sprintf("sp.seiga.nicovideo.jp/user/illust/%s", memberID),
		},
	}
}
