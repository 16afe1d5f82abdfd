package finder

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// NijieStrategy recognizes Nijie member pages, view pages, and picture
// hosts. Picture filenames embed the member id directly, so those resolve
// without an upstream lookup.
type NijieStrategy struct {
	resolver IllustrationResolver
}

func NewNijieStrategy(resolver IllustrationResolver) *NijieStrategy {
	return &NijieStrategy{resolver: resolver}
}

func (strategy *NijieStrategy) Name() string { return "nijie" }

// 236014_20170620101426_0.png
var nijiePictureFile = regexp.MustCompile(`\A(\d+)_`)

func (strategy *NijieStrategy) Match(ctx context.Context, source *url.URL) (*LookupKey, error) {
	host := strings.ToLower(source.Hostname())
	if !domainOf(host, "nijie.info") {
		return nil, nil
	}

	switch source.Path {
	case "/members.php", "/members_illust.php":
		if id := source.Query().Get("id"); isDigits(id) {
			return nijieMemberKey(id), nil
		}
		return &LookupKey{}, nil

	case "/view.php", "/view_popup.php":
		if id := source.Query().Get("id"); isDigits(id) {
			return strategy.resolveIllustration(ctx, id)
		}
		return &LookupKey{}, nil
	}

	if strings.Contains(source.Path, "nijie_picture") {
		segments := strings.Split(source.Path, "/")
		file := segments[len(segments)-1]
		if m := nijiePictureFile.FindStringSubmatch(file); m != nil {
			return nijieMemberKey(m[1]), nil
		}
	}

	return &LookupKey{}, nil
}

func (strategy *NijieStrategy) resolveIllustration(ctx context.Context, rawID string) (*LookupKey, error) {
	illustrationID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || strategy.resolver == nil {
		return &LookupKey{}, nil
	}

	ownerID, ok, err := strategy.resolver.ResolveToOwner(ctx, SiteNijie, illustrationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &LookupKey{}, nil
	}
	return nijieMemberKey(strconv.FormatInt(ownerID, 10)), nil
}

func nijieMemberKey(memberID string) *LookupKey {
	return &LookupKey{
		Exact: []string{
			fmt.Sprintf("nijie.info/members.php?id=%s", memberID),
			fmt.Sprintf("nijie.info/members_illust.php?id=%s", memberID),
		},
	}
}
