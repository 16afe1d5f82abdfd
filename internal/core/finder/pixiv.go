package finder

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// PixivStrategy recognizes pixiv member pages, illustration pages, and raw
// image URLs on the pximg CDN.
//
// Illustration and image URLs carry the work id, not the member id, so they
// go through the [IllustrationResolver] to find the uploader. Member pages
// map straight to lookup keys.
type PixivStrategy struct {
	resolver IllustrationResolver
}

func NewPixivStrategy(resolver IllustrationResolver) *PixivStrategy {
	return &PixivStrategy{resolver: resolver}
}

func (strategy *PixivStrategy) Name() string { return "pixiv" }

var (
	// 46324488_p0.png, 46324488_p0_master1200.jpg, 46324488_big_p0.jpg
	pixivImageFile = regexp.MustCompile(`\A(\d+)(?:_\w+)?\.\w+\z`)

	pixivMemberPath = regexp.MustCompile(`\A/(?:u|users)/(\d+)\z`)
	pixivStaccPath  = regexp.MustCompile(`\A/stacc/(\d+)\z`)
	pixivIllustPath = regexp.MustCompile(`\A/(?:i|artworks)/(\d+)\z`)
)

func (strategy *PixivStrategy) Match(ctx context.Context, source *url.URL) (*LookupKey, error) {
	host := strings.ToLower(source.Hostname())

	switch {
	case domainOf(host, "pximg.net"):
		return strategy.matchImage(ctx, source)
	case domainOf(host, "pixiv.net"):
	default:
		return nil, nil
	}

	// Legacy image paths under pixiv.net/img/ carry member names, not ids,
	// and the profile redirect no longer exists. Claim them with no result
	// rather than letting the directory walk guess.
	if strings.HasPrefix(source.Path, "/img/") {
		return &LookupKey{}, nil
	}

	if m := pixivMemberPath.FindStringSubmatch(source.Path); m != nil {
		return pixivMemberKey(m[1]), nil
	}

	// Numeric stacc feed URLs carry the member id directly. Named stacc
	// feeds fall through to the claim below, same as /img/.
	if m := pixivStaccPath.FindStringSubmatch(source.Path); m != nil {
		return pixivMemberKey(m[1]), nil
	}

	if source.Path == "/member.php" || source.Path == "/member_illust.php" {
		query := source.Query()
		if id := query.Get("illust_id"); id != "" {
			return strategy.resolveIllustration(ctx, id)
		}
		if id := query.Get("id"); id != "" && isDigits(id) {
			return pixivMemberKey(id), nil
		}
		return &LookupKey{}, nil
	}

	if m := pixivIllustPath.FindStringSubmatch(source.Path); m != nil {
		return strategy.resolveIllustration(ctx, m[1])
	}

	if strings.Contains(source.Path, "/img-original/") || strings.Contains(source.Path, "/img-master/") {
		return strategy.matchImage(ctx, source)
	}

	return &LookupKey{}, nil
}

// matchImage extracts the illustration id from a CDN image filename.
func (strategy *PixivStrategy) matchImage(ctx context.Context, source *url.URL) (*LookupKey, error) {
	segments := strings.Split(source.Path, "/")
	file := segments[len(segments)-1]

	m := pixivImageFile.FindStringSubmatch(file)
	if m == nil {
		return &LookupKey{}, nil
	}
	return strategy.resolveIllustration(ctx, m[1])
}

func (strategy *PixivStrategy) resolveIllustration(ctx context.Context, rawID string) (*LookupKey, error) {
	illustrationID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || strategy.resolver == nil {
		return &LookupKey{}, nil
	}

	ownerID, ok, err := strategy.resolver.ResolveToOwner(ctx, SitePixiv, illustrationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &LookupKey{}, nil
	}
	return pixivMemberKey(strconv.FormatInt(ownerID, 10)), nil
}

// pixivMemberKey covers every stored spelling of a member profile URL.
func pixivMemberKey(memberID string) *LookupKey {
	return &LookupKey{
		Exact: []string{
			fmt.Sprintf("pixiv.net/users/%s", memberID),
			fmt.Sprintf("pixiv.net/u/%s", memberID),
			fmt.Sprintf("pixiv.net/member.php?id=%s", memberID),
			fmt.Sprintf("touch.pixiv.net/member.php?id=%s", memberID),
			fmt.Sprintf("pixiv.net/stacc/%s", memberID),
		},
	}
}
