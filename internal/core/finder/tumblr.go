package finder

import (
	"context"
	"net/url"
	"strings"
)

// TumblrStrategy recognizes tumblr blogs by subdomain. Any page under a blog
// resolves to the blog root, so stored profile URLs match posts, archives,
// and tag pages alike.
type TumblrStrategy struct{}

func NewTumblrStrategy() *TumblrStrategy {
	return &TumblrStrategy{}
}

func (strategy *TumblrStrategy) Name() string { return "tumblr" }

func (strategy *TumblrStrategy) Match(_ context.Context, source *url.URL) (*LookupKey, error) {
	host := strings.ToLower(source.Hostname())
	if !domainOf(host, "tumblr.com") {
		return nil, nil
	}

	blog := strings.TrimSuffix(host, ".tumblr.com")
	if blog == "" || blog == "tumblr.com" || blog == "www" {
		return &LookupKey{}, nil
	}

	// Media hosts (data.tumblr.com, NN.media.tumblr.com) do not reveal the
	// blog the image belongs to.
	if blog == "data" || strings.HasSuffix(blog, ".media") || blog == "media" {
		return &LookupKey{}, nil
	}

	blogHost := blog + ".tumblr.com"
	return &LookupKey{
		Exact:  []string{blogHost},
		Prefix: []string{blogHost},
	}, nil
}
