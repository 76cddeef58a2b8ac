package source

import (
	"context"
	"fmt"
	"strings"
)

// Router picks a Fetcher by the id's URL scheme. Ids without a scheme go to
// the "file" fetcher.
type Router struct {
	fetchers map[string]Fetcher
}

// NewRouter returns a router with a FileFetcher rooted at root and an
// HTTPFetcher for http and https.
func NewRouter(root string, httpFetcher *HTTPFetcher) *Router {
	r := &Router{fetchers: map[string]Fetcher{}}
	r.Register("file", FileFetcher{Root: root})
	if httpFetcher != nil {
		r.Register("http", httpFetcher)
		r.Register("https", httpFetcher)
	}
	return r
}

// Register sets the fetcher for a scheme.
func (r *Router) Register(scheme string, f Fetcher) {
	if r.fetchers == nil {
		r.fetchers = map[string]Fetcher{}
	}
	r.fetchers[strings.ToLower(scheme)] = f
}

// Fetch hands id to the fetcher registered for its scheme.
func (r *Router) Fetch(ctx context.Context, id string) ([]byte, error) {
	scheme := Scheme(id)
	f, ok := r.fetchers[scheme]
	if !ok {
		return nil, unavailable(id, fmt.Errorf("no fetcher for scheme %q", scheme))
	}
	return f.Fetch(ctx, id)
}

// Scheme returns the lower-cased URL scheme of id, or "file" for plain
// paths. Single-letter schemes are Windows drive letters.
func Scheme(id string) string {
	i := strings.Index(id, "://")
	if i <= 1 {
		return "file"
	}
	return strings.ToLower(id[:i])
}
