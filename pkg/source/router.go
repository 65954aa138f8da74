package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/packnav/pkg/pack"
)

// Router picks a fetcher by URL scheme. A nil field disables its scheme.
type Router struct {
	HTTP  Fetcher // http:// and https://
	Files Fetcher // file:// and bare paths
	Store Fetcher // sqlite://
}

// Fetch implements Fetcher.
func (r Router) Fetch(ctx context.Context, rawURL string) (*pack.Node, error) {
	f := r.route(rawURL)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, rawURL)
	}
	return f.Fetch(ctx, rawURL)
}

func (r Router) route(rawURL string) Fetcher {
	scheme, _, ok := strings.Cut(rawURL, "://")
	if !ok {
		return r.Files
	}
	switch strings.ToLower(scheme) {
	case "http", "https":
		return r.HTTP
	case "file":
		return r.Files
	case "sqlite":
		return r.Store
	}
	return nil
}
