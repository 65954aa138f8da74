package source

import (
	"context"
	"errors"

	"github.com/matzehuels/packnav/pkg/pack"
)

var (
	// ErrNotFound is returned when no payload exists at a URL.
	ErrNotFound = errors.New("payload not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// unexpected status codes).
	ErrNetwork = errors.New("network error")

	// ErrUnsupportedScheme is returned by Router for a URL it has no
	// fetcher for.
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
)

// Fetcher loads the tree behind a URL. It matches navigator.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*pack.Node, error)
}
