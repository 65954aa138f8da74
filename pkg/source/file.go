package source

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/matzehuels/packnav/pkg/errors"
	pnio "github.com/matzehuels/packnav/pkg/io"
	"github.com/matzehuels/packnav/pkg/pack"
)

// Files reads JSON payloads from the filesystem. Relative paths resolve
// against Root.
type Files struct {
	Root string
}

// Fetch implements Fetcher for file:// URLs and bare paths.
func (f Files) Fetch(ctx context.Context, rawURL string) (*pack.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := filePath(rawURL)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) && f.Root != "" {
		path = filepath.Join(f.Root, path)
	}
	tree, err := pnio.ImportJSON(path)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return tree, err
}

func filePath(rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, "file:") {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedScheme, err)
	}
	if u.Opaque != "" {
		return u.Opaque, nil
	}
	return filepath.FromSlash(u.Host + u.Path), nil
}
