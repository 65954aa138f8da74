package cli

import (
	"context"
	"os"
	"strings"

	"github.com/matzehuels/packnav/pkg/errors"
	pnio "github.com/matzehuels/packnav/pkg/io"
	"github.com/matzehuels/packnav/pkg/navigator"
	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/render/scene"
)

// session is a navigator attached to an in-memory scene.
type session struct {
	nav   *navigator.Navigator
	scene *scene.Scene
}

// LoadTree reads the root tree. Existing local files are read directly so
// relative paths resolve against the working directory; anything else goes
// through the fetcher.
func LoadTree(ctx context.Context, fetcher navigator.Fetcher, ref string) (*pack.Node, error) {
	if _, err := os.Stat(ref); err == nil {
		return pnio.ImportJSON(ref)
	}
	if fetcher == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "tree %s not found", ref)
	}
	return fetcher.Fetch(ctx, ref)
}

// newSession attaches a navigator built from the CLI config to a fresh
// scene and runs the opening transitions to completion.
func (c *CLI) newSession(tree *pack.Node, fetcher navigator.Fetcher, extra ...navigator.Option) (*session, error) {
	opts := append(c.Config.NavigatorOptions(), navigator.WithLogger(c.Logger))
	if fetcher != nil {
		opts = append(opts, navigator.WithFetcher(fetcher))
	}
	opts = append(opts, extra...)

	nav := navigator.New(opts...)
	if err := nav.SetRootData(tree); err != nil {
		return nil, err
	}
	sc := scene.New()
	if err := nav.AttachTo(sc); err != nil {
		return nil, err
	}
	sc.Flush()
	return &session{nav: nav, scene: sc}, nil
}

// splitPath turns "a/b/c" into its segments, dropping empty ones.
func splitPath(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// children lists what the focused node shows: the root of its nested level
// when it has one, its own children otherwise.
func (s *session) children() []*pack.Node {
	focus := s.nav.Focus()
	if focus == nil {
		return nil
	}
	if nested := s.nav.Link(focus); nested != nil && focus.Parent != nil {
		return pack.SortedChildren(nested)
	}
	return pack.SortedChildren(focus)
}

// child finds the listed child called name.
func (s *session) child(name string) *pack.Node {
	for _, n := range s.children() {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// activate clicks nd and finishes every transition it started.
func (s *session) activate(ctx context.Context, nd *pack.Node) error {
	err := s.nav.Activate(ctx, nd)
	s.scene.Flush()
	return err
}

// walk focuses the nodes along path one after another, loading nested
// levels on the way.
func (s *session) walk(ctx context.Context, path string) error {
	for _, name := range splitPath(path) {
		nd := s.child(name)
		if nd == nil {
			return errors.New(errors.ErrCodeNotFound, "no node %q under %q", name, s.nav.Focus().Name)
		}
		if err := s.activate(ctx, nd); err != nil {
			return err
		}
	}
	return nil
}

// parent returns the node one step up from the focus, or nil at the top.
func (s *session) parent() *pack.Node {
	return s.nav.Up()
}

// breadcrumbs names the nodes from the top of the tree down to the focus.
func (s *session) breadcrumbs() []string {
	var out []string
	seen := make(map[*pack.Node]bool)
	for n := s.nav.Focus(); n != nil && !seen[n]; {
		seen[n] = true
		out = append(out, n.Name)
		p := n.Parent
		if p != nil && p.Parent == nil {
			if expanded := s.nav.Link(p); expanded != nil {
				p = expanded
			}
		}
		n = p
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
