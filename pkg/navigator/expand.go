package navigator

import (
	"context"
	"time"

	"github.com/matzehuels/packnav/pkg/errors"
	"github.com/matzehuels/packnav/pkg/observability"
	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/render"
)

// Expansion is a pending load of a node's nested level, returned by Begin.
type Expansion struct {
	Node *pack.Node
	URL  string

	nav       *Navigator
	fetcher   Fetcher
	gen       uint64
	prevFocus *pack.Node
	prevView  render.View
	started   time.Time
}

// Fetch loads the payload. It touches no navigator state and may run on any
// goroutine.
func (e *Expansion) Fetch(ctx context.Context) (*pack.Node, error) {
	if e.fetcher == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no fetcher configured for %q", e.URL)
	}
	return e.fetcher.Fetch(ctx, e.URL)
}

// Activate handles a click on nd, fetching its nested level synchronously
// when it has one.
func (n *Navigator) Activate(ctx context.Context, nd *pack.Node) error {
	exp, err := n.Begin(nd)
	if err != nil || exp == nil {
		return err
	}
	tree, err := exp.Fetch(ctx)
	return n.Complete(exp, tree, err)
}

// Begin handles a click on nd.
//
// A creation placeholder shows the affordance. Clicking the focused node
// does nothing. Any other node is zoomed to; if it has a URL and no nested
// level yet, Begin returns the Expansion to fetch and complete. Otherwise
// the levels are re-rendered and Begin returns nil.
func (n *Navigator) Begin(nd *pack.Node) (*Expansion, error) {
	if n.surface == nil {
		return nil, errors.New(errors.ErrCodeDetached, "navigator is not attached")
	}
	if nd == nil || n.nodes[nd.ID] != nd {
		return nil, errors.New(errors.ErrCodeStale, "node is not part of a live level")
	}
	if nd.HasTag(pack.TagCreateNew) {
		n.creating = nd
		if n.affordance != nil {
			n.affordance.Show()
		}
		return nil, nil
	}
	if nd == n.state.Focus {
		return nil, nil
	}

	prevFocus, prevView := n.state.Focus, n.state.View
	n.zoomTo(nd)

	if nd.Expandable() && n.Link(nd) == nil {
		n.gen++
		exp := &Expansion{
			Node:      nd,
			URL:       nd.URL,
			nav:       n,
			fetcher:   n.fetcher,
			gen:       n.gen,
			prevFocus: prevFocus,
			prevView:  prevView,
			started:   time.Now(),
		}
		observability.Navigator().OnExpandStart(context.Background(), nd.Name, nd.URL)
		n.log.Debug("expanding node", "node", nd.Name, "url", nd.URL)
		return exp, nil
	}
	n.Render()
	return nil, nil
}

// stale explains why exp can no longer be applied, or returns "".
func (n *Navigator) stale(exp *Expansion) string {
	switch {
	case n.surface == nil:
		return "navigator detached"
	case n.nodes[exp.Node.ID] != exp.Node:
		return "node no longer on a live level"
	case n.Link(exp.Node) != nil:
		return "node already expanded"
	case n.state.Focus != exp.Node:
		return "focus moved"
	case exp.gen != n.gen:
		return "superseded by a newer expansion"
	}
	return ""
}

// Complete applies the result of exp.Fetch.
//
// On success the payload becomes a new level inside the node's circle, the
// two are linked and the view re-zooms onto the node. If the fetch failed
// or the payload is not a valid tree, focus and view return to where they
// were before Begin. A result for state that has moved on is dropped and
// reported as STALE_STATE.
func (n *Navigator) Complete(exp *Expansion, tree *pack.Node, fetchErr error) error {
	if exp == nil || exp.nav != n {
		return errors.New(errors.ErrCodeInvalidInput, "expansion does not belong to this navigator")
	}
	ctx := context.Background()
	nd := exp.Node
	done := func(count int, err error) error {
		observability.Navigator().OnExpandComplete(ctx, nd.Name, exp.URL, count, time.Since(exp.started), err)
		return err
	}

	if reason := n.stale(exp); reason != "" {
		n.log.Warn("discarding expansion result", "node", nd.Name, "url", exp.URL, "reason", reason)
		return done(0, errors.New(errors.ErrCodeStale, "expansion of %q: %s", nd.Name, reason))
	}

	if fetchErr != nil {
		n.rollback(exp)
		n.log.Error("expansion failed", "node", nd.Name, "url", exp.URL, "err", fetchErr)
		return done(0, errors.Wrap(errors.ErrCodeFetchFailed, fetchErr, "expand %q", nd.Name))
	}
	if err := pack.Validate(tree); err != nil {
		n.rollback(exp)
		n.log.Error("expansion payload rejected", "node", nd.Name, "url", exp.URL, "err", err)
		return done(0, errors.Wrap(errors.ErrCodeInvalidTree, err, "expand %q", nd.Name))
	}

	pack.Prepare(tree)
	parent := n.owner[nd.ID]
	offset := render.Point{
		X: parent.offset.X + nd.X - nd.R,
		Y: parent.offset.Y + nd.Y - nd.R,
	}
	lv := n.newLevel(parent.depth+1, tree, nd.R, offset)
	n.links.Link(nd.ID, tree.ID)
	n.state.Levels = append(n.state.Levels, lv)

	lv.render(n.frame())
	n.zoomTo(nd)
	n.Render()
	return done(tree.Count(), nil)
}

func (n *Navigator) rollback(exp *Expansion) {
	focus := exp.prevFocus
	if focus == nil || n.nodes[focus.ID] != focus {
		focus = n.data
	}
	n.state.Focus = focus
	n.animateTo(exp.prevView)
	n.Render()
}
