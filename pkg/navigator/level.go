package navigator

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/pager"
	"github.com/matzehuels/packnav/pkg/render"
)

// LevelState is the lifecycle stage of a Level.
type LevelState int

const (
	LevelUnattached LevelState = iota
	LevelAttached
	LevelRendered
	LevelDisposed
)

func (s LevelState) String() string {
	switch s {
	case LevelUnattached:
		return "unattached"
	case LevelAttached:
		return "attached"
	case LevelRendered:
		return "rendered"
	case LevelDisposed:
		return "disposed"
	}
	return "LevelState(" + strconv.Itoa(int(s)) + ")"
}

// Transition names. Exit reuses the position transition so that a node
// coming back while it shrinks interrupts its own removal.
const (
	transitionPosition = "positionAndRadius"
	transitionText     = "text"
	transitionDispose  = "dispose"
)

// Level is one independently laid out tree drawn inside a node of the level
// above. The root level has depth 1.
type Level struct {
	id     string
	depth  int
	root   *pack.Node
	radius float64
	offset render.Point
	state  LevelState
	pager  *pager.Pager

	shapes map[string]*pack.Node // shape id -> node, as of the last render
}

// ID returns the level's group id on the surface.
func (lv *Level) ID() string { return lv.id }

// Depth returns the 1-based expansion depth.
func (lv *Level) Depth() int { return lv.depth }

// Root returns the top of the level's tree.
func (lv *Level) Root() *pack.Node { return lv.root }

// Radius returns the radius the level was laid out with.
func (lv *Level) Radius() float64 { return lv.radius }

// Offset returns the level's origin in the coordinates of the zoomed group.
func (lv *Level) Offset() render.Point { return lv.offset }

func (lv *Level) State() LevelState { return lv.state }

// Pager returns the level's pager, or nil if the level does not overflow.
func (lv *Level) Pager() *pager.Pager { return lv.pager }

// NodeAt returns the node drawn as the shape with the given id.
func (lv *Level) NodeAt(shapeID string) *pack.Node { return lv.shapes[shapeID] }

func (lv *Level) attach(surface render.Surface, parent string) {
	surface.Put(render.Shape{
		ID:        lv.id,
		Parent:    parent,
		Kind:      render.KindGroup,
		Classes:   []string{"pack", "level-" + strconv.Itoa(lv.depth)},
		Transform: render.Transform{X: lv.offset.X, Y: lv.offset.Y, K: 1},
	})
	lv.state = LevelAttached
}

// frame is what one render pass needs to know about the navigator.
type frame struct {
	nav       *Navigator
	state     *State
	ancestors map[uuid.UUID]bool
	paged     *Level // the level whose pager ring is drawn
}

// showLabel reports whether nd's label is visible: its parent, or the node
// its parent expanded, has focus.
func (f frame) showLabel(nd *pack.Node) bool {
	if nd.Parent == nil || f.state.Focus == nil {
		return false
	}
	return nd.Parent == f.state.Focus || f.nav.Link(nd.Parent) == f.state.Focus
}

func (f frame) fill(nd *pack.Node) string {
	if f.ancestors[nd.ID] {
		return f.nav.color
	}
	return render.White
}

type placed struct {
	id   string
	node *pack.Node
}

// render lays the level out and joins the result with the shapes already on
// the surface: stale circles shrink away, surviving ones move, new ones grow.
func (lv *Level) render(f frame) {
	n := f.nav
	surface := n.surface

	root := lv.root
	all := root.Children
	if window, ok := lv.window(n, f.paged == lv); ok {
		root.Children = window
	}
	laid := n.layout.Layout(root, 2*lv.radius, 5/float64(lv.depth))
	root.Children = all

	var want []placed
	dup := map[string]int{}
	for _, nd := range laid {
		if lv.depth > 1 && nd == root {
			continue
		}
		key := nd.Name + "__" + strconv.Itoa(nd.Depth)
		if k := dup[key]; k > 0 {
			dup[key]++
			key = fmt.Sprintf("%s#%d", key, k)
		} else {
			dup[key] = 1
		}
		want = append(want, placed{id: lv.id + "/" + key, node: nd})
	}

	keep := make(map[string]bool, len(want))
	for _, p := range want {
		keep[p.id] = true
	}
	for _, id := range surface.Children(lv.id) {
		if !keep[id] {
			lv.exit(n, id)
		}
	}

	stroke := render.Contrast(n.color)
	shapes := make(map[string]*pack.Node, len(want))
	for _, p := range want {
		shapes[p.id] = p.node
		if _, ok := surface.Shape(p.id); ok {
			lv.update(f, p)
		} else {
			lv.enter(f, p, stroke)
		}
	}
	lv.shapes = shapes
	lv.state = LevelRendered
}

func (lv *Level) classes(nd *pack.Node) []string {
	c := []string{"node", "depth-" + strconv.Itoa(lv.depth)}
	if nd == lv.root {
		c = append(c, "node-root")
	}
	if nd.IsLeaf() {
		c = append(c, "node-leaf")
	}
	if nd.HasTag(pack.TagCreateNew) {
		c = append(c, pack.TagCreateNew)
	}
	return c
}

func (lv *Level) exit(n *Navigator, id string) {
	sh, ok := n.surface.Shape(id)
	if !ok || sh.HasClass("exiting") {
		return
	}
	sh.LabelHidden = true
	sh.SetClass("exiting", true)
	n.surface.Put(sh)
	r0 := sh.R
	n.surface.Animate(id, render.Transition{Name: transitionPosition, Duration: n.speed},
		func(s *render.Shape, t float64) { s.R = render.Lerp(r0, 0, t) },
		func() { n.surface.Remove(id) })
}

func (lv *Level) update(f frame, p placed) {
	n := f.nav
	sh, _ := n.surface.Shape(p.id)
	nd := p.node
	show := f.showLabel(nd)

	fill := f.fill(nd)
	sh.Classes = lv.classes(nd)
	sh.Fill = fill
	sh.Label = nd.Name
	sh.LabelColor = render.BlackOrWhite(fill)
	if show {
		sh.LabelHidden = false
	}
	n.surface.Put(sh)

	x0, y0, r0 := sh.X, sh.Y, sh.R
	n.surface.Animate(p.id, render.Transition{Name: transitionPosition, Duration: PositionDuration},
		func(s *render.Shape, t float64) {
			s.X = render.Lerp(x0, nd.X, t)
			s.Y = render.Lerp(y0, nd.Y, t)
			s.R = render.Lerp(r0, nd.R, t)
		}, nil)

	o0, o1 := sh.LabelOpacity, 0.0
	if show {
		o1 = 1
	}
	n.surface.Animate(p.id, render.Transition{Name: transitionText, Duration: PositionDuration},
		func(s *render.Shape, t float64) {
			s.LabelOpacity = render.Lerp(o0, o1, t)
			if t >= 1 && !show {
				s.LabelHidden = true
			}
		}, nil)
}

func (lv *Level) enter(f frame, p placed, stroke string) {
	n := f.nav
	nd := p.node
	fill := f.fill(nd)
	opacity := 0.0
	if f.showLabel(nd) {
		opacity = 1
	}
	n.surface.Put(render.Shape{
		ID:           p.id,
		Parent:       lv.id,
		Kind:         render.KindCircle,
		Classes:      lv.classes(nd),
		X:            nd.X,
		Y:            nd.Y,
		Fill:         fill,
		Stroke:       stroke,
		Label:        nd.Name,
		LabelColor:   render.BlackOrWhite(fill),
		LabelOpacity: opacity,
	})
	r1 := nd.R
	n.surface.Animate(p.id, render.Transition{Name: transitionPosition, Delay: n.speed, Duration: n.speed},
		func(s *render.Shape, t float64) { s.R = render.Lerp(0, r1, t) }, nil)
}

// window returns the children visible on the current page when the level
// overflows, creating or retiring the pager as needed. Without ring the
// pager keeps its page but draws nothing.
func (lv *Level) window(n *Navigator, ring bool) ([]*pack.Node, bool) {
	root := lv.root
	if !root.HasTag(pack.TagOverflow) || len(root.Children) <= n.budget {
		if lv.pager != nil {
			lv.pager.Dispose()
			lv.pager = nil
		}
		return nil, false
	}

	var static, dynamic []*pack.Node
	for _, c := range pack.SortedChildren(root) {
		if c.HasTag(pack.TagStatic) {
			static = append(static, c)
		} else {
			dynamic = append(dynamic, c)
		}
	}
	slots := max(n.budget-len(static), 1)
	pages := max((len(dynamic)+slots-1)/slots, 1)

	if lv.pager == nil {
		lv.pager = n.newPager(lv.id)
	}
	lv.pager.SetRange(0, pages-1)
	if ring {
		lv.pager.Render()
	} else {
		lv.pager.Dispose()
	}

	lo := min(lv.pager.Value()*slots, len(dynamic))
	hi := min(lo+slots, len(dynamic))
	return append(slices.Clone(dynamic[lo:hi]), static...), true
}

// dispose removes the level's shapes with a shrink transition.
func (lv *Level) dispose(n *Navigator) {
	if lv.pager != nil {
		lv.pager.Dispose()
		lv.pager = nil
	}
	if n.surface != nil {
		for _, id := range n.surface.Children(lv.id) {
			sh, ok := n.surface.Shape(id)
			if !ok {
				continue
			}
			sh.LabelHidden = true
			n.surface.Put(sh)
			r0 := sh.R
			n.surface.Animate(id, render.Transition{Name: transitionPosition, Duration: n.speed},
				func(s *render.Shape, t float64) { s.R = render.Lerp(r0, 0, t) }, nil)
		}
		id := lv.id
		surface := n.surface
		surface.Animate(id, render.Transition{Name: transitionDispose, Duration: n.speed}, nil,
			func() { surface.Remove(id) })
	}
	lv.shapes = nil
	lv.state = LevelDisposed
}
