package navigator

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/packnav/pkg/errors"
	"github.com/matzehuels/packnav/pkg/observability"
	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/pager"
	"github.com/matzehuels/packnav/pkg/render"
)

// Surface ids of the navigator's own groups. The outer group applies the
// margin, the inner one the zoom.
const (
	RootGroup = "navigator"
	ZoomGroup = "navigator/viz"
)

// State is the navigation state shared by every level: the focused node,
// the live levels from the root down and the view the zoom is heading to.
type State struct {
	Focus  *pack.Node
	Levels []*Level
	View   render.View
}

// Navigator is a zoomable pack navigator.
type Navigator struct {
	log        *log.Logger
	layout     pack.Layout
	fetcher    Fetcher
	affordance Affordance
	radius     float64
	margin     Margin
	color      string
	speed      time.Duration
	budget     int
	pagerOpts  PagerOptions

	data    *pack.Node
	surface render.Surface
	state   State
	current render.View // the view the zoom group shows right now

	links *LinkTable
	nodes map[uuid.UUID]*pack.Node
	owner map[uuid.UUID]*Level

	creating *pack.Node
	gen      uint64
	seq      int
}

// New returns an unattached navigator.
func New(opts ...Option) *Navigator {
	n := &Navigator{
		log:       log.Default(),
		layout:    pack.RingLayout{},
		radius:    DefaultRadius,
		color:     DefaultColor,
		speed:     DefaultSpeed,
		budget:    DefaultOverflowBudget,
		pagerOpts: DefaultPagerOptions,
		links:     NewLinkTable(),
		nodes:     make(map[uuid.UUID]*pack.Node),
		owner:     make(map[uuid.UUID]*Level),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Data returns the root tree.
func (n *Navigator) Data() *pack.Node { return n.data }

// Focus returns the focused node.
func (n *Navigator) Focus() *pack.Node { return n.state.Focus }

// View returns the view the zoom is at or heading to, in the coordinates of
// the zoomed group.
func (n *Navigator) View() render.View { return n.state.View }

// Levels returns the live levels from the root down.
func (n *Navigator) Levels() []*Level {
	out := make([]*Level, len(n.state.Levels))
	copy(out, n.state.Levels)
	return out
}

// Attached reports whether the navigator draws on a surface.
func (n *Navigator) Attached() bool { return n.surface != nil }

// Radius returns the radius of the root level.
func (n *Navigator) Radius() float64 { return n.radius }

// Pager returns the pager of lv, or nil.
func (n *Navigator) Pager(lv *Level) *pager.Pager {
	if lv == nil {
		return nil
	}
	return lv.pager
}

// Link returns the node nd is linked to on an adjacent level, or nil.
func (n *Navigator) Link(nd *pack.Node) *pack.Node {
	if nd == nil {
		return nil
	}
	peer, ok := n.links.Peer(nd.ID)
	if !ok {
		return nil
	}
	return n.nodes[peer]
}

// LevelOf returns the level nd belongs to, or nil.
func (n *Navigator) LevelOf(nd *pack.Node) *Level {
	if nd == nil {
		return nil
	}
	return n.owner[nd.ID]
}

// NodeAt returns the node drawn as the shape with the given id, or nil.
func (n *Navigator) NodeAt(shapeID string) *pack.Node {
	for _, lv := range n.state.Levels {
		if nd := lv.NodeAt(shapeID); nd != nil {
			return nd
		}
	}
	return nil
}

// SetRadius changes the root radius. It has no effect once attached.
func (n *Navigator) SetRadius(r float64) {
	if n.surface != nil {
		n.log.Warn("unable to change radius after attach", "radius", r)
		return
	}
	n.radius = r
}

// SetMargin changes the margin. It has no effect once attached.
func (n *Navigator) SetMargin(m Margin) {
	if n.surface != nil {
		n.log.Warn("unable to change margin after attach")
		return
	}
	n.margin = m
}

// SetColor changes the ancestor fill. It has no effect once attached.
func (n *Navigator) SetColor(hex string) {
	if n.surface != nil {
		n.log.Warn("unable to change color after attach", "color", hex)
		return
	}
	n.color = hex
}

// SetRootData validates and prepares tree and makes it the root level. Once
// attached, the root level is re-rendered with the new tree; circles whose
// name and depth survive move instead of being recreated.
func (n *Navigator) SetRootData(tree *pack.Node) error {
	if err := pack.Validate(tree); err != nil {
		return err
	}
	pack.Prepare(tree)
	n.data = tree
	if n.surface == nil || len(n.state.Levels) == 0 {
		n.state.Focus = tree
		return nil
	}

	root := n.state.Levels[0]
	for _, lv := range n.state.Levels[1:] {
		n.disposeLevel(lv)
	}
	n.state.Levels = n.state.Levels[:1]
	n.unregister(root.root)
	root.root = tree
	n.register(root, tree)
	n.state.Focus = tree
	n.Render()
	n.zoomTo(tree)
	return nil
}

// AttachTo draws the navigator on surface and zooms to the root.
func (n *Navigator) AttachTo(surface render.Surface) error {
	if n.surface != nil {
		return errors.New(errors.ErrCodeInvalidInput, "navigator is already attached")
	}
	if n.data == nil {
		return errors.New(errors.ErrCodeInvalidTree, "no data to navigate; call SetRootData first")
	}
	if surface == nil {
		return errors.New(errors.ErrCodeInvalidInput, "surface is nil")
	}
	n.surface = surface
	surface.Put(render.Shape{
		ID:        RootGroup,
		Kind:      render.KindGroup,
		Classes:   []string{"zoomable-pack"},
		Transform: render.Transform{X: n.margin.Left, Y: n.margin.Top, K: 1},
	})
	surface.Put(render.Shape{ID: ZoomGroup, Parent: RootGroup, Kind: render.KindGroup, Transform: render.Identity})

	root := n.newLevel(1, n.data, n.radius, render.Point{})
	n.state = State{Focus: n.data, Levels: []*Level{root}}
	n.Render()

	view := render.View{X: n.data.X, Y: n.data.Y, W: n.radius}
	n.state.View = view
	n.jumpTo(view)
	n.log.Debug("navigator attached", "root", n.data.Name, "nodes", n.data.Count())
	return nil
}

// Detach removes everything the navigator drew and forgets all levels. The
// root data is kept, so the navigator can be attached again.
func (n *Navigator) Detach() {
	if n.surface == nil {
		return
	}
	for _, lv := range n.state.Levels {
		if lv.pager != nil {
			lv.pager.Dispose()
			lv.pager = nil
		}
		lv.state = LevelDisposed
	}
	n.surface.Remove(RootGroup)
	n.surface = nil
	n.state = State{}
	n.current = render.View{}
	n.links = NewLinkTable()
	n.nodes = make(map[uuid.UUID]*pack.Node)
	n.owner = make(map[uuid.UUID]*Level)
	n.gen++
	n.cancelCreate()
}

// Render redraws every live level and disposes the ones that are no longer
// on the path from the focused node to the root.
func (n *Navigator) Render() {
	if n.surface == nil || len(n.state.Levels) == 0 {
		return
	}
	start := time.Now()

	f := n.frame()
	used := make(map[*Level]bool)
	for id := range f.ancestors {
		if lv := n.owner[id]; lv != nil {
			used[lv] = true
		}
	}
	used[n.state.Levels[0]] = true

	levels := n.state.Levels[:0]
	var doomed []*Level
	for _, lv := range n.state.Levels {
		if used[lv] {
			levels = append(levels, lv)
		} else {
			doomed = append(doomed, lv)
		}
	}
	n.state.Levels = levels
	for i := len(doomed) - 1; i >= 0; i-- {
		n.disposeLevel(doomed[i])
	}
	// Pagers share the root center, so only the deepest level draws its ring.
	for _, lv := range levels {
		if f.paged == nil || lv.depth > f.paged.depth {
			f.paged = lv
		}
	}
	for i := len(levels) - 1; i >= 0; i-- {
		levels[i].render(f)
	}

	observability.Navigator().OnRender(context.Background(), len(levels), time.Since(start))
}

func (n *Navigator) frame() frame {
	set := make(map[uuid.UUID]bool)
	for _, a := range n.ancestors(n.state.Focus) {
		set[a.ID] = true
	}
	return frame{nav: n, state: &n.state, ancestors: set}
}

// ancestors returns the focused node, the node it is linked to and every
// node above them, crossing from a level root to the node that expanded it.
// The visited set guards against link cycles.
func (n *Navigator) ancestors(focus *pack.Node) []*pack.Node {
	if focus == nil {
		return nil
	}
	out := []*pack.Node{focus}
	seen := map[uuid.UUID]bool{focus.ID: true}
	if l := n.Link(focus); l != nil {
		out = append(out, l)
		seen[l.ID] = true
	}
	walked := make(map[uuid.UUID]bool)
	for nd := focus; nd != nil && !walked[nd.ID]; {
		walked[nd.ID] = true
		next := nd.Parent
		if next == nil {
			next = n.Link(nd)
		}
		if next == nil {
			break
		}
		if !seen[next.ID] {
			seen[next.ID] = true
			out = append(out, next)
		}
		nd = next
	}
	return out
}

func (n *Navigator) newLevel(depth int, root *pack.Node, radius float64, offset render.Point) *Level {
	n.seq++
	lv := &Level{
		id:     ZoomGroup + "/level-" + strconv.Itoa(n.seq),
		depth:  depth,
		root:   root,
		radius: radius,
		offset: offset,
	}
	n.register(lv, root)
	if n.surface != nil {
		lv.attach(n.surface, ZoomGroup)
	}
	observability.Navigator().OnLevelCreate(context.Background(), depth, root.Count())
	n.log.Debug("level created", "depth", depth, "root", root.Name, "nodes", root.Count())
	return lv
}

func (n *Navigator) register(lv *Level, tree *pack.Node) {
	tree.Walk(func(nd *pack.Node) bool {
		n.nodes[nd.ID] = nd
		n.owner[nd.ID] = lv
		return true
	})
}

func (n *Navigator) unregister(tree *pack.Node) {
	tree.Walk(func(nd *pack.Node) bool {
		n.links.Unlink(nd.ID)
		delete(n.nodes, nd.ID)
		delete(n.owner, nd.ID)
		return true
	})
}

// disposeLevel unlinks lv from the node it expanded and tears it down.
func (n *Navigator) disposeLevel(lv *Level) {
	if lv.state == LevelDisposed {
		return
	}
	n.unregister(lv.root)
	if n.creating != nil && n.nodes[n.creating.ID] == nil {
		n.cancelCreate()
	}
	lv.dispose(n)
	observability.Navigator().OnLevelDispose(context.Background(), lv.depth)
	n.log.Debug("level disposed", "depth", lv.depth, "root", lv.root.Name)
}

func (n *Navigator) newPager(levelID string) *pager.Pager {
	p := pager.New()
	o := n.pagerOpts
	p.SetWidth(float64(o.Width))
	p.SetGapSize(o.GapSize)
	p.SetRadius(o.RadiusRatio * n.radius)
	p.SetMargin(Margin{Top: n.margin.Top + n.radius, Left: n.margin.Left + n.radius})
	p.SetCallback(func(p *pager.Pager, page int) {
		if p.SetValue(page) {
			n.log.Debug("page changed", "level", levelID, "page", page)
			n.Render()
		}
	})
	p.AppendTo(n.surface, "", "pager-"+levelID)
	return p
}

// PointerDown offers the surface pointer to the pagers, deepest level
// first. It reports whether a pager took it.
func (n *Navigator) PointerDown() bool {
	for i := len(n.state.Levels) - 1; i >= 0; i-- {
		if p := n.state.Levels[i].pager; p != nil && p.PointerDown() {
			return true
		}
	}
	return false
}

// PointerMove forwards the pointer to a pager drag in progress.
func (n *Navigator) PointerMove() bool {
	for _, lv := range n.state.Levels {
		if p := lv.pager; p != nil && p.PointerMove() {
			return true
		}
	}
	return false
}

// PointerUp ends a pager drag in progress.
func (n *Navigator) PointerUp() bool {
	handled := false
	for _, lv := range slices.Clone(n.state.Levels) {
		if p := lv.pager; p != nil && p.PointerUp() {
			handled = true
		}
	}
	return handled
}
