package brush

import (
	"math"
	"time"

	"github.com/matzehuels/packnav/pkg/angle"
	"github.com/matzehuels/packnav/pkg/render"
	"github.com/matzehuels/packnav/pkg/textutil"
)

// RedrawDuration is how long Redraw takes to morph the shapes.
const RedrawDuration = 500 * time.Millisecond

// Extent is an angular interval in radians. Start may exceed End, in which
// case the interval wraps through the end of the span.
type Extent struct {
	Start, End float64
}

// Handle identifies the part of the selector a drag grabbed.
type Handle int

const (
	HandleNone Handle = iota
	HandleExtent
	HandleStart
	HandleEnd
)

func (h Handle) String() string {
	switch h {
	case HandleExtent:
		return "extent"
	case HandleStart:
		return "resize-start"
	case HandleEnd:
		return "resize-end"
	default:
		return "none"
	}
}

// Dragging is the state of a selector between Begin and End.
type Dragging struct {
	Handle   Handle
	Origin   render.Point
	Snapshot Extent
	Live     Extent
}

// EventKind identifies a selection event.
type EventKind int

const (
	SelectionStarted EventKind = iota
	SelectionChanging
	SelectionEnded
)

// Event is delivered to listeners. Extent holds the live angles for
// SelectionChanging and the persisted angles otherwise.
type Event struct {
	Kind     EventKind
	Selector *Selector
	Extent   Extent
}

// Selector is a circular range selector.
type Selector struct {
	scale      Scale
	extent     Extent
	geometry   [3]Extent
	handleSize float64
	tolerance  float64
	inner      float64
	outer      float64
	extentFill string
	handleFill string

	drag      *Dragging
	listeners map[EventKind][]func(Event)

	surface render.Surface
	group   string
}

// New returns a selector spanning the full circle with the identity scale.
func New(opts ...Option) *Selector {
	s := &Selector{
		scale:      Identity(0, angle.Tau),
		extent:     Extent{0, angle.Tau},
		handleSize: DefaultHandleSize,
		tolerance:  DefaultTolerance,
		inner:      DefaultInner,
		outer:      DefaultOuter,
		extentFill: extentFill,
		handleFill: handleFill,
		listeners:  make(map[EventKind][]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.geometry = s.handles(s.extent)
	return s
}

// On registers fn for events of the given kind.
func (s *Selector) On(kind EventKind, fn func(Event)) {
	s.listeners[kind] = append(s.listeners[kind], fn)
}

func (s *Selector) emit(kind EventKind, e Extent) {
	for _, fn := range s.listeners[kind] {
		fn(Event{Kind: kind, Selector: s, Extent: e})
	}
}

// SetAngularSpan sets the angular window of the selector. The scale is reset
// to the identity over the new span and the extent covers all of it.
func (s *Selector) SetAngularSpan(start, end float64) {
	s.scale = Identity(start, end)
	s.extent = Extent{start, end}
	s.geometry = s.handles(s.extent)
}

// SetDomain sets the value domain the span maps onto.
func (s *Selector) SetDomain(lo, hi float64) {
	s.scale.V0, s.scale.V1 = lo, hi
}

// Domain returns the value domain.
func (s *Selector) Domain() (lo, hi float64) {
	return s.scale.V0, s.scale.V1
}

// Scale returns the current domain map.
func (s *Selector) Scale() Scale {
	return s.scale
}

// SetExtent sets the selection in value space.
func (s *Selector) SetExtent(lo, hi float64) {
	s.extent = Extent{s.scale.Angle(lo), s.scale.Angle(hi)}
}

// Extent returns the selection in value space.
func (s *Selector) Extent() (lo, hi float64) {
	return s.scale.Value(s.extent.Start), s.scale.Value(s.extent.End)
}

// Angles returns the persisted extent in radians.
func (s *Selector) Angles() Extent {
	return s.extent
}

// Geometry returns the angles of the extent body, the start handle and the
// end handle as currently drawn.
func (s *Selector) Geometry() [3]Extent {
	return s.geometry
}

// HandleSize returns the angular width of a handle.
func (s *Selector) HandleSize() float64 { return s.handleSize }

// Tolerance returns the filter slack.
func (s *Selector) Tolerance() float64 { return s.tolerance }

// Radii returns the inner and outer radius.
func (s *Selector) Radii() (inner, outer float64) { return s.inner, s.outer }

// State returns the drag in progress, or nil when idle.
func (s *Selector) State() *Dragging {
	if s.drag == nil {
		return nil
	}
	d := *s.drag
	return &d
}

func (s *Selector) handles(e Extent) [3]Extent {
	return [3]Extent{
		{e.Start, e.End},
		{e.Start - s.handleSize, e.Start},
		{e.End, e.End + s.handleSize},
	}
}

// Filter returns the items whose key lies within the selection, in value
// space. A wrapped selection yields the items in [start, max] followed by the
// items in [min, end], each group in input order.
func Filter[T any](s *Selector, items []T, key func(T) float64) []T {
	start, end := s.Extent()
	if start <= end {
		var out []T
		for _, it := range items {
			if angle.Contains(key(it), start, end, s.tolerance, angle.Domain{}) {
				out = append(out, it)
			}
		}
		return out
	}

	d := angle.Domain{Min: s.scale.V0, Max: s.scale.V1}
	var head, tail []T
	for _, it := range items {
		if d.Head(key(it), start) {
			head = append(head, it)
		}
	}
	for _, it := range items {
		if d.Tail(key(it), end) {
			tail = append(tail, it)
		}
	}
	return append(head, tail...)
}

// Begin starts a drag of handle from origin, given in the selector's frame.
// A drag already in progress is replaced.
func (s *Selector) Begin(h Handle, origin render.Point) {
	s.drag = &Dragging{Handle: h, Origin: origin, Snapshot: s.geometry[0], Live: s.geometry[0]}
	s.emit(SelectionStarted, s.extent)
}

// Update moves the drag to p. Calling Update while idle does nothing.
func (s *Selector) Update(p render.Point) {
	d := s.drag
	if d == nil {
		return
	}
	delta := angle.Delta(d.Origin.X, d.Origin.Y, p.X, p.Y)
	snap := d.Snapshot

	var live Extent
	switch d.Handle {
	case HandleStart:
		live = Extent{angle.ClampBackward(snap.Start+delta, snap.End-angle.Tau, snap.End), snap.End}
	case HandleEnd:
		live = Extent{snap.Start, angle.ClampForward(snap.End+delta, snap.Start, snap.Start+angle.Tau)}
	default:
		live = s.pan(snap, delta)
	}

	d.Live = live
	s.geometry = s.handles(live)
	s.refresh()
	s.extent = committed(live)
	s.emit(SelectionChanging, live)
}

// pan shifts e by delta and pins it flush against the span bounds instead of
// letting either edge leave them.
func (s *Selector) pan(e Extent, delta float64) Extent {
	start, end := e.Start+delta, e.End+delta
	width := end - start
	lo, hi := s.scale.A0, s.scale.A1

	start = wrapOnce(start)
	end = wrapOnce(end)

	if start > end {
		if hi-start > end-lo {
			end = hi
			start = end - width
		} else {
			start = lo
			end = start + width
		}
	}
	if start < lo {
		start = lo
		end = start + width
	}
	if end > hi || start+width > hi {
		end = hi
		start = end - width
	}
	return Extent{start, end}
}

func wrapOnce(a float64) float64 {
	switch {
	case a < 0:
		return a + angle.Tau
	case a > angle.Tau:
		return a - angle.Tau
	}
	return a
}

// End commits the live extent and returns to idle. Calling End while idle
// does nothing.
func (s *Selector) End() {
	d := s.drag
	if d == nil {
		return
	}
	s.drag = nil
	s.extent = committed(d.Live)
	s.emit(SelectionEnded, s.extent)
}

func committed(e Extent) Extent {
	start, end := angle.RenormalizeExtent(e.Start, e.End)
	return Extent{start, end}
}

// HitTest returns the part of the selector under p, given in the selector's
// frame. Handles take precedence over the extent body.
func (s *Selector) HitTest(p render.Point) Handle {
	r := math.Hypot(p.X, p.Y)
	if r < s.inner || r > s.outer {
		return HandleNone
	}
	a := angle.FromPoint(p.X, p.Y)
	g := s.geometry
	switch {
	case onArc(a, g[1]):
		return HandleStart
	case onArc(a, g[2]):
		return HandleEnd
	case onArc(a, g[0]):
		return HandleExtent
	}
	return HandleNone
}

func onArc(a float64, e Extent) bool {
	lo, hi := e.Start, e.End
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi-lo >= angle.Tau {
		return true
	}
	return angle.Normalize(a-lo) <= hi-lo
}

// PointerDown starts a drag when p hits the selector and reports whether it
// did.
func (s *Selector) PointerDown(p render.Point) bool {
	h := s.HitTest(p)
	if h == HandleNone {
		return false
	}
	s.Begin(h, p)
	return true
}

// PointerMove forwards p to a drag in progress and reports whether one was.
func (s *Selector) PointerMove(p render.Point) bool {
	if s.drag == nil {
		return false
	}
	s.Update(p)
	return true
}

// PointerUp ends a drag in progress and reports whether one was.
func (s *Selector) PointerUp() bool {
	if s.drag == nil {
		return false
	}
	s.End()
	return true
}

// Attach draws the selector on surface inside a new group named id, child
// of parent. The three arcs are named id+"/extent", id+"/resize-start" and
// id+"/resize-end".
func (s *Selector) Attach(surface render.Surface, parent, id string) {
	s.surface = surface
	s.group = id
	surface.Put(render.Shape{ID: id, Parent: parent, Kind: render.KindGroup, Classes: []string{"circularbrush"}, Transform: render.Identity})
	s.refresh()
}

// Group returns the id of the group the selector is drawn in.
func (s *Selector) Group() string {
	return s.group
}

// Detach removes the selector's shapes.
func (s *Selector) Detach() {
	if s.surface == nil {
		return
	}
	s.surface.Remove(s.group)
	s.surface = nil
}

func (s *Selector) shapeIDs() [3]string {
	return [3]string{s.group + "/extent", s.group + "/resize-start", s.group + "/resize-end"}
}

func (s *Selector) shape(i int, e Extent) render.Shape {
	ids := s.shapeIDs()
	sh := render.Shape{
		ID:     ids[i],
		Parent: s.group,
		Kind:   render.KindArc,
		Arc:    render.Arc{Inner: s.inner, Outer: s.outer, Start: e.Start, End: e.End},
	}
	if i == 0 {
		sh.Classes = []string{"extent", "circularbrush"}
		sh.Fill = s.extentFill
	} else {
		sh.Classes = []string{"resize", Handle(i + 1).String(), "circularbrush"}
		sh.Fill = s.handleFill
	}
	return sh
}

// refresh puts the current geometry on the surface without animating.
func (s *Selector) refresh() {
	if s.surface == nil {
		return
	}
	for i, e := range s.geometry {
		s.surface.Put(s.shape(i, e))
	}
}

func flatten(g [3]Extent) []float64 {
	out := make([]float64, 0, 6)
	for _, e := range g {
		out = append(out, e.Start, e.End)
	}
	return out
}

// Redraw recomputes the geometry from the persisted extent and animates every
// shape from its drawn angles to the new ones. Start and end angles are
// interpolated independently.
func (s *Selector) Redraw() {
	old := s.geometry
	s.geometry = s.handles(s.extent)
	if s.surface == nil || textutil.SequencesEqual(flatten(old), flatten(s.geometry)) {
		s.refresh()
		return
	}

	tr := render.Transition{Name: "redraw", Duration: RedrawDuration}
	for i, id := range s.shapeIDs() {
		from, to := old[i], s.geometry[i]
		if _, ok := s.surface.Shape(id); !ok {
			s.surface.Put(s.shape(i, from))
		}
		s.surface.Animate(id, tr, func(sh *render.Shape, t float64) {
			sh.Arc.Start = render.Lerp(from.Start, to.Start, t)
			sh.Arc.End = render.Lerp(from.End, to.End, t)
		}, nil)
	}
}
