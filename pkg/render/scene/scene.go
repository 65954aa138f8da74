package scene

import (
	"math"
	"slices"
	"time"

	"github.com/matzehuels/packnav/pkg/angle"
	"github.com/matzehuels/packnav/pkg/render"
)

// maxFlushRounds bounds Flush when completion callbacks keep scheduling
// new transitions.
const maxFlushRounds = 1024

type tween struct {
	id    string
	tr    render.Transition
	fn    render.TweenFunc
	done  func()
	start time.Duration
	dead  bool
}

func (tw *tween) end() time.Duration {
	return tw.start + tw.tr.Delay + tw.tr.Duration
}

// Scene is the in-memory surface.
type Scene struct {
	shapes  map[string]*render.Shape
	order   []string
	tweens  []*tween
	now     time.Duration
	pointer render.Point
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{shapes: make(map[string]*render.Shape)}
}

var _ render.Surface = (*Scene)(nil)

// Shape returns a copy of the shape with the given id.
func (s *Scene) Shape(id string) (render.Shape, bool) {
	sh, ok := s.shapes[id]
	if !ok {
		return render.Shape{}, false
	}
	cp := *sh
	cp.Classes = slices.Clone(sh.Classes)
	return cp, true
}

// Put stores sh, keeping its position in draw order when it already exists.
func (s *Scene) Put(sh render.Shape) {
	sh.Classes = slices.Clone(sh.Classes)
	if cur, ok := s.shapes[sh.ID]; ok {
		*cur = sh
		return
	}
	s.shapes[sh.ID] = &sh
	s.order = append(s.order, sh.ID)
}

// Animate schedules fn over tr, interrupting any running transition with the
// same name on the same shape.
func (s *Scene) Animate(id string, tr render.Transition, fn render.TweenFunc, done func()) {
	if _, ok := s.shapes[id]; !ok {
		return
	}
	for _, tw := range s.tweens {
		if !tw.dead && tw.id == id && tw.tr.Name == tr.Name {
			tw.dead = true
		}
	}
	if tr.Ease == nil {
		tr.Ease = render.EaseCubicInOut
	}
	s.tweens = append(s.tweens, &tween{id: id, tr: tr, fn: fn, done: done, start: s.now})
}

// Remove deletes the shape, its descendants and their transitions.
func (s *Scene) Remove(id string) {
	if _, ok := s.shapes[id]; !ok {
		return
	}
	doomed := map[string]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, other := range s.order {
			if sh := s.shapes[other]; !doomed[other] && doomed[sh.Parent] {
				doomed[other] = true
				changed = true
			}
		}
	}
	for d := range doomed {
		delete(s.shapes, d)
	}
	s.order = slices.DeleteFunc(s.order, func(o string) bool { return doomed[o] })
	for _, tw := range s.tweens {
		if doomed[tw.id] {
			tw.dead = true
		}
	}
}

// Children lists the direct children of parent in insertion order.
func (s *Scene) Children(parent string) []string {
	var out []string
	for _, id := range s.order {
		if s.shapes[id].Parent == parent {
			out = append(out, id)
		}
	}
	return out
}

// SetPointer records the pointer position in root coordinates.
func (s *Scene) SetPointer(p render.Point) {
	s.pointer = p
}

// Pointer returns the pointer position in the frame of group.
func (s *Scene) Pointer(group string) render.Point {
	return s.WorldTransform(group).Invert(s.pointer)
}

// WorldTransform returns the transform mapping the frame of group into root
// coordinates. Non-group shapes contribute no transform of their own.
func (s *Scene) WorldTransform(group string) render.Transform {
	var chain []render.Transform
	for id, seen := group, 0; id != "" && seen < len(s.order)+1; seen++ {
		sh, ok := s.shapes[id]
		if !ok {
			break
		}
		if sh.Kind == render.KindGroup {
			chain = append(chain, sh.Transform)
		}
		id = sh.Parent
	}
	world := render.Identity
	for i := len(chain) - 1; i >= 0; i-- {
		world = world.Then(chain[i])
	}
	return world
}

// Now returns the scene clock.
func (s *Scene) Now() time.Duration {
	return s.now
}

// Pending reports how many transitions are still scheduled.
func (s *Scene) Pending() int {
	n := 0
	for _, tw := range s.tweens {
		if !tw.dead {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt and applies one frame of every
// running transition. Completion callbacks run after the frame, in the order
// their transitions finished.
func (s *Scene) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	var finished []*tween
	for _, tw := range slices.Clone(s.tweens) {
		if tw.dead {
			continue
		}
		begin := tw.start + tw.tr.Delay
		if s.now < begin {
			continue
		}
		t := 1.0
		if tw.tr.Duration > 0 {
			t = math.Min(1, float64(s.now-begin)/float64(tw.tr.Duration))
		}
		if sh, ok := s.shapes[tw.id]; ok && tw.fn != nil {
			tw.fn(sh, tw.tr.Ease(t))
		}
		if t >= 1 {
			tw.dead = true
			finished = append(finished, tw)
		}
	}
	s.tweens = slices.DeleteFunc(s.tweens, func(tw *tween) bool { return tw.dead })

	for _, tw := range finished {
		if tw.done != nil {
			tw.done()
		}
	}
}

// Flush runs every transition to completion, following the ones scheduled by
// completion callbacks.
func (s *Scene) Flush() {
	for range maxFlushRounds {
		if s.Pending() == 0 {
			return
		}
		last := s.now
		for _, tw := range s.tweens {
			if !tw.dead && tw.end() > last {
				last = tw.end()
			}
		}
		s.Advance(last - s.now)
	}
}

// Item is one shape of a snapshot together with the transform of the frame
// it lives in.
type Item struct {
	Shape render.Shape
	World render.Transform
}

// Snapshot returns every shape in draw order: parents before children,
// siblings in insertion order.
func (s *Scene) Snapshot() []Item {
	var out []Item
	var walk func(parent string, world render.Transform, depth int)
	walk = func(parent string, world render.Transform, depth int) {
		if depth > len(s.order) {
			return
		}
		for _, id := range s.Children(parent) {
			sh, _ := s.Shape(id)
			out = append(out, Item{Shape: sh, World: world})
			if sh.Kind == render.KindGroup {
				walk(id, world.Then(sh.Transform), depth+1)
			}
		}
	}
	walk("", render.Identity, 0)
	return out
}

// At returns the topmost circle or arc under p, given in root coordinates.
func (s *Scene) At(p render.Point) (render.Shape, bool) {
	items := s.Snapshot()
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		local := it.World.Invert(p)
		switch it.Shape.Kind {
		case render.KindCircle:
			if math.Hypot(local.X-it.Shape.X, local.Y-it.Shape.Y) <= it.Shape.R {
				return it.Shape, true
			}
		case render.KindArc:
			if inArc(it.Shape.Arc, local) {
				return it.Shape, true
			}
		}
	}
	return render.Shape{}, false
}

func inArc(a render.Arc, p render.Point) bool {
	d := math.Hypot(p.X, p.Y)
	if d < a.Inner || d > a.Outer {
		return false
	}
	start, end := a.Start, a.End
	if end < start {
		start, end = end, start
	}
	if end-start >= angle.Tau {
		return true
	}
	return angle.Normalize(angle.FromPoint(p.X, p.Y)-start) <= end-start
}
