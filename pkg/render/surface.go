package render

import (
	"slices"
	"time"
)

// Point is a position in some coordinate frame.
type Point struct {
	X, Y float64
}

// Transform translates by (X, Y) and then scales by K.
type Transform struct {
	X, Y, K float64
}

// Identity is the transform that changes nothing.
var Identity = Transform{K: 1}

// Apply maps p from the transformed frame into the parent frame.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.k() + t.X, Y: p.Y*t.k() + t.Y}
}

// Invert maps p from the parent frame into the transformed frame.
func (t Transform) Invert(p Point) Point {
	return Point{X: (p.X - t.X) / t.k(), Y: (p.Y - t.Y) / t.k()}
}

// Then composes t (outer) with inner, returning the transform that maps the
// inner frame straight into t's parent frame.
func (t Transform) Then(inner Transform) Transform {
	return Transform{
		X: t.X + inner.X*t.k(),
		Y: t.Y + inner.Y*t.k(),
		K: t.k() * inner.k(),
	}
}

func (t Transform) k() float64 {
	if t.K == 0 {
		return 1
	}
	return t.K
}

// Kind identifies the geometry of a shape.
type Kind int

const (
	KindGroup Kind = iota
	KindCircle
	KindArc
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	default:
		return "unknown"
	}
}

// Arc is an annular sector. Angles are radians clockwise from twelve o'clock.
type Arc struct {
	Inner, Outer float64
	Start, End   float64
}

// Shape is one element on a surface. Coordinates are in the frame of the
// parent group.
type Shape struct {
	ID      string
	Parent  string // "" is the surface root
	Kind    Kind
	Classes []string

	Transform Transform // groups

	X, Y, R float64 // circles
	Arc     Arc     // arcs

	Fill   string
	Stroke string

	Label        string
	LabelColor   string
	LabelOpacity float64
	LabelHidden  bool
}

// HasClass reports whether c is one of the shape's classes.
func (s Shape) HasClass(c string) bool {
	return slices.Contains(s.Classes, c)
}

// SetClass adds or removes c.
func (s *Shape) SetClass(c string, on bool) {
	i := slices.Index(s.Classes, c)
	switch {
	case on && i < 0:
		s.Classes = append(s.Classes, c)
	case !on && i >= 0:
		s.Classes = slices.Delete(slices.Clone(s.Classes), i, i+1)
	}
}

// TweenFunc updates s for eased progress t in [0, 1].
type TweenFunc func(s *Shape, t float64)

// Transition describes the timing of an animation. Starting a transition
// with the same Name on the same shape interrupts the running one; the
// interrupted transition's completion callback is not called.
type Transition struct {
	Name     string
	Delay    time.Duration
	Duration time.Duration
	Ease     Easing
}

// Surface is a retained drawing target.
type Surface interface {
	// Shape returns a copy of the shape with the given id.
	Shape(id string) (Shape, bool)

	// Put creates s or replaces the stored shape with the same ID.
	// Running transitions on the shape keep running.
	Put(s Shape)

	// Animate calls fn on every frame of tr. done, if not nil, runs after
	// the final frame. Animating a missing shape is a no-op.
	Animate(id string, tr Transition, fn TweenFunc, done func())

	// Remove deletes the shape, its descendants and their transitions.
	Remove(id string)

	// Children lists the ids of the direct children of parent in
	// insertion order.
	Children(parent string) []string

	// Pointer returns the current pointer position in the frame of the
	// given group ("" for the surface root).
	Pointer(group string) Point
}
