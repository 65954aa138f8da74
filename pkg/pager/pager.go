package pager

import (
	"math"

	"github.com/matzehuels/packnav/pkg/brush"
	"github.com/matzehuels/packnav/pkg/render"
)

// Defaults.
const (
	DefaultWidth  = 10
	DefaultMax    = 100
	DefaultRadius = 50

	backgroundFill = "#E6E6E6"
)

// Pager is a circular paging control.
type Pager struct {
	min, max int
	value    int
	width    int
	gapSize  float64 // degrees
	radius   float64
	margin   Margin
	cssClass string
	callback Callback

	surface render.Surface
	parent  string
	group   string

	selector  *brush.Selector
	scrolling bool
}

// New returns an unattached pager over pages [0, 100].
func New() *Pager {
	return &Pager{
		max:    DefaultMax,
		width:  DefaultWidth,
		radius: DefaultRadius,
	}
}

// Value returns the current page.
func (p *Pager) Value() int { return p.value }

// SetValue clamps v into [min, max] and stores it. It reports whether the
// value changed; setting the current value has no side effects.
func (p *Pager) SetValue(v int) bool {
	v = max(p.min, min(v, p.max))
	if v == p.value {
		return false
	}
	p.value = v
	return true
}

// Min returns the first page.
func (p *Pager) Min() int { return p.min }

// Max returns the last page.
func (p *Pager) Max() int { return p.max }

// SetRange changes the page bounds and clamps the current value into them.
func (p *Pager) SetRange(lo, hi int) {
	p.min, p.max = lo, hi
	p.SetValue(p.value)
}

// Pages returns the number of pages.
func (p *Pager) Pages() int { return p.max - p.min + 1 }

// Width returns the ring thickness.
func (p *Pager) Width() int { return p.width }

// SetWidth sets the ring thickness, truncating to a whole number.
func (p *Pager) SetWidth(w float64) {
	p.width = int(w)
}

// Radius returns the inner radius of the ring.
func (p *Pager) Radius() float64 { return p.radius }

// SetRadius sets the inner radius of the ring.
func (p *Pager) SetRadius(r float64) { p.radius = r }

// GapSize returns the size of the gap at the top in degrees.
func (p *Pager) GapSize() float64 { return p.gapSize }

// SetGapSize sets the size of the gap at the top in degrees.
func (p *Pager) SetGapSize(deg float64) { p.gapSize = deg }

// Margin returns the offset of the pager's center.
func (p *Pager) Margin() Margin { return p.margin }

// SetMargin sets the offset of the pager's center.
func (p *Pager) SetMargin(m Margin) { p.margin = m }

// SetCallback sets the function called with the page a drag selects.
func (p *Pager) SetCallback(fn Callback) { p.callback = fn }

// Scrolling reports whether a drag is in progress.
func (p *Pager) Scrolling() bool { return p.scrolling }

// Selector returns the underlying range selector, nil before the first
// render.
func (p *Pager) Selector() *brush.Selector { return p.selector }

// Group returns the id of the pager's group.
func (p *Pager) Group() string { return p.group }

// Attached reports whether the pager has a surface to draw on.
func (p *Pager) Attached() bool { return p.surface != nil }

// AppendTo binds the pager to a group named id under parent on surface.
// Nothing is drawn until Render.
func (p *Pager) AppendTo(surface render.Surface, parent, id string) {
	p.surface, p.parent, p.group = surface, parent, id
}

// span returns the angular window left after carving the gap.
func (p *Pager) span() (start, end float64) {
	gap := p.gapSize * math.Pi / 180
	return gap / 2, 2*math.Pi - gap/2
}

// Render draws the pager, or updates the selector of an already drawn pager
// to the current value and range. It does nothing before AppendTo and while a
// drag is in progress.
func (p *Pager) Render() {
	if p.surface == nil || p.scrolling {
		return
	}
	start, end := p.span()

	classes := []string{"circularScroller"}
	if p.cssClass != "" {
		classes = append(classes, p.cssClass)
	}
	p.surface.Put(render.Shape{
		ID:        p.group,
		Parent:    p.parent,
		Kind:      render.KindGroup,
		Classes:   classes,
		Transform: render.Transform{X: p.margin.Left, Y: p.margin.Top, K: 1},
	})
	p.surface.Put(render.Shape{
		ID:      p.group + "/background",
		Parent:  p.group,
		Kind:    render.KindArc,
		Classes: []string{"background"},
		Arc:     render.Arc{Inner: p.radius, Outer: p.radius + float64(p.width), Start: start, End: end},
		Fill:    backgroundFill,
	})

	lo, hi := float64(p.min), float64(p.max+1)
	v := float64(p.value)
	if p.selector == nil {
		p.selector = brush.New(
			brush.WithRadii(p.radius, p.radius+float64(p.width)),
			brush.WithTolerance(0.5),
		)
		p.selector.SetAngularSpan(start, end)
		p.selector.SetDomain(lo, hi)
		p.selector.SetExtent(v, v+1)
		p.selector.On(brush.SelectionStarted, func(brush.Event) { p.scrolling = true })
		p.selector.On(brush.SelectionChanging, func(brush.Event) { p.brushed() })
		p.selector.On(brush.SelectionEnded, func(brush.Event) {
			p.scrolling = false
			p.Render()
		})
		p.selector.Attach(p.surface, p.group, p.group+"/brush")
		p.selector.Redraw()
		return
	}
	p.selector.SetDomain(lo, hi)
	p.selector.SetExtent(v, v+1)
	p.selector.Redraw()
}

// brushed reports the first page inside the selection.
func (p *Pager) brushed() {
	pages := make([]int, 0, p.Pages())
	for i := p.min; i <= p.max; i++ {
		pages = append(pages, i)
	}
	hit := brush.Filter(p.selector, pages, func(v int) float64 { return float64(v) })
	if len(hit) == 0 || p.callback == nil {
		return
	}
	p.callback(p, hit[0])
}

// PointerDown starts a drag if the surface pointer is over the selector.
func (p *Pager) PointerDown() bool {
	if p.selector == nil || p.surface == nil {
		return false
	}
	return p.selector.PointerDown(p.surface.Pointer(p.selector.Group()))
}

// PointerMove forwards the surface pointer to a drag in progress.
func (p *Pager) PointerMove() bool {
	if p.selector == nil || p.surface == nil {
		return false
	}
	return p.selector.PointerMove(p.surface.Pointer(p.selector.Group()))
}

// PointerUp ends a drag in progress.
func (p *Pager) PointerUp() bool {
	if p.selector == nil {
		return false
	}
	return p.selector.PointerUp()
}

// Dispose removes everything the pager drew. The pager can be rendered
// again afterwards.
func (p *Pager) Dispose() {
	if p.surface != nil && p.group != "" {
		p.surface.Remove(p.group)
	}
	p.selector = nil
	p.scrolling = false
}
