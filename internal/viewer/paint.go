package viewer

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/packnav/pkg/angle"
	"github.com/matzehuels/packnav/pkg/render"
	"github.com/matzehuels/packnav/pkg/render/scene"
)

const (
	// arcStep is the largest angle one straight segment of an arc may span.
	arcStep = math.Pi / 48
	// labelBackdrop is the opacity of the box behind a fully shown label.
	labelBackdrop = 0.7
)

type primitiveKind int

const (
	primDisc primitiveKind = iota
	primRing
	primSegment
	primLabel
)

// primitive is one draw call in window coordinates.
type primitive struct {
	kind   primitiveKind
	x, y   float64
	x2, y2 float64 // segment end
	r      float64 // disc and ring radius
	width  float64 // ring and segment stroke
	color  color.Color
	text   string
}

// paint turns a scene snapshot into draw calls: circles and arcs in draw
// order, then the visible labels on top.
func paint(items []scene.Item) []primitive {
	var out, labels []primitive
	for _, it := range items {
		s, w := it.Shape, it.World
		switch s.Kind {
		case render.KindCircle:
			k := scale(w)
			r := s.R * k
			if r <= 0 {
				continue
			}
			c := w.Apply(render.Point{X: s.X, Y: s.Y})
			out = append(out, primitive{kind: primDisc, x: c.X, y: c.Y, r: r, color: parseColor(s.Fill, render.White)})
			if s.Stroke != "" {
				out = append(out, primitive{kind: primRing, x: c.X, y: c.Y, r: r, width: 1, color: parseColor(s.Stroke, render.Black)})
			}
			if s.Label != "" && !s.LabelHidden && s.LabelOpacity > 0 {
				// Labels are drawn light on a dark backdrop that fades with
				// the label.
				labels = append(labels, primitive{kind: primLabel, x: c.X, y: c.Y, text: s.Label,
					color: withAlpha(parseColor(render.Black, render.Black), labelBackdrop*s.LabelOpacity)})
			}
		case render.KindArc:
			out = append(out, arcSegments(s, w)...)
		}
	}
	return append(out, labels...)
}

// arcSegments approximates an annular sector with thick straight strokes
// along its middle radius.
func arcSegments(s render.Shape, w render.Transform) []primitive {
	a := s.Arc
	k := scale(w)
	mid := (a.Inner + a.Outer) / 2 * k
	width := (a.Outer - a.Inner) * k
	if mid <= 0 || width <= 0 {
		return nil
	}
	start, end := a.Start, a.End
	if end < start {
		start, end = end, start
	}
	span := math.Min(end-start, angle.Tau)
	n := max(int(math.Ceil(span/arcStep-1e-9)), 1)
	fill := parseColor(s.Fill, render.Black)

	out := make([]primitive, 0, n)
	prev := render.ArcPoint(mid, start)
	for i := 1; i <= n; i++ {
		next := render.ArcPoint(mid, start+span*float64(i)/float64(n))
		out = append(out, primitive{
			kind: primSegment,
			x:    w.X + prev.X, y: w.Y + prev.Y,
			x2: w.X + next.X, y2: w.Y + next.Y,
			width: width,
			color: fill,
		})
		prev = next
	}
	return out
}

func scale(w render.Transform) float64 {
	if w.K == 0 {
		return 1
	}
	return w.K
}

// parseColor reads a #RRGGBB color, falling back to def.
func parseColor(hex, def string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(def)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func withAlpha(c color.Color, opacity float64) color.Color {
	r, g, b, _ := c.RGBA()
	a := math.Max(0, math.Min(1, opacity))
	// Premultiplied, as color.RGBA expects.
	return color.RGBA{
		R: uint8(float64(r>>8) * a),
		G: uint8(float64(g>>8) * a),
		B: uint8(float64(b>>8) * a),
		A: uint8(255 * a),
	}
}
