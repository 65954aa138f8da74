package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/packnav/pkg/render"
	"github.com/matzehuels/packnav/pkg/render/scene"
)

// Defaults for RenderSVG.
const (
	DefaultWidth    = 900
	DefaultHeight   = 900
	DefaultFontSize = 11
	fontFamily      = "Helvetica, Arial, sans-serif"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	background    string
	fontSize      float64
	labels        bool
}

// WithSize sets the canvas size.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = w, h }
}

// WithBackground fills the canvas before drawing.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithFontSize sets the label size in screen pixels.
func WithFontSize(px float64) SVGOption {
	return func(r *svgRenderer) { r.fontSize = px }
}

// WithoutLabels omits node labels.
func WithoutLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = false }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{width: DefaultWidth, height: DefaultHeight, fontSize: DefaultFontSize, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws a scene snapshot.
func RenderSVG(items []scene.Item, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	var labels []scene.Item
	for _, it := range items {
		switch it.Shape.Kind {
		case render.KindCircle:
			if renderCircle(&buf, it) && r.labels && labelVisible(it.Shape) {
				labels = append(labels, it)
			}
		case render.KindArc:
			renderArc(&buf, it)
		}
	}
	for _, it := range labels {
		r.renderLabel(&buf, it)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func labelVisible(s render.Shape) bool {
	return s.Label != "" && !s.LabelHidden && s.LabelOpacity > 0
}

func renderCircle(buf *bytes.Buffer, it scene.Item) bool {
	s, w := it.Shape, it.World
	k := scaleOf(w)
	r := s.R * k
	if r <= 0 {
		return false
	}
	c := w.Apply(render.Point{X: s.X, Y: s.Y})
	fmt.Fprintf(buf, `  <circle id="%s" class="%s" cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n",
		escapeXML(s.ID), escapeXML(strings.Join(s.Classes, " ")), c.X, c.Y, r, paint(s))
	return true
}

func renderArc(buf *bytes.Buffer, it scene.Item) {
	s, w := it.Shape, it.World
	fmt.Fprintf(buf, `  <path id="%s" class="%s" transform="translate(%.2f,%.2f) scale(%.4f)" d="%s"%s/>`+"\n",
		escapeXML(s.ID), escapeXML(strings.Join(s.Classes, " ")), w.X, w.Y, scaleOf(w), s.Arc.Path(), paint(s))
}

func (r svgRenderer) renderLabel(buf *bytes.Buffer, it scene.Item) {
	s := it.Shape
	c := it.World.Apply(render.Point{X: s.X, Y: s.Y})
	color := s.LabelColor
	if color == "" {
		color = render.Black
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%.1f" fill="%s" opacity="%.2f">%s</text>`+"\n",
		c.X, c.Y, fontFamily, r.fontSize, escapeXML(color), s.LabelOpacity, escapeXML(s.Label))
}

func paint(s render.Shape) string {
	var b strings.Builder
	fill := s.Fill
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(&b, ` fill="%s"`, escapeXML(fill))
	if s.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, escapeXML(s.Stroke))
	}
	return b.String()
}

func scaleOf(t render.Transform) float64 {
	if t.K == 0 {
		return 1
	}
	return t.K
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
