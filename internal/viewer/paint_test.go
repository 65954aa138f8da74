package viewer

import (
	"image/color"
	"math"
	"testing"

	"github.com/matzehuels/packnav/pkg/angle"
	"github.com/matzehuels/packnav/pkg/render"
	"github.com/matzehuels/packnav/pkg/render/scene"
)

func TestPaintOrdersLabelsLast(t *testing.T) {
	items := []scene.Item{
		{Shape: render.Shape{Kind: render.KindGroup}, World: render.Identity},
		{
			Shape: render.Shape{Kind: render.KindCircle, X: 10, Y: 20, R: 5, Fill: "#ff0000", Label: "a", LabelOpacity: 1},
			World: render.Transform{X: 100, Y: 100, K: 2},
		},
		{Shape: render.Shape{Kind: render.KindCircle, X: 0, Y: 0, R: 3, Label: "hidden", LabelOpacity: 1, LabelHidden: true}, World: render.Identity},
		{Shape: render.Shape{Kind: render.KindCircle, R: 0, Label: "empty", LabelOpacity: 1}, World: render.Identity},
	}

	got := paint(items)
	if len(got) != 3 {
		t.Fatalf("paint() = %d primitives, want 3", len(got))
	}
	disc := got[0]
	if disc.kind != primDisc || disc.x != 120 || disc.y != 140 || disc.r != 10 {
		t.Errorf("disc = %+v, want (120,140) r10", disc)
	}
	if disc.color != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("disc color = %v", disc.color)
	}
	if got[1].kind != primDisc || got[1].color != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("unfilled circle should default to white, got %+v", got[1])
	}
	if last := got[2]; last.kind != primLabel || last.text != "a" {
		t.Errorf("last primitive = %+v, want label a", last)
	}
}

func TestPaintStroke(t *testing.T) {
	items := []scene.Item{{Shape: render.Shape{Kind: render.KindCircle, R: 4, Stroke: "#000000"}, World: render.Identity}}
	got := paint(items)
	if len(got) != 2 || got[1].kind != primRing {
		t.Fatalf("paint() = %+v, want disc and ring", got)
	}
}

func TestArcSegments(t *testing.T) {
	tests := []struct {
		name  string
		arc   render.Arc
		count int
	}{
		{"full turn", render.Arc{Inner: 8, Outer: 12, Start: 0, End: angle.Tau}, 96},
		{"quarter", render.Arc{Inner: 8, Outer: 12, Start: 0, End: math.Pi / 2}, 24},
		{"reversed", render.Arc{Inner: 8, Outer: 12, Start: math.Pi / 2, End: 0}, 24},
		{"tiny", render.Arc{Inner: 8, Outer: 12, Start: 0, End: 0.001}, 1},
		{"collapsed", render.Arc{Inner: 0, Outer: 0, End: 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := arcSegments(render.Shape{Kind: render.KindArc, Arc: tt.arc}, render.Identity)
			if len(segs) != tt.count {
				t.Fatalf("got %d segments, want %d", len(segs), tt.count)
			}
			if tt.count == 0 {
				return
			}
			first := segs[0]
			if first.width != 4 {
				t.Errorf("width = %v, want 4", first.width)
			}
			if r := math.Hypot(first.x, first.y); math.Abs(r-10) > 1e-9 {
				t.Errorf("segment starts at radius %v, want 10", r)
			}
		})
	}
}

func TestArcSegmentsFollowTransform(t *testing.T) {
	arc := render.Arc{Inner: 1, Outer: 3, Start: 0, End: math.Pi}
	segs := arcSegments(render.Shape{Kind: render.KindArc, Arc: arc}, render.Transform{X: 50, Y: 60, K: 10})
	first := segs[0]
	// Twelve o'clock at radius 2*10 around (50, 60).
	if math.Abs(first.x-50) > 1e-9 || math.Abs(first.y-40) > 1e-9 {
		t.Errorf("first point = (%v, %v), want (50, 40)", first.x, first.y)
	}
	if first.width != 20 {
		t.Errorf("width = %v, want 20", first.width)
	}
}

func TestParseColorFallback(t *testing.T) {
	if got := parseColor("not a color", render.Black); got != (color.RGBA{A: 0xff}) {
		t.Errorf("fallback = %v, want black", got)
	}
	half := withAlpha(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, 0.5)
	if c := half.(color.RGBA); c.A != 127 || c.R != 127 {
		t.Errorf("withAlpha(white, .5) = %v", c)
	}
}
