package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/render"
	"github.com/matzehuels/packnav/pkg/render/scene"
)

func testScene() *scene.Scene {
	s := scene.New()
	s.Put(render.Shape{ID: "g", Kind: render.KindGroup, Transform: render.Transform{X: 10, Y: 20, K: 2}})
	s.Put(render.Shape{ID: "g/a", Parent: "g", Kind: render.KindCircle, X: 5, Y: 5, R: 3,
		Fill: "#FFFFFF", Stroke: "#000000", Classes: []string{"node", "depth-1"},
		Label: "a & b", LabelOpacity: 1})
	s.Put(render.Shape{ID: "g/hidden", Parent: "g", Kind: render.KindCircle, X: 1, Y: 1, R: 1,
		Label: "secret", LabelHidden: true, LabelOpacity: 1})
	s.Put(render.Shape{ID: "g/gone", Parent: "g", Kind: render.KindCircle, R: 0, Label: "gone", LabelOpacity: 1})
	s.Put(render.Shape{ID: "ring", Kind: render.KindArc, Fill: "#E6E6E6",
		Arc: render.Arc{Inner: 10, Outer: 20, Start: 0, End: 1}})
	return s
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene().Snapshot(), WithSize(200, 100), WithBackground("#FAFAFA")))

	for _, want := range []string{
		`viewBox="0 0 200.0 100.0"`,
		`<rect width="100%" height="100%" fill="#FAFAFA"/>`,
		`<circle id="g/a" class="node depth-1" cx="20.00" cy="30.00" r="6.00" fill="#FFFFFF" stroke="#000000"/>`,
		`>a &amp; b</text>`,
		`<path id="ring"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q\n%s", want, svg)
		}
	}
	for _, unwanted := range []string{"secret", `id="g/gone"`, ">gone<"} {
		if strings.Contains(svg, unwanted) {
			t.Errorf("svg contains %q", unwanted)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}
}

func TestRenderSVGWithoutLabels(t *testing.T) {
	svg := string(RenderSVG(testScene().Snapshot(), WithoutLabels()))
	if strings.Contains(svg, "<text") {
		t.Error("labels drawn with WithoutLabels")
	}
	if !strings.Contains(svg, `width="900"`) {
		t.Error("default size not applied")
	}
}

func TestTreeDOT(t *testing.T) {
	root := &pack.Node{Name: "root", Children: []*pack.Node{
		{Name: "b", URL: "https://example.com/b.json"},
		{Name: "+", Type: "static,createNewNode"},
	}}
	pack.Prepare(root)

	dot := TreeDOT(root, DOTOptions{})
	for _, want := range []string{
		`"0" [label="root"];`,
		`"0/0" [label="b", peripheries=2];`,
		`"0/1" [label="+", style="rounded,filled,dashed"`,
		`"0" -> "0/0";`,
		`"0" -> "0/1";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot missing %q\n%s", want, dot)
		}
	}

	detailed := TreeDOT(root, DOTOptions{Detailed: true})
	if !strings.Contains(detailed, `url: https://example.com/b.json`) {
		t.Errorf("detailed label missing url\n%s", detailed)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if plain := []byte("<svg></svg>"); string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("svg without viewBox changed")
	}
}
