package navigator

import (
	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/render"
)

// viewOf returns the view that frames nd, in zoomed-group coordinates.
func (n *Navigator) viewOf(nd *pack.Node) render.View {
	var off render.Point
	if lv := n.owner[nd.ID]; lv != nil {
		off = lv.offset
	}
	return render.View{X: nd.X + off.X, Y: nd.Y + off.Y, W: nd.R}
}

// transformFor maps view v onto the square of side 2*radius.
func (n *Navigator) transformFor(v render.View) render.Transform {
	k := n.radius / v.W
	return render.Transform{X: -(v.X - v.W) * k, Y: -(v.Y - v.W) * k, K: k}
}

// zoomTo focuses nd and starts the zoom transition towards it.
func (n *Navigator) zoomTo(nd *pack.Node) {
	n.state.Focus = nd
	n.animateTo(n.viewOf(nd))
}

// animateTo moves the zoom from wherever it currently is to v.
func (n *Navigator) animateTo(v render.View) {
	n.state.View = v
	if n.surface == nil || v.W <= 0 {
		return
	}
	if n.current.W <= 0 {
		n.jumpTo(v)
		return
	}
	interp, _ := render.InterpolateZoom(n.current, v)
	n.surface.Animate(ZoomGroup, render.Transition{Name: "zoom", Duration: ZoomDuration},
		func(s *render.Shape, t float64) {
			if t >= 1 {
				n.current = v
			} else {
				n.current = interp(t)
			}
			s.Transform = n.transformFor(n.current)
		}, nil)
}

// jumpTo sets the zoom to v without a transition.
func (n *Navigator) jumpTo(v render.View) {
	if n.surface == nil || v.W <= 0 {
		return
	}
	sh, ok := n.surface.Shape(ZoomGroup)
	if !ok {
		return
	}
	n.current = v
	sh.Transform = n.transformFor(v)
	n.surface.Put(sh)
}

// Up returns the node one step above the focus, crossing from a nested
// level's root to the node it was expanded from. It returns nil at the top.
func (n *Navigator) Up() *pack.Node {
	focus := n.state.Focus
	if focus == nil || focus.Parent == nil {
		return nil
	}
	p := focus.Parent
	if p.Parent == nil {
		if expanded := n.Link(p); expanded != nil {
			return expanded
		}
	}
	return p
}
