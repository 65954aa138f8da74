package render

import "math"

// View is a zoom target: the center of the visible square and half its side.
type View struct {
	X, Y, W float64
}

const (
	zoomRho  = math.Sqrt2
	zoomRho2 = 2
	zoomRho4 = 4
	zoomEps2 = 1e-12
)

// InterpolateZoom returns a smooth interpolator between two views that pans
// and zooms jointly along the optimal path of van Wijk and Nuij, plus the
// recommended duration in seconds for that path.
func InterpolateZoom(from, to View) (func(t float64) View, float64) {
	ux0, uy0, w0 := from.X, from.Y, from.W
	ux1, uy1, w1 := to.X, to.Y, to.W
	dx, dy := ux1-ux0, uy1-uy0
	d2 := dx*dx + dy*dy

	if d2 < zoomEps2 {
		s := math.Log(w1/w0) / zoomRho
		return func(t float64) View {
			return View{X: ux0 + t*dx, Y: uy0 + t*dy, W: w0 * math.Exp(zoomRho*t*s)}
		}, math.Abs(s)
	}

	d1 := math.Sqrt(d2)
	b0 := (w1*w1 - w0*w0 + zoomRho4*d2) / (2 * w0 * zoomRho2 * d1)
	b1 := (w1*w1 - w0*w0 - zoomRho4*d2) / (2 * w1 * zoomRho2 * d1)
	r0 := math.Log(math.Sqrt(b0*b0+1) - b0)
	r1 := math.Log(math.Sqrt(b1*b1+1) - b1)
	s := (r1 - r0) / zoomRho
	coshr0 := math.Cosh(r0)

	return func(t float64) View {
		st := t * s
		u := w0 / (zoomRho2 * d1) * (coshr0*math.Tanh(zoomRho*st+r0) - math.Sinh(r0))
		return View{X: ux0 + u*dx, Y: uy0 + u*dy, W: w0 * coshr0 / math.Cosh(zoomRho*st+r0)}
	}, s
}
