package brush

// Defaults.
const (
	DefaultHandleSize = 0.2
	DefaultTolerance  = 1e-5
	DefaultInner      = 50
	DefaultOuter      = 100

	extentFill = "#8C8C8C"
	handleFill = "#4A4A4A"
)

// Option configures a Selector.
type Option func(*Selector)

// WithHandleSize sets the angular width of each handle in radians.
func WithHandleSize(rad float64) Option {
	return func(s *Selector) { s.handleSize = rad }
}

// WithTolerance sets the slack used by Filter for non-wrapped extents.
func WithTolerance(tol float64) Option {
	return func(s *Selector) { s.tolerance = tol }
}

// WithRadii sets the inner and outer radius of the annulus.
func WithRadii(inner, outer float64) Option {
	return func(s *Selector) { s.inner, s.outer = inner, outer }
}

// WithColors sets the fill of the extent body and of the handles.
func WithColors(extent, handle string) Option {
	return func(s *Selector) { s.extentFill, s.handleFill = extent, handle }
}
