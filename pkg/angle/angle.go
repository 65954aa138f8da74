package angle

import "math"

// Tau is one full turn in radians.
const Tau = 2 * math.Pi

// Normalize wraps a into [0, 2π).
func Normalize(a float64) float64 {
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	if a >= Tau {
		a -= Tau
	}
	return a
}

// Renormalize folds a into [-2π, 2π], preserving its sign where possible.
// Committed extents go through Renormalize at the end of a drag; transient
// angles during the drag are left alone.
func Renormalize(a float64) float64 {
	for a > Tau {
		a -= Tau
	}
	for a < -Tau {
		a += Tau
	}
	return a
}

// RenormalizeExtent folds the extent [start, end] into [-2π, 2π]. When
// start <= end both ends move by the same multiple of 2π, so the extent keeps
// its order and its span. A wrapped extent (start > end) or one wider than a
// full turn has each end folded on its own.
func RenormalizeExtent(start, end float64) (float64, float64) {
	if start <= end && end-start <= Tau {
		for end > Tau {
			start, end = start-Tau, end-Tau
		}
		for start < -Tau {
			start, end = start+Tau, end+Tau
		}
	}
	return Renormalize(start), Renormalize(end)
}

// ClampForward picks the representative of candidate that lies in
// [lower, upper], trying candidate, candidate+2π and candidate-2π in that
// order, and clamps the result when no representative fits. It is used for
// the end handle, whose window is [start, start+2π].
func ClampForward(candidate, lower, upper float64) float64 {
	c := candidate
	switch {
	case c < lower:
		c += Tau
	case c > upper:
		c -= Tau
	}
	return math.Min(math.Max(c, lower), upper)
}

// ClampBackward mirrors ClampForward for the start handle, whose window is
// [end-2π, end]. The upper bound is tested first.
func ClampBackward(candidate, lower, upper float64) float64 {
	c := candidate
	switch {
	case c > upper:
		c -= Tau
	case c < lower:
		c += Tau
	}
	return math.Max(math.Min(c, upper), lower)
}

// Domain is the closed interval [Min, Max] a circular interval lives in.
type Domain struct {
	Min, Max float64
}

// Contains reports whether v lies on the arc from start to end, walking in
// the increasing direction. When start <= end the test is inclusive within
// tol. A wrapped interval (start > end) is tested as the union of
// [start, d.Max] and [d.Min, end].
func Contains(v, start, end, tol float64, d Domain) bool {
	if start <= end {
		return v+tol >= start && v-tol <= end
	}
	return d.Head(v, start) || d.Tail(v, end)
}

// Head reports whether v is on the first half of a wrapped interval that
// starts at start, i.e. in [start, d.Max].
func (d Domain) Head(v, start float64) bool {
	return v >= start && v <= d.Max
}

// Tail reports whether v is on the second half of a wrapped interval that
// ends at end, i.e. in [d.Min, end].
func (d Domain) Tail(v, end float64) bool {
	return v <= end && v >= d.Min
}

// FromPoint returns the arc angle of the point (x, y) relative to the origin,
// in [0, 2π). Screen coordinates are assumed: y grows downwards and zero is
// at twelve o'clock.
func FromPoint(x, y float64) float64 {
	return Normalize(math.Atan2(x, -y))
}

// Delta returns the signed pointer rotation between origin and current, both
// given in screen coordinates relative to the same center.
func Delta(ox, oy, cx, cy float64) float64 {
	return math.Atan2(cy, cx) - math.Atan2(oy, ox)
}
