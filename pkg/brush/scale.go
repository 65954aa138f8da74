package brush

// Scale maps the selector's angular span [A0, A1] onto a value domain
// [V0, V1]. Angles below A0 are read as the continuation of the span past the
// seam, mirrored over [-A1, A0].
//
// A scale with equal bounds on either side divides by zero; the result is an
// infinity or NaN and is propagated to the caller.
type Scale struct {
	A0, A1 float64
	V0, V1 float64
}

// Identity returns a scale whose value domain equals its angular span.
func Identity(a0, a1 float64) Scale {
	return Scale{A0: a0, A1: a1, V0: a0, V1: a1}
}

// Angle maps a value to an angle.
func (s Scale) Angle(v float64) float64 {
	return s.A0 + (v-s.V0)*(s.A1-s.A0)/(s.V1-s.V0)
}

// Value maps an angle to a value.
func (s Scale) Value(a float64) float64 {
	if a < s.A0 {
		return s.V0 + (a+s.A1)*(s.V1-s.V0)/(s.A0+s.A1)
	}
	return s.V0 + (a-s.A0)*(s.V1-s.V0)/(s.A1-s.A0)
}
