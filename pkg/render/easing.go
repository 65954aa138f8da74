package render

import "math"

// Easing maps linear progress in [0, 1] onto eased progress.
type Easing func(t float64) float64

// EaseLinear is the identity easing.
func EaseLinear(t float64) float64 { return t }

// EaseCubicInOut accelerates until the midpoint and decelerates afterwards.
func EaseCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// EaseSinInOut is a gentler alternative to EaseCubicInOut.
func EaseSinInOut(t float64) float64 {
	return (1 - math.Cos(math.Pi*t)) / 2
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
