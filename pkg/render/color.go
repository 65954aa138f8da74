package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Default colors.
const (
	White = "#FFFFFF"
	Black = "#000000"
)

const (
	// d3's brighter/darker step.
	colorStep = 0.7
	// Perceived brightness below which a color counts as dark.
	darkThreshold = 125
)

func brightness(c colorful.Color) float64 {
	r, g, b := c.RGB255()
	return float64(r)*0.299 + float64(g)*0.587 + float64(b)*0.114
}

func parse(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func scale(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()
}

// Contrast returns a brighter variant of a dark color and a darker variant of
// a light one. Unparseable input is treated as black.
func Contrast(hex string) string {
	c := parse(hex)
	if brightness(c) < darkThreshold {
		return scale(c, 1/colorStep).Hex()
	}
	return scale(c, colorStep).Hex()
}

// BlackOrWhite returns whichever of black or white reads better on hex.
func BlackOrWhite(hex string) string {
	if brightness(parse(hex)) < darkThreshold {
		return White
	}
	return Black
}
