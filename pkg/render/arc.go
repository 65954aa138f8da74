package render

import (
	"fmt"
	"math"
	"strings"
)

// ArcPoint returns the point at angle a on a circle of radius r centered at
// the origin.
func ArcPoint(r, a float64) Point {
	return Point{X: r * math.Sin(a), Y: -r * math.Cos(a)}
}

// Path returns the SVG path data of the annular sector. Sectors spanning a
// full turn or more are drawn as a complete ring.
func (a Arc) Path() string {
	start, end := a.Start, a.End
	if end < start {
		start, end = end, start
	}
	span := end - start
	if span <= 0 || a.Outer <= 0 {
		return "M0,0Z"
	}

	var b strings.Builder
	if span >= 2*math.Pi-1e-6 {
		ring(&b, a.Outer, start)
		if a.Inner > 0 {
			ring(&b, a.Inner, start)
		}
		return b.String()
	}

	large := 0
	if span > math.Pi {
		large = 1
	}
	p0 := ArcPoint(a.Outer, start)
	p1 := ArcPoint(a.Outer, end)
	fmt.Fprintf(&b, "M%.3f,%.3fA%.3f,%.3f 0 %d,1 %.3f,%.3f", p0.X, p0.Y, a.Outer, a.Outer, large, p1.X, p1.Y)
	if a.Inner > 0 {
		q1 := ArcPoint(a.Inner, end)
		q0 := ArcPoint(a.Inner, start)
		fmt.Fprintf(&b, "L%.3f,%.3fA%.3f,%.3f 0 %d,0 %.3f,%.3f", q1.X, q1.Y, a.Inner, a.Inner, large, q0.X, q0.Y)
	} else {
		b.WriteString("L0,0")
	}
	b.WriteString("Z")
	return b.String()
}

func ring(b *strings.Builder, r, start float64) {
	p := ArcPoint(r, start)
	q := ArcPoint(r, start+math.Pi)
	fmt.Fprintf(b, "M%.3f,%.3fA%.3f,%.3f 0 1,1 %.3f,%.3fA%.3f,%.3f 0 1,1 %.3f,%.3fZ",
		p.X, p.Y, r, r, q.X, q.Y, r, r, p.X, p.Y)
}
