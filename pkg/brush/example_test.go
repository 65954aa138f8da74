package brush_test

import (
	"fmt"

	"github.com/matzehuels/packnav/pkg/brush"
)

func ExampleFilter() {
	sel := brush.New()
	sel.SetAngularSpan(0, 10)
	sel.SetDomain(0, 10)

	// A selection that wraps through the end of the domain
	sel.SetExtent(8, 2)
	values := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	fmt.Println(brush.Filter(sel, values, func(v int) float64 { return float64(v) }))
	// Output:
	// [8 9 10 0 1 2]
}

func ExampleSelector_Extent() {
	sel := brush.New()
	sel.SetAngularSpan(0, 6)
	sel.SetDomain(0, 3)
	sel.SetExtent(1, 2)
	a := sel.Angles()
	lo, hi := sel.Extent()
	fmt.Printf("angles %.1f..%.1f values %.1f..%.1f\n", a.Start, a.End, lo, hi)
	// Output:
	// angles 2.0..4.0 values 1.0..2.0
}
