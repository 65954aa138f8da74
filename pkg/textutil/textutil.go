// Package textutil holds small string and sequence helpers shared by the
// renderers and controls.
package textutil

import (
	"fmt"
	"regexp"
	"strconv"
)

var placeholderRe = regexp.MustCompile(`\{(\d+)\}`)

// FormatTemplate replaces positional placeholders such as {0} and {1} with
// the matching argument formatted with %v. Placeholders without a matching
// argument are left untouched.
//
//	FormatTemplate("translate({0},{1})", 10, 20) // "translate(10,20)"
func FormatTemplate(tmpl string, args ...any) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		i, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || i >= len(args) {
			return m
		}
		return fmt.Sprint(args[i])
	})
}

// SequencesEqual reports whether a and b have the same length and equal
// elements in the same order.
func SequencesEqual[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
