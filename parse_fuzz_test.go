//go:build go1.18
// +build go1.18

package jabr_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/jabr"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1×2")
	f.Add("y := 2x^2! - f(1) //N(20)")
	f.Add("a <= [b]{c}")
	f.Fuzz(func(t *testing.T, s string) {
		jabr.Parse(strings.NewReader(s))
	})
}
