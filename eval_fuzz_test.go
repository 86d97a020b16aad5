//go:build go1.18
// +build go1.18

package jabr_test

import (
	"testing"

	"github.com/zephyrtronium/jabr"
	"github.com/zephyrtronium/jabr/sym"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1×2")
	f.Add("(x+1)^2 // expand // factor")
	f.Add("sin(x)**2 + cos(x)**2 // simplify")
	f.Add("5!! + Γ(1/2)")
	f.Fuzz(func(t *testing.T, s string) {
		env := jabr.NewEnv(jabr.SetVar("x", sym.NewInt(0)))
		jabr.NewSession(env).EvalString(s)
	})
}
