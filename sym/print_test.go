package sym

import (
	"strings"
	"testing"
)

func TestPrintDefault(t *testing.T) {
	cases := []struct {
		name string
		x    Expr
		want string
	}{
		{"consts", Sum(Pi, E, EulerGamma), "pi + E + EulerGamma"},
		{"neg-inf", NegInfinity, "-oo"},
		{"eq", Relate(Eq, x, NewInt(1)), "Eq(x, 1)"},
		{"ne", Relate(Ne, x, NewInt(1)), "Ne(x, 1)"},
		{"lt", Relate(Lt, Sum(x, NewInt(1)), y), "x + 1 < y"},
		{"nested-relation", Relate(Ge, Relate(Lt, x, y), z), "(x < y) >= z"},
		{"neg-base", pow(Neg(x), a), "(-x)**a"},
		{"pow-pow", &Pow{base: pow(x, a), exp: b}, "(x**a)**b"},
		{"neg-exp", pow(x, Neg(a)), "x**(-a)"},
		{"rat-exp", pow(x, NewRat(2, 3)), "x**(2/3)"},
		{"recip-sum", must(Recip(Sum(x, y))), "1/(x + y)"},
		{"recip-product-pow", must(Quo(NewInt(1), pow(x, NewInt(2)))), "1/x**2"},
		{"call-args", call(Atan2, x, y), "atan2(x, y)"},
		{"sum-in-product", Product(x, Sum(y, z)), "x*(y + z)"},
		{"neg-in-product", Product(call(Sin, x), &Mul{factors: []Expr{NewInt(-1), y}}), "-y*sin(x)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.x.String(); got != c.want {
				t.Errorf("want %s, got %s", c.want, got)
			}
		})
	}
}

func TestPrintOverride(t *testing.T) {
	p := &Printer{
		Override: func(p *Printer, x Expr) (string, bool) {
			switch x := x.(type) {
			case *Symbol:
				return strings.ToUpper(x.Name), true
			case Const:
				if x == Pi {
					return "π", true
				}
			case *Call:
				if x.Func() == Factorial {
					return p.Paren(x.Args()[0], PrecAtom, false) + "!", true
				}
			}
			return "", false
		},
	}
	cases := []struct {
		name string
		x    Expr
		want string
	}{
		{"symbol", x, "X"},
		{"sum", Sum(x, Pi), "X + π"},
		{"nested", call(Sin, Product(NewInt(2), x)), "sin(2*X)"},
		{"fallback", E, "E"},
		{"factorial", call(Factorial, Sum(x, NewInt(1))), "(X + 1)!"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := p.Print(c.x); got != c.want {
				t.Errorf("want %s, got %s", c.want, got)
			}
		})
	}
}

func TestPrecedence(t *testing.T) {
	cases := []struct {
		name string
		x    Expr
		want int
	}{
		{"symbol", x, PrecAtom},
		{"sum", Sum(x, y), PrecAdd},
		{"product", Product(x, y), PrecMul},
		{"neg-product", Neg(x), PrecAdd},
		{"neg-int", NewInt(-1), PrecAdd},
		{"rat", NewRat(1, 2), PrecMul},
		{"pow", pow(x, y), PrecPow},
		{"sqrt", pow(x, NewRat(1, 2)), PrecAtom},
		{"recip", pow(x, NewInt(-1)), PrecMul},
		{"relation", Relate(Lt, x, y), PrecRelation},
		{"call", call(Sin, x), PrecAtom},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Precedence(c.x); got != c.want {
				t.Errorf("want %d, got %d", c.want, got)
			}
		})
	}
}
