package sym

import (
	"errors"
	"testing"
)

func TestTransforms(t *testing.T) {
	one := NewInt(1)
	cases := []struct {
		name string
		f    func(Expr) (Expr, error)
		x    Expr
		want string
	}{
		{"expand-square", Expand, pow(Sum(x, one), NewInt(2)), "x**2 + 2*x + 1"},
		{"expand-product", Expand, Product(x, Sum(y, one)), "x*y + x"},
		{"expand-binomials", Expand, Product(Sum(x, one), Sum(x, NewInt(-1))), "x**2 - 1"},
		{"expand-nested", Expand, call(Sin, pow(Sum(x, one), NewInt(2))), "sin(x**2 + 2*x + 1)"},
		{"expand-exp-sum", Expand, pow(NewInt(2), Sum(x, one)), "2*2**x"},
		{"expand-unchanged", Expand, Sum(x, y), "x + y"},
		{"factor-square", Factor, Sum(pow(x, NewInt(2)), Product(NewInt(2), x), one), "(x + 1)**2"},
		{"factor-difference", Factor, Sum(pow(x, NewInt(2)), NewInt(-1)), "(x + 1)*(x - 1)"},
		{"factor-common", Factor, Sum(Product(NewInt(2), x), NewInt(4)), "2*(x + 2)"},
		{"cancel", Cancel, must(Quo(Sum(pow(x, NewInt(2)), NewInt(-1)), Sum(x, NewInt(-1)))), "x + 1"},
		{"together", Together, Sum(must(Recip(x)), must(Recip(y))), "(x + y)/(x*y)"},
		{"together-unchanged", Together, Sum(x, y), "x + y"},
		{"apart", Apart, must(Recip(Sum(pow(x, NewInt(2)), NewInt(-1)))), "-1/(2*(x + 1)) + 1/(2*(x - 1))"},
		{"trigsimp", Trigsimp, Sum(pow(call(Sin, x), NewInt(2)), pow(call(Cos, x), NewInt(2))), "1"},
		{"expand-log", ExpandLog, call(Log, Product(x, y)), "log(x) + log(y)"},
		{"expand-log-power", ExpandLog, call(Log, pow(x, NewInt(3))), "3*log(x)"},
		{"logcombine", Logcombine, Sum(call(Log, x), call(Log, y)), "log(x*y)"},
		{"powsimp", Powsimp, Product(pow(x, a), pow(y, a)), "(x*y)**a"},
		{"expand-power-base", ExpandPowerBase, pow(Product(x, y), a), "x**a*y**a"},
		{"expand-power-exp", ExpandPowerExp, pow(x, Sum(a, b)), "x**a*x**b"},
		{"expand-trig", ExpandTrig, call(Sin, Sum(x, y)), "cos(x)*sin(y) + cos(y)*sin(x)"},
		{"simplify-trig", Simplify, Sum(pow(call(Sin, x), NewInt(2)), pow(call(Cos, x), NewInt(2))), "1"},
		{"simplify-cancel", Simplify, must(Quo(Sum(pow(x, NewInt(2)), NewInt(-1)), Sum(x, NewInt(-1)))), "x + 1"},
		{"simplify-number", Simplify, NewInt(4), "4"},
		{"simplify-relation", Simplify, Relate(Eq, Sum(pow(call(Sin, x), NewInt(2)), pow(call(Cos, x), NewInt(2))), y), "Eq(1, y)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := c.f(c.x)
			if err != nil {
				t.Fatal(err)
			}
			if got := r.String(); got != c.want {
				t.Errorf("want %s, got %s", c.want, got)
			}
		})
	}
}

func TestExpandSumExponent(t *testing.T) {
	r, err := Expand(pow(x, Sum(a, b)))
	if err != nil {
		t.Fatal(err)
	}
	if got := r.String(); got != "x**a*x**b" {
		t.Errorf("want x**a*x**b, got %s", got)
	}
	r, err = Expand(pow(Sum(x, NewInt(1)), Sum(a, NewInt(2))))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*Add); !ok {
		t.Errorf("(x + 1)**(a + 2) expanded to %v", r)
	}
}

func TestExpandFactorRoundTrip(t *testing.T) {
	cases := []Expr{
		pow(Sum(x, NewInt(1)), NewInt(2)),
		pow(Sum(x, NewInt(-2)), NewInt(3)),
		Product(Sum(x, NewInt(1)), Sum(x, NewInt(3))),
	}
	for _, c := range cases {
		t.Run(c.String(), func(t *testing.T) {
			e, err := Expand(c)
			if err != nil {
				t.Fatal(err)
			}
			f, err := Factor(e)
			if err != nil {
				t.Fatal(err)
			}
			e2, err := Expand(f)
			if err != nil {
				t.Fatal(err)
			}
			if !e.Equal(e2) {
				t.Errorf("expand(factor(%v)) = %v", e, e2)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	cases := []struct {
		name string
		x    Expr
		v    *Symbol
		n    int
		want string
	}{
		{"const", NewInt(5), x, 1, "0"},
		{"self", x, x, 1, "1"},
		{"other", y, x, 1, "0"},
		{"cube", pow(x, NewInt(3)), x, 1, "3*x**2"},
		{"cube-twice", pow(x, NewInt(3)), x, 2, "6*x"},
		{"cube-thrice", pow(x, NewInt(3)), x, 4, "0"},
		{"product", Product(x, y), x, 1, "y"},
		{"sum", Sum(pow(x, NewInt(2)), x, NewInt(1)), x, 1, "2*x + 1"},
		{"sin", call(Sin, x), x, 1, "cos(x)"},
		{"cos", call(Cos, x), x, 1, "-sin(x)"},
		{"log", call(Log, x), x, 1, "1/x"},
		{"exp-chain", pow(E, Product(NewInt(2), x)), x, 1, "2*exp(2*x)"},
		{"sin-chain", call(Sin, pow(x, NewInt(2))), x, 1, "2*x*cos(x**2)"},
		{"free", call(Sin, y), x, 1, "0"},
		{"zero-order", call(Sin, x), x, 0, "sin(x)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := DiffN(c.x, c.v, c.n)
			if err != nil {
				t.Fatal(err)
			}
			if got := r.String(); got != c.want {
				t.Errorf("want %s, got %s", c.want, got)
			}
		})
	}
}

func TestDiffErrors(t *testing.T) {
	cases := []struct {
		name string
		x    Expr
	}{
		{"relation", Relate(Lt, x, y)},
		{"gcd", call(Gcd, x, y)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := Diff(c.x, x)
			var te *TypeError
			if !errors.As(err, &te) {
				t.Fatalf("want TypeError, got %v, %v", r, err)
			}
			if te.Func != "diff" {
				t.Errorf("wrong func %q", te.Func)
			}
		})
	}
}

func TestSubs(t *testing.T) {
	cases := []struct {
		name      string
		x         Expr
		old, repl Expr
		want      string
	}{
		{"number", Sum(pow(x, NewInt(2)), y), x, NewInt(2), "y + 4"},
		{"symbol", Sum(x, y), x, y, "2*y"},
		{"call", call(Sin, x), x, Pi, "0"},
		{"subexpr", Sum(call(Sin, x), NewInt(1)), call(Sin, x), z, "z + 1"},
		{"absent", y, x, NewInt(1), "y"},
		{"relation", Relate(Le, x, y), y, NewInt(3), "x <= 3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := Subs(c.x, c.old, c.repl)
			if err != nil {
				t.Fatal(err)
			}
			if got := r.String(); got != c.want {
				t.Errorf("want %s, got %s", c.want, got)
			}
		})
	}
}

func TestSubsDivZero(t *testing.T) {
	_, err := Subs(must(Recip(x)), x, NewInt(0))
	var de *DomainError
	if !errors.As(err, &de) {
		t.Errorf("want division by zero, got %v", err)
	}
}

func TestN(t *testing.T) {
	cases := []struct {
		name   string
		x      Expr
		digits uint
		want   string
	}{
		{"pi", Pi, 5, "3.1416"},
		{"e", E, 10, "2.718281828"},
		{"euler-gamma", EulerGamma, 8, "0.57721566"},
		{"third", NewRat(1, 3), 5, "0.33333"},
		{"sqrt", pow(NewInt(2), NewRat(1, 2)), 10, "1.414213562"},
		{"sin", call(Sin, NewInt(1)), 10, "0.8414709848"},
		{"symbolic", Sum(x, Pi), 5, "x + 3.1416"},
		{"i", I, 5, "I"},
		{"inf", Infinity, 5, "oo"},
		{"int", NewInt(4), 3, "4.00"},
		{"sinh-tiny", call(Sinh, pow(NewInt(10), NewInt(-20))), 15, "1.00000000000000e-20"},
		{"cancel-sum", Sum(Pi, NewRat(-314159265358979323, 100000000000000000)), 10, "8.462643383e-18"},
		{"cancel-cos", call(Cos, Sum(Product(NewRat(1, 2), Pi), pow(NewInt(10), NewInt(-20)))), 15, "-1.00000000000000e-20"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := N(c.x, c.digits)
			if err != nil {
				t.Fatal(err)
			}
			if got := r.String(); got != c.want {
				t.Errorf("want %s, got %s", c.want, got)
			}
		})
	}
}

func TestFreeSymbols(t *testing.T) {
	e := Sum(call(Sin, Product(y, x)), z, Pi)
	syms := FreeSymbols(e)
	var names []string
	for _, s := range syms {
		names = append(names, s.Name)
	}
	if len(names) != 3 || names[0] != "x" || names[1] != "y" || names[2] != "z" {
		t.Errorf("wrong symbols %q", names)
	}
	if !Has(e, Product(x, y)) {
		t.Errorf("%v does not have x*y", e)
	}
	if Has(e, a) {
		t.Errorf("%v has a", e)
	}
}
