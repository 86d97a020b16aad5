package sym

import (
	"sort"
)

// Mul is a product of two or more factors. A numeric coefficient, if any, is
// always the first factor.
type Mul struct {
	factors []Expr
}

// Factors returns a copy of the product's factors.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

func (m *Mul) String() string     { return defaultPrinter.Print(m) }
func (m *Mul) Equal(x Expr) bool { return key(m) == key(x) }
func (*Mul) expr()               {}

// Product multiplies expressions. Nested products are flattened, numbers are
// folded into one coefficient, and factors with the same base are combined by
// adding exponents. An exact coefficient times a single sum is distributed,
// so 2*(x + 1) becomes 2*x + 2.
func Product(xs ...Expr) Expr {
	flat := make([]Expr, 0, len(xs))
	for _, x := range xs {
		if m, ok := x.(*Mul); ok {
			flat = append(flat, m.factors...)
		} else {
			flat = append(flat, x)
		}
	}
	var coeff Expr = one
	inf := constNone
	type power struct {
		base Expr
		exps []Expr
	}
	groups := make(map[string]*power)
	var order []string
	for _, f := range flat {
		switch {
		case isNumber(f):
			coeff = mulNum(coeff, f)
		case isNaN(f):
			return NaN
		case isInfinite(f):
			inf = mulInf(inf, f.(Const))
		default:
			b, e := splitPow(f)
			k := key(b)
			g := groups[k]
			if g == nil {
				g = &power{base: b}
				groups[k] = g
				order = append(order, k)
			}
			g.exps = append(g.exps, e)
		}
	}
	if inf != constNone {
		if isZero(coeff) {
			return NaN
		}
		if numSign(coeff) < 0 {
			inf = mulInf(inf, NegInfinity)
		}
		coeff = one
	}
	if isZero(coeff) {
		return coeff
	}
	factors := make([]Expr, 0, len(order)+1)
	refold := false
	for _, k := range order {
		g := groups[k]
		e := Sum(g.exps...)
		p, err := Power(g.base, e)
		if err != nil {
			p = &Pow{base: g.base, exp: e}
		}
		if isOne(p) {
			continue
		}
		switch p.(type) {
		case *Integer, *Rational, *Real, *Mul:
			refold = true
		case Const:
			refold = isInfinite(p) || isNaN(p)
		}
		factors = append(factors, p)
	}
	if refold {
		// A power evaluated to a number or a product, e.g. I^2 or 8^(1/2).
		next := make([]Expr, 0, len(factors)+2)
		next = append(next, coeff)
		next = append(next, factors...)
		if inf != constNone {
			next = append(next, inf)
		}
		return Product(next...)
	}
	if inf != constNone {
		factors = append(factors, inf)
	}
	switch len(factors) {
	case 0:
		return coeff
	case 1:
		if isOne(coeff) {
			return factors[0]
		}
		if a, ok := factors[0].(*Add); ok && isExact(coeff) {
			terms := make([]Expr, len(a.terms))
			for i, t := range a.terms {
				terms[i] = Product(coeff, t)
			}
			return Sum(terms...)
		}
	}
	sortFactors(factors)
	if !isOne(coeff) {
		factors = append([]Expr{coeff}, factors...)
	}
	return &Mul{factors: factors}
}

// Quo divides a by b.
func Quo(a, b Expr) (Expr, error) {
	r, err := Recip(b)
	if err != nil {
		return nil, err
	}
	return Product(a, r), nil
}

// Recip returns 1/x. The reciprocal of an exact or real zero is a division by
// zero error.
func Recip(x Expr) (Expr, error) {
	return Power(x, negOne)
}

func mulInf(acc, c Const) Const {
	if acc == constNone {
		return c
	}
	if acc == ComplexInfinity || c == ComplexInfinity {
		return ComplexInfinity
	}
	if acc == c {
		return Infinity
	}
	return NegInfinity
}

// splitPow separates a factor into base and exponent.
func splitPow(f Expr) (Expr, Expr) {
	if p, ok := f.(*Pow); ok {
		return p.base, p.exp
	}
	return f, one
}

func factorRank(f Expr) int {
	b, _ := splitPow(f)
	switch b := b.(type) {
	case Const:
		if b.infinite() {
			return 5
		}
		return 0
	case *Integer, *Rational, *Real:
		return 1
	case *Symbol:
		return 2
	case *Call:
		return 3
	}
	return 4
}

func sortFactors(factors []Expr) {
	sort.SliceStable(factors, func(i, j int) bool {
		a, b := factors[i], factors[j]
		if ra, rb := factorRank(a), factorRank(b); ra != rb {
			return ra < rb
		}
		ba, ea := splitPow(a)
		bb, eb := splitPow(b)
		if sa, sb := ba.String(), bb.String(); sa != sb {
			return sa < sb
		}
		return key(ea) < key(eb)
	})
}

func isMul(x Expr) bool {
	_, ok := x.(*Mul)
	return ok
}

// withCoeff multiplies x by the numeric coefficient c without distributing
// c over a sum, so 2*(x + 1) stays factored.
func withCoeff(c, x Expr) Expr {
	if m, ok := x.(*Mul); ok && isNumber(m.factors[0]) {
		d, rest := splitCoeff(m)
		return withCoeff(mulNum(c, d), rest)
	}
	if isOne(c) {
		return x
	}
	if a, ok := x.(*Add); ok && !isZero(c) {
		return &Mul{factors: []Expr{c, a}}
	}
	return Product(c, x)
}
