package sym

import (
	"sort"
)

// Add is a sum of two or more terms in canonical order.
type Add struct {
	terms []Expr
}

// Terms returns a copy of the sum's terms.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

func (a *Add) String() string     { return defaultPrinter.Print(a) }
func (a *Add) Equal(x Expr) bool { return key(a) == key(x) }
func (*Add) expr()               {}

// Sum adds expressions. Nested sums are flattened, numbers are folded, and
// like terms are collected by their non-numeric part, so x + 2*x becomes 3*x.
func Sum(xs ...Expr) Expr {
	flat := make([]Expr, 0, len(xs))
	for _, x := range xs {
		if a, ok := x.(*Add); ok {
			flat = append(flat, a.terms...)
		} else {
			flat = append(flat, x)
		}
	}
	var num Expr = zero
	inf := constNone
	type group struct {
		coeff Expr
		rest  Expr
	}
	groups := make(map[string]*group)
	var order []string
	for _, t := range flat {
		switch {
		case isNumber(t):
			num = addNum(num, t)
		case isNaN(t):
			return NaN
		case isInfinite(t):
			inf = addInf(inf, t.(Const))
			if inf == NaN {
				return NaN
			}
		default:
			c, rest := splitCoeff(t)
			k := key(rest)
			g := groups[k]
			if g == nil {
				g = &group{coeff: zero, rest: rest}
				groups[k] = g
				order = append(order, k)
			}
			g.coeff = addNum(g.coeff, c)
		}
	}
	terms := make([]Expr, 0, len(order)+1)
	for _, k := range order {
		g := groups[k]
		if isZero(g.coeff) {
			continue
		}
		terms = append(terms, scale(g.coeff, g.rest))
	}
	switch {
	case inf != constNone:
		terms = append(terms, inf)
	case !isZero(num):
		terms = append(terms, num)
	}
	switch len(terms) {
	case 0:
		return num
	case 1:
		return terms[0]
	}
	sortTerms(terms)
	return &Add{terms: terms}
}

// Neg negates x.
func Neg(x Expr) Expr {
	return Product(negOne, x)
}

// Sub subtracts b from a.
func Sub(a, b Expr) Expr {
	return Sum(a, Neg(b))
}

func addInf(acc, c Const) Const {
	switch {
	case acc == constNone || acc == c:
		return c
	case acc == ComplexInfinity || c == ComplexInfinity:
		return NaN
	default:
		// oo + -oo
		return NaN
	}
}

// splitCoeff separates the numeric coefficient of a term from the rest.
func splitCoeff(t Expr) (Expr, Expr) {
	m, ok := t.(*Mul)
	if !ok || !isNumber(m.factors[0]) {
		return one, t
	}
	if len(m.factors) == 2 {
		return m.factors[0], m.factors[1]
	}
	return m.factors[0], &Mul{factors: m.factors[1:]}
}

// scale multiplies an already canonical non-numeric expression by a numeric
// coefficient without recanonicalizing it.
func scale(c, rest Expr) Expr {
	if isOne(c) {
		return rest
	}
	if m, ok := rest.(*Mul); ok {
		f := make([]Expr, 0, len(m.factors)+1)
		f = append(f, c)
		f = append(f, m.factors...)
		return &Mul{factors: f}
	}
	return &Mul{factors: []Expr{c, rest}}
}

// isNegativeTerm reports whether t prints with a leading minus sign.
func isNegativeTerm(t Expr) bool {
	switch t := t.(type) {
	case *Integer, *Rational, *Real:
		return numSign(t) < 0
	case Const:
		return t == NegInfinity
	case *Mul:
		return isNumber(t.factors[0]) && numSign(t.factors[0]) < 0
	}
	return false
}

// termOrder is the sorting key of a sum's term: terms with free symbols
// first, grouped by their leading symbol, higher degree first.
type termOrder struct {
	class  int
	lead   string
	degree float64
	key    string
}

func orderOf(t Expr) termOrder {
	if isNumber(t) || isInfinite(t) {
		return termOrder{class: 2, key: key(t)}
	}
	_, rest := splitCoeff(t)
	o := termOrder{class: 1, key: key(rest)}
	if hasSymbol(rest) {
		o.class = 0
	}
	factors := []Expr{rest}
	if m, ok := rest.(*Mul); ok {
		factors = m.factors
	}
	for _, f := range factors {
		b, e := splitPow(f)
		if o.lead == "" && hasSymbol(b) {
			o.lead = b.String()
		}
		if isNumber(e) {
			v, _ := toFloat(e, 53).Float64()
			o.degree += v
		} else {
			o.degree++
		}
	}
	return o
}

func sortTerms(terms []Expr) {
	keys := make([]termOrder, len(terms))
	for i, t := range terms {
		keys[i] = orderOf(t)
	}
	idx := make([]int, len(terms))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := keys[idx[i]], keys[idx[j]]
		switch {
		case a.class != b.class:
			return a.class < b.class
		case a.lead != b.lead:
			return a.lead < b.lead
		case a.degree != b.degree:
			return a.degree > b.degree
		}
		return a.key < b.key
	})
	sorted := make([]Expr, len(terms))
	for i, k := range idx {
		sorted[i] = terms[k]
	}
	copy(terms, sorted)
}
