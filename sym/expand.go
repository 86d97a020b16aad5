package sym

import (
	"math/big"
)

// maxExpandExp bounds the integer powers of sums that Expand multiplies out.
const maxExpandExp = 64

// Expand distributes products over sums, multiplies out integer powers of
// sums, and splits powers with sum exponents, recursively.
func Expand(x Expr) (Expr, error) {
	x, err := rebuild(x, Expand)
	if err != nil {
		return nil, err
	}
	switch x := x.(type) {
	case *Mul:
		return distribute(x.factors), nil
	case *Pow:
		return expandPow(x)
	}
	return x, nil
}

func expandPow(x *Pow) (Expr, error) {
	if _, ok := x.exp.(*Add); ok {
		// b^(m+n) = b^m * b^n, kept apart since Product would recombine them.
		r, err := ExpandPowerExp(x)
		if err != nil {
			return nil, err
		}
		m, ok := r.(*Mul)
		if !ok {
			return r, nil
		}
		fs := make([]Expr, len(m.factors))
		sums := false
		for i, f := range m.factors {
			if p, ok := f.(*Pow); ok {
				if _, ok := p.exp.(*Add); !ok {
					f, err = expandPow(p)
					if err != nil {
						return nil, err
					}
				}
			}
			if _, ok := f.(*Add); ok {
				sums = true
			}
			fs[i] = f
		}
		if !sums {
			return &Mul{factors: fs}, nil
		}
		return distribute(fs), nil
	}
	a, ok := x.base.(*Add)
	n, ok2 := x.exp.(*Integer)
	if !ok || !ok2 || !n.v.IsInt64() {
		return x, nil
	}
	k := n.v.Int64()
	neg := k < 0
	if neg {
		k = -k
	}
	if k > maxExpandExp {
		return x, nil
	}
	fs := make([]Expr, k)
	for i := range fs {
		fs[i] = a
	}
	r := distribute(fs)
	if neg {
		return Recip(r)
	}
	return r, nil
}

// distribute multiplies out a product whose factors may be sums.
func distribute(fs []Expr) Expr {
	terms := []Expr{one}
	for _, f := range fs {
		fts := []Expr{f}
		if a, ok := f.(*Add); ok {
			fts = a.terms
		}
		next := make([]Expr, 0, len(terms)*len(fts))
		for _, t := range terms {
			for _, u := range fts {
				next = append(next, Product(t, u))
			}
		}
		terms = next
	}
	return Sum(terms...)
}

// ExpandPowerBase splits powers of products: (x*y)^a becomes x^a * y^a.
func ExpandPowerBase(x Expr) (Expr, error) {
	x, err := rebuild(x, ExpandPowerBase)
	if err != nil {
		return nil, err
	}
	p, ok := x.(*Pow)
	if !ok {
		return x, nil
	}
	m, ok := p.base.(*Mul)
	if !ok {
		return x, nil
	}
	fs := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		r, err := Power(f, p.exp)
		if err != nil {
			return nil, err
		}
		fs[i] = r
	}
	return Product(fs...), nil
}

// ExpandPowerExp splits powers with sum exponents: x^(a+b) becomes
// x^a * x^b.
func ExpandPowerExp(x Expr) (Expr, error) {
	x, err := rebuild(x, ExpandPowerExp)
	if err != nil {
		return nil, err
	}
	p, ok := x.(*Pow)
	if !ok {
		return x, nil
	}
	a, ok := p.exp.(*Add)
	if !ok {
		return x, nil
	}
	fs := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		r, err := Power(p.base, t)
		if err != nil {
			return nil, err
		}
		fs[i] = r
	}
	switch fs = sortedFactors(fs); len(fs) {
	case 0:
		return one, nil
	case 1:
		return fs[0], nil
	}
	return &Mul{factors: fs}, nil
}

// sortedFactors orders factors for a product built without recombining
// powers of the same base.
func sortedFactors(fs []Expr) []Expr {
	var coeff Expr = one
	rest := make([]Expr, 0, len(fs))
	for _, f := range fs {
		switch {
		case isNumber(f):
			coeff = mulNum(coeff, f)
		case isMul(f):
			for _, g := range f.(*Mul).factors {
				if isNumber(g) {
					coeff = mulNum(coeff, g)
				} else {
					rest = append(rest, g)
				}
			}
		default:
			rest = append(rest, f)
		}
	}
	sortFactors(rest)
	if isOne(coeff) {
		return rest
	}
	return append([]Expr{coeff}, rest...)
}

// ExpandLog splits logarithms of products and powers:
// log(x*y) becomes log(x) + log(y) and log(x^n) becomes n*log(x). Symbols
// are treated as positive.
func ExpandLog(x Expr) (Expr, error) {
	x, err := rebuild(x, ExpandLog)
	if err != nil {
		return nil, err
	}
	a, ok := isCall(x, Log)
	if !ok {
		return x, nil
	}
	switch a := a.(type) {
	case *Mul:
		ts := make([]Expr, 0, len(a.factors))
		for _, f := range a.factors {
			l, err := Log.Call(f)
			if err != nil {
				return nil, err
			}
			l, err = ExpandLog(l)
			if err != nil {
				return nil, err
			}
			ts = append(ts, l)
		}
		return Sum(ts...), nil
	case *Pow:
		l, err := Log.Call(a.base)
		if err != nil {
			return nil, err
		}
		l, err = ExpandLog(l)
		if err != nil {
			return nil, err
		}
		return Product(a.exp, l), nil
	}
	return x, nil
}

// Logcombine merges sums of logarithms: a*log(x) + b*log(y) becomes
// log(x^a * y^b) for numeric a and b.
func Logcombine(x Expr) (Expr, error) {
	x, err := rebuild(x, Logcombine)
	if err != nil {
		return nil, err
	}
	a, ok := x.(*Add)
	if !ok {
		return x, nil
	}
	var args, rest []Expr
	for _, t := range a.terms {
		c, r := splitCoeff(t)
		if l, ok := isCall(r, Log); ok && isExact(c) {
			p, err := Power(l, c)
			if err != nil {
				return nil, err
			}
			args = append(args, p)
			continue
		}
		rest = append(rest, t)
	}
	if len(args) < 2 {
		return x, nil
	}
	l, err := Log.Call(Product(args...))
	if err != nil {
		return nil, err
	}
	return Sum(append(rest, l)...), nil
}

// Powsimp combines powers with equal exponents: x^a * y^a becomes
// (x*y)^a. Powers with equal bases are already combined by Product.
func Powsimp(x Expr) (Expr, error) {
	x, err := rebuild(x, Powsimp)
	if err != nil {
		return nil, err
	}
	m, ok := x.(*Mul)
	if !ok {
		return x, nil
	}
	type group struct {
		exp   Expr
		bases []Expr
	}
	groups := make(map[string]*group)
	var order []string
	var rest []Expr
	for _, f := range m.factors {
		b, e := splitPow(f)
		if _, ok := e.(*Integer); ok || isNumber(b) {
			rest = append(rest, f)
			continue
		}
		k := key(e)
		g := groups[k]
		if g == nil {
			g = &group{exp: e}
			groups[k] = g
			order = append(order, k)
		}
		g.bases = append(g.bases, b)
	}
	for _, k := range order {
		g := groups[k]
		if len(g.bases) == 1 {
			rest = append(rest, &Pow{base: g.bases[0], exp: g.exp})
			continue
		}
		rest = append(rest, &Pow{base: Product(g.bases...), exp: g.exp})
	}
	return Product(rest...), nil
}

// maxTrigMultiple bounds integer multiples expanded by ExpandTrig.
const maxTrigMultiple = 16

// ExpandTrig applies the angle addition formulas to trigonometric and
// hyperbolic functions of sums and of small integer multiples.
func ExpandTrig(x Expr) (Expr, error) {
	x, err := rebuild(x, ExpandTrig)
	if err != nil {
		return nil, err
	}
	c, ok := x.(*Call)
	if !ok || len(c.args) != 1 {
		return x, nil
	}
	a, b, ok := splitAngle(c.args[0])
	if !ok {
		return x, nil
	}
	var ferr error
	call := func(f *Function, x Expr) Expr {
		if ferr != nil {
			return zero
		}
		r, err := f.Call(x)
		if err == nil {
			r, err = ExpandTrig(r)
		}
		if err != nil {
			ferr = err
			return zero
		}
		return r
	}
	var r Expr
	switch c.fn {
	case Sin:
		r = Sum(Product(call(Sin, a), call(Cos, b)), Product(call(Cos, a), call(Sin, b)))
	case Cos:
		r = Sub(Product(call(Cos, a), call(Cos, b)), Product(call(Sin, a), call(Sin, b)))
	case Tan:
		ta, tb := call(Tan, a), call(Tan, b)
		if ferr != nil {
			return nil, ferr
		}
		return Quo(Sum(ta, tb), Sub(one, Product(ta, tb)))
	case Sinh:
		r = Sum(Product(call(Sinh, a), call(Cosh, b)), Product(call(Cosh, a), call(Sinh, b)))
	case Cosh:
		r = Sum(Product(call(Cosh, a), call(Cosh, b)), Product(call(Sinh, a), call(Sinh, b)))
	default:
		return x, nil
	}
	if ferr != nil {
		return nil, ferr
	}
	return r, nil
}

// splitAngle writes an angle as a sum of two parts: the first term of a sum
// and the rest, or u and (n-1)*u for an integer multiple n*u.
func splitAngle(x Expr) (a, b Expr, ok bool) {
	switch x := x.(type) {
	case *Add:
		return x.terms[0], Sum(x.terms[1:]...), true
	case *Mul:
		n, ok := x.factors[0].(*Integer)
		if !ok || n.v.CmpAbs(big.NewInt(maxTrigMultiple)) > 0 || n.v.CmpAbs(big.NewInt(1)) <= 0 {
			return nil, nil, false
		}
		_, u := splitCoeff(x)
		if n.v.Sign() < 0 {
			u = Neg(u)
		}
		k := new(big.Int).Abs(n.v)
		return u, Product(&Integer{v: k.Sub(k, big.NewInt(1))}, u), true
	}
	return nil, nil, false
}
