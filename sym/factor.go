package sym

import (
	"math/big"
)

// numerDenom splits x into numerator and denominator by moving factors with
// negative exact exponents and rational denominators below the line.
func numerDenom(x Expr) (n, d Expr) {
	switch x := x.(type) {
	case *Rational:
		return &Integer{v: new(big.Int).Set(x.v.Num())}, &Integer{v: new(big.Int).Set(x.v.Denom())}
	case *Pow:
		if isExact(x.exp) && numSign(x.exp) < 0 {
			return one, mustPower(x.base, negNum(x.exp))
		}
	case *Mul:
		var ns, ds []Expr
		for _, f := range x.factors {
			fn, fd := numerDenom(f)
			if !isOne(fn) {
				ns = append(ns, fn)
			}
			if !isOne(fd) {
				ds = append(ds, fd)
			}
		}
		return Product(ns...), Product(ds...)
	}
	return x, one
}

// Together rewrites sums of fractions over a common denominator, the least
// common multiple of the terms' denominators.
func Together(x Expr) (Expr, error) {
	x, err := rebuild(x, Together)
	if err != nil {
		return nil, err
	}
	a, ok := x.(*Add)
	if !ok {
		return x, nil
	}
	ns := make([]Expr, len(a.terms))
	ds := make([]Expr, len(a.terms))
	lcm := newDenomLCM()
	for i, t := range a.terms {
		ns[i], ds[i] = numerDenom(t)
		lcm.add(ds[i])
	}
	d := lcm.expr()
	if isOne(d) {
		return x, nil
	}
	terms := make([]Expr, len(ns))
	for i := range ns {
		m, err := Quo(d, ds[i])
		if err != nil {
			return nil, err
		}
		terms[i] = Product(ns[i], m)
	}
	return Quo(Sum(terms...), d)
}

// denomLCM accumulates the least common multiple of monomial denominators.
type denomLCM struct {
	num   *big.Int
	bases map[string]Expr
	exps  map[string]*big.Int
	order []string
}

func newDenomLCM() *denomLCM {
	return &denomLCM{
		num:   big.NewInt(1),
		bases: make(map[string]Expr),
		exps:  make(map[string]*big.Int),
	}
}

func (l *denomLCM) add(d Expr) {
	fs := []Expr{d}
	if m, ok := d.(*Mul); ok {
		fs = m.factors
	}
	for _, f := range fs {
		if n, ok := f.(*Integer); ok {
			g := new(big.Int).GCD(nil, nil, l.num, new(big.Int).Abs(n.v))
			l.num.Mul(l.num, new(big.Int).Quo(new(big.Int).Abs(n.v), g))
			continue
		}
		b, e := splitPow(f)
		n, ok := e.(*Integer)
		if !ok || n.v.Sign() <= 0 {
			b, n = f, one
		}
		k := key(b)
		if old, ok := l.exps[k]; !ok {
			l.bases[k] = b
			l.exps[k] = new(big.Int).Set(n.v)
			l.order = append(l.order, k)
		} else if n.v.Cmp(old) > 0 {
			old.Set(n.v)
		}
	}
}

func (l *denomLCM) expr() Expr {
	fs := []Expr{&Integer{v: new(big.Int).Set(l.num)}}
	for _, k := range l.order {
		fs = append(fs, mustPower(l.bases[k], &Integer{v: l.exps[k]}))
	}
	return Product(fs...)
}

// Factor factors polynomials in one variable over the rationals and pulls
// common factors out of other sums. Rational expressions are factored in
// numerator and denominator separately.
func Factor(x Expr) (Expr, error) {
	if r, ok := x.(*Relation); ok {
		lhs, err := Factor(r.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := Factor(r.RHS)
		if err != nil {
			return nil, err
		}
		return Relate(r.Op, lhs, rhs), nil
	}
	t, err := Together(x)
	if err != nil {
		return nil, err
	}
	n, d := numerDenom(t)
	fn, fd := factorExpr(n), factorExpr(d)
	if isOne(fd) {
		return fn, nil
	}
	cn, rn := splitCoeff(fn)
	if isNumber(fn) {
		cn, rn = fn, one
	}
	cd, rd := splitCoeff(fd)
	if isNumber(fd) {
		cd, rd = fd, one
	}
	c, err := Quo(cn, cd)
	if err != nil {
		return nil, err
	}
	r, err := Quo(rn, rd)
	if err != nil {
		return nil, err
	}
	return withCoeff(c, r), nil
}

func factorExpr(x Expr) Expr {
	if isNumber(x) {
		return x
	}
	syms := FreeSymbols(x)
	if len(syms) == 1 {
		v := syms[0]
		if p, ok := toPoly(x, v); ok && p.deg() >= 1 {
			return factoredPoly(p, v)
		}
	}
	return factorTerms(x)
}

func factoredPoly(p poly, v *Symbol) Expr {
	c, linear, rest := factorPoly(p)
	fs := make([]Expr, 0, len(linear)+1)
	for _, f := range linear {
		fs = append(fs, mustPower(f.expr(v), NewInt(int64(f.mult))))
	}
	if rest.deg() > 0 {
		fs = append(fs, rest.expr(v))
	}
	return withCoeff(newRat(c), Product(fs...))
}

// factorTerms extracts the numeric content and the common powers of a sum's
// terms.
func factorTerms(x Expr) Expr {
	a, ok := x.(*Add)
	if !ok {
		return x
	}
	num := new(big.Int)
	den := big.NewInt(1)
	for _, t := range a.terms {
		c, _ := splitCoeff(t)
		if isNumber(t) {
			c = t
		}
		q, ok := exact(c)
		if !ok {
			return x
		}
		num.GCD(nil, nil, num, new(big.Int).Abs(q.Num()))
		g := new(big.Int).GCD(nil, nil, den, q.Denom())
		den.Mul(den, new(big.Int).Quo(q.Denom(), g))
	}
	content := newRat(new(big.Rat).SetFrac(num, den))
	if isNegativeTerm(a.terms[0]) {
		content = negNum(content)
	}
	// Common bases with integer exponents, at their smallest exponent.
	var common []Expr
	_, first := splitCoeff(a.terms[0])
	if isNumber(a.terms[0]) {
		first = one
	}
	fs := []Expr{first}
	if m, ok := first.(*Mul); ok {
		fs = m.factors
	}
	for _, f := range fs {
		b, e := splitPow(f)
		low, ok := e.(*Integer)
		if !ok || low.v.Sign() <= 0 {
			continue
		}
		for _, t := range a.terms[1:] {
			k, ok := powerOf(t, b)
			if !ok {
				low = zero
				break
			}
			if k.v.Cmp(low.v) < 0 {
				low = k
			}
		}
		if low.v.Sign() > 0 {
			common = append(common, mustPower(b, low))
		}
	}
	if isOne(content) && len(common) == 0 {
		return x
	}
	div := Product(append([]Expr{content}, common...)...)
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = Product(t, mustPower(div, negOne))
	}
	inner := Sum(terms...)
	return withCoeff(content, Product(append(common, inner)...))
}

// powerOf returns the positive integer exponent of base b in term t.
func powerOf(t, b Expr) (*Integer, bool) {
	_, rest := splitCoeff(t)
	fs := []Expr{rest}
	if m, ok := rest.(*Mul); ok {
		fs = m.factors
	}
	for _, f := range fs {
		fb, fe := splitPow(f)
		if !fb.Equal(b) {
			continue
		}
		n, ok := fe.(*Integer)
		if !ok || n.v.Sign() <= 0 {
			return nil, false
		}
		return n, true
	}
	return nil, false
}

// Cancel puts a rational function of one variable in lowest terms with
// expanded numerator and monic denominator.
func Cancel(x Expr) (Expr, error) {
	t, err := Together(x)
	if err != nil {
		return nil, err
	}
	syms := FreeSymbols(t)
	if len(syms) != 1 {
		return t, nil
	}
	v := syms[0]
	n, d := numerDenom(t)
	pn, ok := toPoly(n, v)
	if !ok {
		return t, nil
	}
	pd, ok := toPoly(d, v)
	if !ok || len(pd) == 0 {
		return t, nil
	}
	if len(pn) == 0 {
		return zero, nil
	}
	g := pn.gcd(pd)
	pn, _ = pn.divmod(g)
	pd, _ = pd.divmod(g)
	lc := new(big.Rat).Inv(pd.lead())
	pn, pd = pn.scale(lc), pd.scale(lc)
	c := pn.content()
	pn = pn.scale(new(big.Rat).Inv(c))
	if pd.deg() == 0 {
		return withCoeff(newRat(c), pn.expr(v)), nil
	}
	r, err := Quo(pn.expr(v), pd.expr(v))
	if err != nil {
		return nil, err
	}
	return withCoeff(newRat(c), r), nil
}

// Apart computes the partial fraction decomposition of a rational function of
// its single free symbol. Denominator factors without rational roots are kept
// whole with a polynomial numerator of lower degree.
func Apart(x Expr) (Expr, error) {
	syms := FreeSymbols(x)
	if len(syms) != 1 {
		return x, nil
	}
	return ApartIn(x, syms[0])
}

// ApartIn computes the partial fraction decomposition of x in v.
func ApartIn(x Expr, v *Symbol) (Expr, error) {
	t, err := Together(x)
	if err != nil {
		return nil, err
	}
	n, d := numerDenom(t)
	pn, ok := toPoly(n, v)
	if !ok {
		return x, nil
	}
	pd, ok := toPoly(d, v)
	if !ok || len(pd) == 0 {
		return x, nil
	}
	if pd.deg() == 0 {
		return Expand(x)
	}
	quo, rem := pn.divmod(pd)
	lc := new(big.Rat).Inv(pd.lead())
	pd, rem = pd.monic(), rem.scale(lc)
	quo = quo.trim()
	_, linear, rest := factorPoly(pd)
	rest = rest.monic()

	// Basis numerators: pd/(v-r)^k for each linear factor and v^i*pd/rest
	// for the remaining factor.
	type part struct {
		f     linearFactor
		k     int
		restI int
	}
	var parts []part
	var basis []poly
	for _, f := range linear {
		lin := poly{new(big.Rat).Neg(f.root), big.NewRat(1, 1)}
		q := pd
		for k := 1; k <= f.mult; k++ {
			q, _ = q.divmod(lin)
			parts = append(parts, part{f: f, k: k, restI: -1})
			basis = append(basis, q)
		}
	}
	if rest.deg() > 0 {
		q, _ := pd.divmod(rest)
		for i := 0; i < rest.deg(); i++ {
			shift := make(poly, i+1)
			for j := range shift {
				shift[j] = new(big.Rat)
			}
			shift[i] = big.NewRat(1, 1)
			parts = append(parts, part{restI: i})
			basis = append(basis, q.mul(shift))
		}
	}
	size := pd.deg()
	m := make([][]*big.Rat, size)
	b := make([]*big.Rat, size)
	for i := range m {
		m[i] = make([]*big.Rat, size)
		for j := range m[i] {
			m[i][j] = coeff(basis[j], i)
		}
		b[i] = coeff(rem, i)
	}
	sol, ok := solve(m, b)
	if !ok {
		return x, nil
	}
	terms := []Expr{quo.expr(v)}
	var restNum poly
	for j, p := range parts {
		if p.restI >= 0 {
			restNum = restNum.addTerm(p.restI, sol[j])
			continue
		}
		if sol[j].Sign() == 0 {
			continue
		}
		// a/(v - num/den)^k = a*den^k/(den*v - num)^k
		dk := new(big.Int).Exp(p.f.root.Denom(), big.NewInt(int64(p.k)), nil)
		c := new(big.Rat).Mul(sol[j], new(big.Rat).SetInt(dk))
		terms = append(terms, Product(newRat(c), mustPower(p.f.expr(v), NewInt(int64(-p.k)))))
	}
	if restNum = restNum.trim(); len(restNum) > 0 {
		r, err := Quo(restNum.expr(v), rest.expr(v))
		if err != nil {
			return nil, err
		}
		terms = append(terms, r)
	}
	return Sum(terms...), nil
}

func coeff(p poly, i int) *big.Rat {
	if i < len(p) {
		return p[i]
	}
	return new(big.Rat)
}
