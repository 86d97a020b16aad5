package sym

import (
	"math/big"
)

// poly is a univariate polynomial with rational coefficients, lowest degree
// first. The zero polynomial has no coefficients.
type poly []*big.Rat

// maxPolyDegree bounds the degree of polynomials recognized by toPoly.
const maxPolyDegree = 1024

// toPoly converts x to a polynomial in v. The second result is false if x is
// not a polynomial in v with exact coefficients.
func toPoly(x Expr, v *Symbol) (poly, bool) {
	x, err := Expand(x)
	if err != nil {
		return nil, false
	}
	terms := []Expr{x}
	if a, ok := x.(*Add); ok {
		terms = a.terms
	}
	var p poly
	for _, t := range terms {
		if c, ok := exact(t); ok {
			p = p.addTerm(0, c)
			continue
		}
		c, rest := splitCoeff(t)
		cr, ok := exact(c)
		if !ok {
			return nil, false
		}
		k := 0
		switch rest := rest.(type) {
		case *Symbol:
			if rest.Name != v.Name {
				return nil, false
			}
			k = 1
		case *Pow:
			s, ok := rest.base.(*Symbol)
			n, ok2 := rest.exp.(*Integer)
			if !ok || !ok2 || s.Name != v.Name || n.v.Sign() < 0 || n.v.Cmp(big.NewInt(maxPolyDegree)) > 0 {
				return nil, false
			}
			k = int(n.v.Int64())
		default:
			return nil, false
		}
		p = p.addTerm(k, cr)
	}
	return p.trim(), true
}

func (p poly) addTerm(k int, c *big.Rat) poly {
	for len(p) <= k {
		p = append(p, new(big.Rat))
	}
	p[k] = new(big.Rat).Add(p[k], c)
	return p
}

func (p poly) trim() poly {
	for len(p) > 0 && p[len(p)-1].Sign() == 0 {
		p = p[:len(p)-1]
	}
	return p
}

// deg returns the degree of p, or -1 for the zero polynomial.
func (p poly) deg() int { return len(p) - 1 }

func (p poly) lead() *big.Rat { return p[len(p)-1] }

// expr converts p to an expression in v.
func (p poly) expr(v *Symbol) Expr {
	terms := make([]Expr, 0, len(p))
	for k, c := range p {
		if c.Sign() == 0 {
			continue
		}
		terms = append(terms, Product(newRat(c), mustPower(v, NewInt(int64(k)))))
	}
	return Sum(terms...)
}

func (p poly) scale(c *big.Rat) poly {
	r := make(poly, len(p))
	for i, a := range p {
		r[i] = new(big.Rat).Mul(a, c)
	}
	return r.trim()
}

func (p poly) mul(q poly) poly {
	if len(p) == 0 || len(q) == 0 {
		return nil
	}
	r := make(poly, len(p)+len(q)-1)
	for i := range r {
		r[i] = new(big.Rat)
	}
	var t big.Rat
	for i, a := range p {
		for j, b := range q {
			r[i+j].Add(r[i+j], t.Mul(a, b))
		}
	}
	return r.trim()
}

// divmod divides p by a nonzero q.
func (p poly) divmod(q poly) (quo, rem poly) {
	rem = append(poly(nil), p...)
	for i := range rem {
		rem[i] = new(big.Rat).Set(rem[i])
	}
	if len(rem) < len(q) {
		return nil, rem
	}
	quo = make(poly, len(rem)-len(q)+1)
	for i := range quo {
		quo[i] = new(big.Rat)
	}
	lq := q.lead()
	var t big.Rat
	for k := len(rem) - len(q); k >= 0; k-- {
		c := new(big.Rat).Quo(rem[k+len(q)-1], lq)
		quo[k] = c
		for j, b := range q {
			rem[k+j].Sub(rem[k+j], t.Mul(c, b))
		}
	}
	return quo.trim(), rem.trim()
}

// monic divides p by its leading coefficient.
func (p poly) monic() poly {
	if len(p) == 0 {
		return p
	}
	return p.scale(new(big.Rat).Inv(p.lead()))
}

// gcd computes the monic greatest common divisor of p and q.
func (p poly) gcd(q poly) poly {
	a, b := p, q
	for len(b) > 0 {
		_, r := a.divmod(b)
		a, b = b, r
	}
	return a.monic()
}

func (p poly) eval(x *big.Rat) *big.Rat {
	r := new(big.Rat)
	for k := len(p) - 1; k >= 0; k-- {
		r.Mul(r, x)
		r.Add(r, p[k])
	}
	return r
}

// content returns the positive rational c such that p/c has coprime integer
// coefficients.
func (p poly) content() *big.Rat {
	num := new(big.Int)
	den := big.NewInt(1)
	for _, c := range p {
		num.GCD(nil, nil, num, new(big.Int).Abs(c.Num()))
		g := new(big.Int).GCD(nil, nil, den, c.Denom())
		den.Mul(den, new(big.Int).Quo(c.Denom(), g))
	}
	if num.Sign() == 0 {
		return big.NewRat(1, 1)
	}
	return new(big.Rat).SetFrac(num, den)
}

// maxRootSearchBits bounds the size of coefficients searched for rational
// roots.
const maxRootSearchBits = 40

// rationalRoot finds a rational root of p, which must have integer
// coefficients.
func (p poly) rationalRoot() (*big.Rat, bool) {
	if p.deg() < 1 {
		return nil, false
	}
	if p[0].Sign() == 0 {
		return new(big.Rat), true
	}
	a0 := new(big.Int).Abs(p[0].Num())
	an := new(big.Int).Abs(p.lead().Num())
	if a0.BitLen() > maxRootSearchBits || an.BitLen() > maxRootSearchBits {
		return nil, false
	}
	ps, qs := divisors(a0.Int64()), divisors(an.Int64())
	for _, q := range qs {
		for _, n := range ps {
			for _, s := range [...]int64{n, -n} {
				r := big.NewRat(s, q)
				if p.eval(r).Sign() == 0 {
					return r, true
				}
			}
		}
	}
	return nil, false
}

func divisors(n int64) []int64 {
	var small, large []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d == 0 {
			small = append(small, d)
			if d*d != n {
				large = append(large, n/d)
			}
		}
	}
	for i := len(large) - 1; i >= 0; i-- {
		small = append(small, large[i])
	}
	return small
}

// linearFactor is a factor den*v - num of multiplicity mult.
type linearFactor struct {
	root *big.Rat
	mult int
}

func (f linearFactor) expr(v *Symbol) Expr {
	return Sum(Product(&Integer{v: new(big.Int).Set(f.root.Denom())}, v), &Integer{v: new(big.Int).Neg(f.root.Num())})
}

// factorPoly writes p = c * prod(linear factors) * rest where rest has
// coprime integer coefficients, a positive leading coefficient, and no
// rational roots.
func factorPoly(p poly) (c *big.Rat, linear []linearFactor, rest poly) {
	c = p.content()
	if p.lead().Sign() < 0 {
		c.Neg(c)
	}
	rest = p.scale(new(big.Rat).Inv(c))
	for {
		r, ok := rest.rationalRoot()
		if !ok {
			break
		}
		// Divide by den*v - num, which keeps integer coefficients.
		div := poly{new(big.Rat).SetInt(new(big.Int).Neg(r.Num())), new(big.Rat).SetInt(r.Denom())}
		m := 0
		for {
			q, rem := rest.divmod(div)
			if len(rem) != 0 {
				break
			}
			rest = q
			m++
		}
		linear = append(linear, linearFactor{root: r, mult: m})
	}
	return c, linear, rest
}

// solve solves the square linear system m x = b by Gaussian elimination. m
// is indexed by row then column. The second result is false if the system is
// singular.
func solve(m [][]*big.Rat, b []*big.Rat) ([]*big.Rat, bool) {
	n := len(b)
	a := make([][]*big.Rat, n)
	for i := range a {
		a[i] = make([]*big.Rat, n+1)
		for j := 0; j < n; j++ {
			a[i][j] = new(big.Rat).Set(m[i][j])
		}
		a[i][n] = new(big.Rat).Set(b[i])
	}
	var t big.Rat
	for col := 0; col < n; col++ {
		piv := -1
		for r := col; r < n; r++ {
			if a[r][col].Sign() != 0 {
				piv = r
				break
			}
		}
		if piv < 0 {
			return nil, false
		}
		a[col], a[piv] = a[piv], a[col]
		for r := 0; r < n; r++ {
			if r == col || a[r][col].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Quo(a[r][col], a[col][col])
			for j := col; j <= n; j++ {
				a[r][j].Sub(a[r][j], t.Mul(f, a[col][j]))
			}
		}
	}
	x := make([]*big.Rat, n)
	for i := range x {
		x[i] = new(big.Rat).Quo(a[i][n], a[i][i])
	}
	return x, true
}
