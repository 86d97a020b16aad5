package sym

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Pow is a base raised to an exponent.
type Pow struct {
	base Expr
	exp  Expr
}

// Base returns the base of the power.
func (p *Pow) Base() Expr { return p.base }

// Exp returns the exponent of the power.
func (p *Pow) Exp() Expr { return p.exp }

func (p *Pow) String() string     { return defaultPrinter.Print(p) }
func (p *Pow) Equal(x Expr) bool { return key(p) == key(x) }
func (*Pow) expr()               {}

// maxExactExp bounds exponents evaluated exactly so that a typo cannot
// allocate without limit.
const maxExactExp = 1 << 20

// Power raises b to the power e. Exact numbers raised to integer powers are
// evaluated exactly, perfect roots are extracted, and powers of reals are
// evaluated numerically. Raising an exact or real zero to a negative power is
// a division by zero.
func Power(b, e Expr) (Expr, error) {
	switch {
	case isNaN(b) || isNaN(e):
		return NaN, nil
	case isExactInt(e, 0):
		return one, nil
	case isOne(e):
		return b, nil
	case isOne(b):
		return one, nil
	}
	if isNumber(b) && isNumber(e) {
		if isExact(b) && isExact(e) {
			return powExact(b, e)
		}
		return powReal(b, e)
	}
	if isZero(b) {
		// The sign of a symbolic exponent is unknown.
		return &Pow{base: b, exp: e}, nil
	}
	if n, ok := e.(*Integer); ok {
		switch b := b.(type) {
		case *Pow:
			return Power(b.base, Product(b.exp, n))
		case *Mul:
			fs := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				p, err := Power(f, n)
				if err != nil {
					return nil, err
				}
				fs[i] = p
			}
			return Product(fs...), nil
		case Const:
			if b == I {
				return powI(n.v), nil
			}
		}
	}
	if c, ok := b.(Const); ok {
		switch c {
		case Infinity, ComplexInfinity:
			if isNumber(e) {
				if numSign(e) > 0 {
					return c, nil
				}
				return zero, nil
			}
		case E:
			if call, ok := e.(*Call); ok && call.fn == Log && len(call.args) == 1 {
				return call.args[0], nil
			}
			if r, ok := e.(*Real); ok {
				prec := DigitsToBits(r.digits)
				z := new(big.Float).SetPrec(prec)
				bigfloat.Exp(z, toFloat(r, prec))
				return NewReal(z, r.digits), nil
			}
		}
	}
	return &Pow{base: b, exp: e}, nil
}

// powI computes I^n.
func powI(n *big.Int) Expr {
	switch new(big.Int).Mod(n, big.NewInt(4)).Int64() {
	case 0:
		return one
	case 1:
		return I
	case 2:
		return negOne
	default:
		return Neg(I)
	}
}

func powExact(b, e Expr) (Expr, error) {
	x, _ := exact(b)
	y, _ := exact(e)
	if x.Sign() == 0 {
		if y.Sign() < 0 {
			return nil, &DomainError{X: b, Func: "/"}
		}
		return zero, nil
	}
	if y.IsInt() {
		n := y.Num()
		if n.CmpAbs(big.NewInt(maxExactExp)) > 0 {
			return &Pow{base: b, exp: e}, nil
		}
		abs := new(big.Int).Abs(n)
		num := new(big.Int).Exp(x.Num(), abs, nil)
		den := new(big.Int).Exp(x.Denom(), abs, nil)
		r := new(big.Rat).SetFrac(num, den)
		if n.Sign() < 0 {
			r.Inv(r)
		}
		return newRat(r), nil
	}
	p, q := y.Num(), y.Denom()
	if x.Sign() < 0 {
		if q.Cmp(big.NewInt(2)) != 0 {
			return &Pow{base: b, exp: e}, nil
		}
		// (-x)^(p/2) = x^(p/2) * I^p
		pos, err := Power(newRat(new(big.Rat).Neg(x)), e)
		if err != nil {
			return nil, err
		}
		return Product(pos, powI(p)), nil
	}
	// Split off the integer part of the exponent: b^(k + r/q).
	k := new(big.Int).Div(p, q)
	if k.Sign() != 0 {
		r := new(big.Rat).SetFrac(new(big.Int).Sub(p, new(big.Int).Mul(k, q)), q)
		whole, err := Power(b, &Integer{v: k})
		if err != nil {
			return nil, err
		}
		frac, err := Power(b, newRat(r))
		if err != nil {
			return nil, err
		}
		return Product(whole, frac), nil
	}
	if !q.IsInt64() || q.Int64() > 64 {
		return &Pow{base: b, exp: e}, nil
	}
	if !x.IsInt() {
		// (n/d)^e = n^e * d^-e
		ne, err := Power(&Integer{v: new(big.Int).Set(x.Num())}, e)
		if err != nil {
			return nil, err
		}
		de, err := Power(&Integer{v: new(big.Int).Set(x.Denom())}, Neg(e))
		if err != nil {
			return nil, err
		}
		return Product(ne, de), nil
	}
	out, in := extractRoot(x.Num(), int(q.Int64()))
	if out.Cmp(big.NewInt(1)) == 0 {
		return &Pow{base: b, exp: e}, nil
	}
	// b^(p/q) = out^p * in^(p/q)
	outp := new(big.Int).Exp(out, p, nil)
	if in.Cmp(big.NewInt(1)) == 0 {
		return &Integer{v: outp}, nil
	}
	return Product(&Integer{v: outp}, &Pow{base: &Integer{v: in}, exp: e}), nil
}

// extractRoot writes n = out^q * in with in having no q-th power factors
// among small primes.
func extractRoot(n *big.Int, q int) (out, in *big.Int) {
	out = big.NewInt(1)
	in = new(big.Int).Set(n)
	// Exact roots of large numbers are common (e.g. sqrt(10^40)), so check
	// for one before trial division.
	if r := iroot(in, q); new(big.Int).Exp(r, big.NewInt(int64(q)), nil).Cmp(in) == 0 {
		return r, big.NewInt(1)
	}
	bq := big.NewInt(int64(q))
	var m, rem big.Int
	for p := int64(2); p < 10000; p++ {
		pp := new(big.Int).Exp(big.NewInt(p), bq, nil)
		if pp.Cmp(in) > 0 {
			break
		}
		for {
			m.QuoRem(in, pp, &rem)
			if rem.Sign() != 0 {
				break
			}
			in.Set(&m)
			out.Mul(out, big.NewInt(p))
		}
	}
	return out, in
}

// iroot computes floor(n^(1/q)) for n >= 0 by Newton's method.
func iroot(n *big.Int, q int) *big.Int {
	if n.Sign() == 0 {
		return new(big.Int)
	}
	if q == 2 {
		return new(big.Int).Sqrt(n)
	}
	bq := big.NewInt(int64(q))
	bq1 := big.NewInt(int64(q - 1))
	// Start above the root.
	x := new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()/q+1))
	for {
		// y = ((q-1)x + n/x^(q-1)) / q
		t := new(big.Int).Exp(x, bq1, nil)
		t.Quo(n, t)
		y := new(big.Int).Mul(x, bq1)
		y.Add(y, t)
		y.Quo(y, bq)
		if y.Cmp(x) >= 0 {
			return x
		}
		x = y
	}
}

func powReal(b, e Expr) (Expr, error) {
	d := realDigits(b, e)
	prec := DigitsToBits(d)
	if isZero(b) {
		if numSign(e) < 0 {
			return nil, &DomainError{X: b, Func: "/"}
		}
		if numSign(e) == 0 {
			return NewReal(big.NewFloat(1), d), nil
		}
		return NewReal(new(big.Float), d), nil
	}
	if n, ok := e.(*Integer); ok && n.v.IsInt64() {
		return NewReal(powFloatInt(toFloat(b, prec), n.v.Int64()), d), nil
	}
	if numSign(b) < 0 {
		if r, ok := e.(*Real); ok && r.v.IsInt() {
			i, _ := r.v.Int64()
			return NewReal(powFloatInt(toFloat(b, prec), i), d), nil
		}
		// Complex result.
		return &Pow{base: b, exp: e}, nil
	}
	z := new(big.Float).SetPrec(prec)
	bigfloat.Pow(z, toFloat(b, prec), toFloat(e, prec))
	return NewReal(z, d), nil
}

// powFloatInt computes x^n by repeated squaring at the precision of x.
func powFloatInt(x *big.Float, n int64) *big.Float {
	neg := n < 0
	if neg {
		n = -n
	}
	r := new(big.Float).SetPrec(x.Prec()).SetInt64(1)
	sq := new(big.Float).Copy(x)
	for n > 0 {
		if n&1 != 0 {
			r.Mul(r, sq)
		}
		sq.Mul(sq, sq)
		n >>= 1
	}
	if neg {
		r.Quo(new(big.Float).SetPrec(x.Prec()).SetInt64(1), r)
	}
	return r
}

// Sqrt returns the principal square root of x.
func Sqrt(x Expr) (Expr, error) {
	return Power(x, half)
}
