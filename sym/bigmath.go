package sym

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// guard is the number of extra bits carried by intermediate computations.
const guard = 64

func newFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

func floatInt(prec uint, v int64) *big.Float {
	return newFloat(prec).SetInt64(v)
}

// negligible reports whether term no longer changes sum at prec bits.
func negligible(term, sum *big.Float, prec uint) bool {
	if term.Sign() == 0 {
		return true
	}
	if sum.Sign() == 0 {
		return false
	}
	return term.MantExp(nil) < sum.MantExp(nil)-int(prec)
}

func piFloat(prec uint) *big.Float {
	z := newFloat(prec)
	bigfloat.Pi(z)
	return z
}

func eFloat(prec uint) *big.Float {
	z := newFloat(prec)
	bigfloat.Exp(z, floatInt(prec, 1))
	return z
}

// expFloat computes e^x. bigfloat.Exp refines only to the precision of its
// input, so x is widened to prec first.
func expFloat(prec uint, x *big.Float) *big.Float {
	z := newFloat(prec)
	bigfloat.Exp(z, newFloat(prec).Set(x))
	return z
}

// logFloat computes the natural logarithm of x > 0.
func logFloat(prec uint, x *big.Float) *big.Float {
	z := newFloat(prec)
	bigfloat.Log(z, x)
	return z
}

func sqrtFloat(prec uint, x *big.Float) *big.Float {
	return newFloat(prec).Sqrt(x)
}

// sinCos computes sin(x) and cos(x).
func sinCos(prec uint, x *big.Float) (sin, cos *big.Float) {
	w := prec + guard
	if e := x.MantExp(nil); e > 0 {
		w += uint(e)
	}
	r := newFloat(w).Set(x)
	twoPi := piFloat(w)
	twoPi.SetMantExp(twoPi, 1)
	k, _ := newFloat(w).Quo(r, twoPi).Int(nil)
	r.Sub(r, newFloat(w).Mul(newFloat(w).SetInt(k), twoPi))
	// Halve the argument, sum the series, then double back up.
	const halvings = 8
	r.SetMantExp(r, -halvings)
	r2 := newFloat(w).Mul(r, r)
	s, c := newFloat(w).Set(r), floatInt(w, 1)
	st, ct := newFloat(w).Set(r), floatInt(w, 1)
	for n := int64(1); ; n++ {
		st.Mul(st, r2)
		st.Quo(st, floatInt(w, -(2*n)*(2*n+1)))
		ct.Mul(ct, r2)
		ct.Quo(ct, floatInt(w, -(2*n-1)*(2*n)))
		s.Add(s, st)
		c.Add(c, ct)
		if negligible(st, s, w) && negligible(ct, c, w) {
			break
		}
	}
	for i := 0; i < halvings; i++ {
		s2 := newFloat(w).Mul(s, c)
		s2.SetMantExp(s2, 1)
		c2 := newFloat(w).Mul(s, s)
		c2.SetMantExp(c2, 1)
		c2.Sub(floatInt(w, 1), c2)
		s, c = s2, c2
	}
	return newFloat(prec).Set(s), newFloat(prec).Set(c)
}

// atanFloat computes the arctangent of x.
func atanFloat(prec uint, x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return newFloat(prec)
	}
	w := prec + guard
	a := newFloat(w).Abs(x)
	invert := a.Cmp(floatInt(w, 1)) > 0
	if invert {
		a.Quo(floatInt(w, 1), a)
	}
	// atan(a) = 2 atan(a / (1 + sqrt(1 + a^2)))
	const reductions = 8
	for i := 0; i < reductions; i++ {
		t := newFloat(w).Mul(a, a)
		t.Add(t, floatInt(w, 1))
		t.Sqrt(t)
		t.Add(t, floatInt(w, 1))
		a.Quo(a, t)
	}
	a2 := newFloat(w).Mul(a, a)
	a2.Neg(a2)
	sum := newFloat(w).Set(a)
	pw := newFloat(w).Set(a)
	for n := int64(1); ; n++ {
		pw.Mul(pw, a2)
		t := newFloat(w).Quo(pw, floatInt(w, 2*n+1))
		sum.Add(sum, t)
		if negligible(t, sum, w) {
			break
		}
	}
	sum.SetMantExp(sum, reductions)
	if invert {
		h := piFloat(w)
		h.SetMantExp(h, -1)
		sum.Sub(h, sum)
	}
	if x.Sign() < 0 {
		sum.Neg(sum)
	}
	return newFloat(prec).Set(sum)
}

// asinFloat computes the arcsine of x for |x| <= 1.
func asinFloat(prec uint, x *big.Float) *big.Float {
	w := prec + guard
	switch newFloat(w).Abs(x).Cmp(floatInt(w, 1)) {
	case 0:
		h := piFloat(prec)
		h.SetMantExp(h, -1)
		if x.Sign() < 0 {
			h.Neg(h)
		}
		return h
	}
	// asin(x) = atan(x / sqrt(1 - x^2))
	t := newFloat(w).Mul(x, x)
	t.Sub(floatInt(w, 1), t)
	t.Sqrt(t)
	t.Quo(x, t)
	return atanFloat(prec, t)
}

// atan2Float computes the angle of the point (x, y).
func atan2Float(prec uint, y, x *big.Float) *big.Float {
	w := prec + guard
	switch {
	case x.Sign() > 0:
		return atanFloat(prec, newFloat(w).Quo(y, x))
	case x.Sign() < 0:
		r := atanFloat(w, newFloat(w).Quo(y, x))
		if y.Sign() >= 0 {
			r.Add(r, piFloat(w))
		} else {
			r.Sub(r, piFloat(w))
		}
		return newFloat(prec).Set(r)
	}
	h := piFloat(prec)
	h.SetMantExp(h, -1)
	if y.Sign() < 0 {
		h.Neg(h)
	}
	return h
}

// sinhCosh computes the hyperbolic sine and cosine of x.
func sinhCosh(prec uint, x *big.Float) (sinh, cosh *big.Float) {
	w := prec + guard
	if e := x.MantExp(nil); e < 0 {
		// Cancellation in e^x - e^-x loses about -e bits.
		w += uint(-e)
	}
	ex := expFloat(w, x)
	inv := newFloat(w).Quo(floatInt(w, 1), ex)
	s := newFloat(w).Sub(ex, inv)
	s.SetMantExp(s, -1)
	c := newFloat(w).Add(ex, inv)
	c.SetMantExp(c, -1)
	return newFloat(prec).Set(s), newFloat(prec).Set(c)
}

// eulerGammaFloat computes the Euler-Mascheroni constant by the
// Brent-McMillan algorithm.
func eulerGammaFloat(prec uint) *big.Float {
	w := 2*prec + guard
	// The error is about e^(-4n).
	n := int64(float64(prec)*0.1733) + 2
	nf := floatInt(w, n)
	n2 := newFloat(w).Mul(nf, nf)
	a := logFloat(w, nf)
	a.Neg(a)
	b := floatInt(w, 1)
	u := newFloat(w).Set(a)
	v := floatInt(w, 1)
	limit := 4*n + 16
	for k := int64(1); k <= limit; k++ {
		kf := floatInt(w, k)
		b.Mul(b, n2)
		b.Quo(b, kf)
		b.Quo(b, kf)
		a.Mul(a, n2)
		a.Quo(a, kf)
		a.Add(a, b)
		a.Quo(a, kf)
		u.Add(u, a)
		v.Add(v, b)
	}
	return newFloat(prec).Quo(u, v)
}

// constFloat evaluates a real constant.
func constFloat(c Const, prec uint) *big.Float {
	switch c {
	case Pi:
		return piFloat(prec)
	case E:
		return eFloat(prec)
	case EulerGamma:
		return eulerGammaFloat(prec)
	}
	panic("sym: no real value for " + constNames[c])
}
