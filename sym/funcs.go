package sym

import (
	"math/big"
)

// The catalogue of named functions. Rules are attached in init so that
// their bodies may refer to the catalogue itself.
var (
	Sin   = &Function{Name: "sin", min: 1, max: 1}
	Cos   = &Function{Name: "cos", min: 1, max: 1}
	Tan   = &Function{Name: "tan", min: 1, max: 1}
	Cot   = &Function{Name: "cot", min: 1, max: 1}
	Sec   = &Function{Name: "sec", min: 1, max: 1}
	Csc   = &Function{Name: "csc", min: 1, max: 1}
	Asin  = &Function{Name: "asin", min: 1, max: 1}
	Acos  = &Function{Name: "acos", min: 1, max: 1}
	Atan  = &Function{Name: "atan", min: 1, max: 1}
	Acot  = &Function{Name: "acot", min: 1, max: 1}
	Atan2 = &Function{Name: "atan2", min: 2, max: 2}

	Sinh  = &Function{Name: "sinh", min: 1, max: 1}
	Cosh  = &Function{Name: "cosh", min: 1, max: 1}
	Tanh  = &Function{Name: "tanh", min: 1, max: 1}
	Asinh = &Function{Name: "asinh", min: 1, max: 1}
	Acosh = &Function{Name: "acosh", min: 1, max: 1}
	Atanh = &Function{Name: "atanh", min: 1, max: 1}

	Exp = &Function{Name: "exp", min: 1, max: 1}
	// Log is the natural logarithm, or the logarithm to the base given as the
	// second argument.
	Log = &Function{Name: "log", min: 1, max: 2}

	Abs     = &Function{Name: "Abs", min: 1, max: 1}
	Sign    = &Function{Name: "sign", min: 1, max: 1}
	Floor   = &Function{Name: "floor", min: 1, max: 1}
	Ceiling = &Function{Name: "ceiling", min: 1, max: 1}
	Re      = &Function{Name: "re", min: 1, max: 1}
	Im      = &Function{Name: "im", min: 1, max: 1}

	Gamma    = &Function{Name: "gamma", min: 1, max: 1}
	LogGamma = &Function{Name: "loggamma", min: 1, max: 1}
	Digamma  = &Function{Name: "digamma", min: 1, max: 1}
	Zeta     = &Function{Name: "zeta", min: 1, max: 1}
	Erf      = &Function{Name: "erf", min: 1, max: 1}
	Erfc     = &Function{Name: "erfc", min: 1, max: 1}

	Factorial  = &Function{Name: "factorial", min: 1, max: 1}
	Factorial2 = &Function{Name: "factorial2", min: 1, max: 1}
	Binomial   = &Function{Name: "binomial", min: 2, max: 2}
	Gcd        = &Function{Name: "gcd", min: 2, max: -1}
	Lcm        = &Function{Name: "lcm", min: 2, max: -1}
	Min        = &Function{Name: "min", min: 1, max: -1}
	Max        = &Function{Name: "max", min: 1, max: -1}
)

func init() {
	Sin.eval, Sin.numeric = sinEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		s, _ := sinCos(prec, x)
		return s, nil
	})
	Cos.eval, Cos.numeric = cosEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		_, c := sinCos(prec, x)
		return c, nil
	})
	Tan.eval, Tan.numeric = tanEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		s, c := sinCos(prec+guard, x)
		return quoOrPole(prec, s, c)
	})
	Cot.eval, Cot.numeric = cotEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		s, c := sinCos(prec+guard, x)
		return quoOrPole(prec, c, s)
	})
	Sec.eval, Sec.numeric = secEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		_, c := sinCos(prec+guard, x)
		return quoOrPole(prec, floatInt(prec, 1), c)
	})
	Csc.eval, Csc.numeric = cscEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		s, _ := sinCos(prec+guard, x)
		return quoOrPole(prec, floatInt(prec, 1), s)
	})
	Asin.eval, Asin.numeric = asinEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		if newFloat(prec).Abs(x).Cmp(floatInt(prec, 1)) > 0 {
			return nil, argError(1)
		}
		return asinFloat(prec, x), nil
	})
	Acos.eval, Acos.numeric = acosEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		if newFloat(prec).Abs(x).Cmp(floatInt(prec, 1)) > 0 {
			return nil, argError(1)
		}
		w := prec + guard
		h := piFloat(w)
		h.SetMantExp(h, -1)
		return newFloat(prec).Sub(h, asinFloat(w, x)), nil
	})
	Atan.eval, Atan.numeric = atanEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		return atanFloat(prec, x), nil
	})
	Acot.eval, Acot.numeric = acotEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		if x.Sign() == 0 {
			h := piFloat(prec)
			return h.SetMantExp(h, -1), nil
		}
		w := prec + guard
		return atanFloat(prec, newFloat(w).Quo(floatInt(w, 1), x)), nil
	})
	Atan2.eval = atan2Eval
	Atan2.numeric = func(prec uint, args []*big.Float) (*big.Float, uint, error) {
		if args[0].Sign() == 0 && args[1].Sign() == 0 {
			return nil, 0, argError(1)
		}
		return atan2Float(prec, args[0], args[1]), 0, nil
	}

	Sinh.eval, Sinh.numeric = sinhEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		s, _ := sinhCosh(prec, x)
		return s, nil
	})
	Cosh.eval, Cosh.numeric = coshEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		_, c := sinhCosh(prec, x)
		return c, nil
	})
	Tanh.eval, Tanh.numeric = tanhEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		s, c := sinhCosh(prec+guard, x)
		return newFloat(prec).Quo(s, c), nil
	})
	Asinh.eval, Asinh.numeric = asinhEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		// log(|x| + sqrt(x^2 + 1)) with the sign of x
		w := prec + guard
		a := newFloat(w).Abs(x)
		t := newFloat(w).Mul(a, a)
		t.Add(t, floatInt(w, 1))
		t.Sqrt(t)
		t.Add(t, a)
		r := logFloat(prec, t)
		if x.Sign() < 0 {
			r.Neg(r)
		}
		return r, nil
	})
	Acosh.eval, Acosh.numeric = acoshEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		w := prec + guard
		if x.Cmp(floatInt(w, 1)) < 0 {
			return nil, argError(1)
		}
		t := newFloat(w).Mul(x, x)
		t.Sub(t, floatInt(w, 1))
		t.Sqrt(t)
		t.Add(t, x)
		return logFloat(prec, t), nil
	})
	Atanh.eval, Atanh.numeric = atanhEval, unary(func(prec uint, x *big.Float) (*big.Float, error) {
		w := prec + guard
		switch newFloat(w).Abs(x).Cmp(floatInt(w, 1)) {
		case 0:
			inf := newFloat(prec).SetInf(x.Sign() < 0)
			return inf, nil
		case 1:
			return nil, argError(1)
		}
		// log((1+x)/(1-x))/2
		n := newFloat(w).Add(floatInt(w, 1), x)
		d := newFloat(w).Sub(floatInt(w, 1), x)
		r := logFloat(w, n.Quo(n, d))
		r.SetMantExp(r, -1)
		return newFloat(prec).Set(r), nil
	})

	Exp.eval = func(args []Expr) (Expr, error) { return Power(E, args[0]) }
	Log.eval, Log.numeric = logEval, logNumeric

	Abs.eval = absEval
	Sign.eval = signEval
	Floor.eval = func(args []Expr) (Expr, error) { return roundEval(args[0], false), nil }
	Ceiling.eval = func(args []Expr) (Expr, error) { return roundEval(args[0], true), nil }
	Re.eval = func(args []Expr) (Expr, error) {
		if re, _, ok := reIm(args[0]); ok {
			return re, nil
		}
		return nil, nil
	}
	Im.eval = func(args []Expr) (Expr, error) {
		if _, im, ok := reIm(args[0]); ok {
			return im, nil
		}
		return nil, nil
	}

	initSpecial()
	initCombinatorial()
}

type numericFunc = func(prec uint, args []*big.Float) (*big.Float, uint, error)

// unary adapts a one-argument real function to the catalogue's numeric
// signature.
func unary(f func(prec uint, x *big.Float) (*big.Float, error)) numericFunc {
	return func(prec uint, args []*big.Float) (*big.Float, uint, error) {
		r, err := f(prec, args[0])
		return r, 0, err
	}
}

func quoOrPole(prec uint, n, d *big.Float) (*big.Float, error) {
	if d.Sign() == 0 {
		return nil, errPole
	}
	return newFloat(prec).Quo(n, d), nil
}

// odd applies f to -x and negates the result.
func odd(f *Function, x Expr) (Expr, error) {
	r, err := f.Call(Neg(x))
	if err != nil {
		return nil, err
	}
	return Neg(r), nil
}

// mustPower is Power for arguments known not to divide by zero.
func mustPower(b, e Expr) Expr {
	r, err := Power(b, e)
	if err != nil {
		panic(err)
	}
	return r
}

// piCoeff returns c if x is c*pi with c exact. Exact zero is 0*pi.
func piCoeff(x Expr) (*big.Rat, bool) {
	if x == Pi {
		return big.NewRat(1, 1), true
	}
	if isExactInt(x, 0) {
		return new(big.Rat), true
	}
	m, ok := x.(*Mul)
	if !ok || len(m.factors) != 2 || m.factors[1] != Pi {
		return nil, false
	}
	return exact(m.factors[0])
}

// sinPi computes sin(r*pi) exactly for r with denominator 1, 2, 3, 4, or 6.
func sinPi(r *big.Rat) (Expr, bool) {
	m := new(big.Rat).Set(r)
	// Reduce into [0, 2).
	k := new(big.Int).Div(m.Num(), new(big.Int).Lsh(m.Denom(), 1))
	m.Sub(m, new(big.Rat).SetInt(k.Lsh(k, 1)))
	neg := false
	if m.Cmp(big.NewRat(1, 1)) >= 0 {
		m.Sub(m, big.NewRat(1, 1))
		neg = true
	}
	if m.Cmp(big.NewRat(1, 2)) > 0 {
		m.Sub(big.NewRat(1, 1), m)
	}
	var v Expr
	switch m.RatString() {
	case "0":
		v = zero
	case "1/6":
		v = half
	case "1/4":
		v = Product(half, mustPower(NewInt(2), half))
	case "1/3":
		v = Product(half, mustPower(NewInt(3), half))
	case "1/2":
		v = one
	default:
		return nil, false
	}
	if neg {
		v = Neg(v)
	}
	return v, true
}

func cosPi(r *big.Rat) (Expr, bool) {
	return sinPi(new(big.Rat).Add(r, big.NewRat(1, 2)))
}

func sinEval(args []Expr) (Expr, error) {
	x := args[0]
	if r, ok := piCoeff(x); ok {
		if v, ok := sinPi(r); ok {
			return v, nil
		}
	}
	if a, ok := isCall(x, Asin); ok {
		return a, nil
	}
	if isNegativeTerm(x) {
		return odd(Sin, x)
	}
	return nil, nil
}

func cosEval(args []Expr) (Expr, error) {
	x := args[0]
	if r, ok := piCoeff(x); ok {
		if v, ok := cosPi(r); ok {
			return v, nil
		}
	}
	if a, ok := isCall(x, Acos); ok {
		return a, nil
	}
	if isNegativeTerm(x) {
		return Cos.Call(Neg(x))
	}
	return nil, nil
}

// trigRatio evaluates n/d at rational multiples of pi, giving complex
// infinity where d vanishes.
func trigRatio(x Expr, n, d func(*big.Rat) (Expr, bool)) (Expr, bool) {
	r, ok := piCoeff(x)
	if !ok {
		return nil, false
	}
	nv, ok := n(r)
	if !ok {
		return nil, false
	}
	dv, ok := d(r)
	if !ok {
		return nil, false
	}
	if isZero(dv) {
		return ComplexInfinity, true
	}
	q, err := Quo(nv, dv)
	if err != nil {
		return nil, false
	}
	return q, true
}

func unit(*big.Rat) (Expr, bool) { return one, true }

func tanEval(args []Expr) (Expr, error) {
	x := args[0]
	if v, ok := trigRatio(x, sinPi, cosPi); ok {
		return v, nil
	}
	if a, ok := isCall(x, Atan); ok {
		return a, nil
	}
	if isNegativeTerm(x) {
		return odd(Tan, x)
	}
	return nil, nil
}

func cotEval(args []Expr) (Expr, error) {
	x := args[0]
	if v, ok := trigRatio(x, cosPi, sinPi); ok {
		return v, nil
	}
	if a, ok := isCall(x, Acot); ok {
		return a, nil
	}
	if isNegativeTerm(x) {
		return odd(Cot, x)
	}
	return nil, nil
}

func secEval(args []Expr) (Expr, error) {
	x := args[0]
	if v, ok := trigRatio(x, unit, cosPi); ok {
		return v, nil
	}
	if isNegativeTerm(x) {
		return Sec.Call(Neg(x))
	}
	return nil, nil
}

func cscEval(args []Expr) (Expr, error) {
	x := args[0]
	if v, ok := trigRatio(x, unit, sinPi); ok {
		return v, nil
	}
	if isNegativeTerm(x) {
		return odd(Csc, x)
	}
	return nil, nil
}

// piTimes returns r*pi.
func piTimes(a, b int64) Expr {
	return Product(NewRat(a, b), Pi)
}

func asinEval(args []Expr) (Expr, error) {
	x := args[0]
	switch {
	case isExactInt(x, 0):
		return zero, nil
	case isOne(x):
		return piTimes(1, 2), nil
	case x.Equal(half):
		return piTimes(1, 6), nil
	case isNegativeTerm(x):
		return odd(Asin, x)
	}
	return nil, nil
}

func acosEval(args []Expr) (Expr, error) {
	x := args[0]
	switch {
	case isOne(x):
		return zero, nil
	case isExactInt(x, 0):
		return piTimes(1, 2), nil
	case x.Equal(half):
		return piTimes(1, 3), nil
	case x.Equal(NewRat(-1, 2)):
		return piTimes(2, 3), nil
	case isExactInt(x, -1):
		return Pi, nil
	}
	return nil, nil
}

func atanEval(args []Expr) (Expr, error) {
	x := args[0]
	switch {
	case isExactInt(x, 0):
		return zero, nil
	case isOne(x):
		return piTimes(1, 4), nil
	case x == Infinity:
		return piTimes(1, 2), nil
	case isNegativeTerm(x):
		return odd(Atan, x)
	}
	return nil, nil
}

func acotEval(args []Expr) (Expr, error) {
	x := args[0]
	switch {
	case isExactInt(x, 0):
		return piTimes(1, 2), nil
	case isOne(x):
		return piTimes(1, 4), nil
	case x == Infinity:
		return zero, nil
	case isNegativeTerm(x):
		return odd(Acot, x)
	}
	return nil, nil
}

func atan2Eval(args []Expr) (Expr, error) {
	y, x := args[0], args[1]
	if !isExact(y) || !isExact(x) {
		return nil, nil
	}
	switch sx, sy := numSign(x), numSign(y); {
	case sx == 0 && sy == 0:
		return NaN, nil
	case sx == 0 && sy > 0:
		return piTimes(1, 2), nil
	case sx == 0:
		return piTimes(-1, 2), nil
	}
	q, err := Quo(y, x)
	if err != nil {
		return nil, err
	}
	a, err := Atan.Call(q)
	if err != nil {
		return nil, err
	}
	switch {
	case numSign(x) > 0:
		return a, nil
	case numSign(y) >= 0:
		return Sum(a, Pi), nil
	}
	return Sub(a, Pi), nil
}

func sinhEval(args []Expr) (Expr, error) {
	x := args[0]
	switch {
	case isExactInt(x, 0):
		return zero, nil
	case x == Infinity:
		return Infinity, nil
	case isNegativeTerm(x):
		return odd(Sinh, x)
	}
	if a, ok := isCall(x, Asinh); ok {
		return a, nil
	}
	return nil, nil
}

func coshEval(args []Expr) (Expr, error) {
	x := args[0]
	switch {
	case isExactInt(x, 0):
		return one, nil
	case x == Infinity:
		return Infinity, nil
	case isNegativeTerm(x):
		return Cosh.Call(Neg(x))
	}
	if a, ok := isCall(x, Acosh); ok {
		return a, nil
	}
	return nil, nil
}

func tanhEval(args []Expr) (Expr, error) {
	x := args[0]
	switch {
	case isExactInt(x, 0):
		return zero, nil
	case x == Infinity:
		return one, nil
	case isNegativeTerm(x):
		return odd(Tanh, x)
	}
	if a, ok := isCall(x, Atanh); ok {
		return a, nil
	}
	return nil, nil
}

func asinhEval(args []Expr) (Expr, error) {
	x := args[0]
	switch {
	case isExactInt(x, 0):
		return zero, nil
	case x == Infinity:
		return Infinity, nil
	case isNegativeTerm(x):
		return odd(Asinh, x)
	}
	return nil, nil
}

func acoshEval(args []Expr) (Expr, error) {
	x := args[0]
	switch {
	case isOne(x):
		return zero, nil
	case x == Infinity:
		return Infinity, nil
	}
	return nil, nil
}

func atanhEval(args []Expr) (Expr, error) {
	x := args[0]
	switch {
	case isExactInt(x, 0):
		return zero, nil
	case isOne(x):
		return Infinity, nil
	case isNegativeTerm(x):
		return odd(Atanh, x)
	}
	return nil, nil
}

func logEval(args []Expr) (Expr, error) {
	x := args[0]
	if len(args) == 2 {
		b := args[1]
		if isOne(x) {
			return zero, nil
		}
		if k, ok := intLog(x, b); ok {
			return k, nil
		}
		lx, err := Log.Call(x)
		if err != nil {
			return nil, err
		}
		lb, err := Log.Call(b)
		if err != nil {
			return nil, err
		}
		return Quo(lx, lb)
	}
	switch {
	case isOne(x):
		return zero, nil
	case x == E:
		return one, nil
	case isExactInt(x, 0):
		return ComplexInfinity, nil
	case x == Infinity || x == NegInfinity:
		return Infinity, nil
	case x == I:
		return Product(I, piTimes(1, 2)), nil
	}
	if p, ok := x.(*Pow); ok && p.base == E && isNumber(p.exp) {
		return p.exp, nil
	}
	if q, ok := x.(*Rational); ok && q.v.Sign() > 0 && q.v.Num().Cmp(one.v) == 0 {
		l, err := Log.Call(&Integer{v: new(big.Int).Set(q.v.Denom())})
		if err != nil {
			return nil, err
		}
		return Neg(l), nil
	}
	if isExact(x) && numSign(x) < 0 {
		l, err := Log.Call(negNum(x))
		if err != nil {
			return nil, err
		}
		return Sum(l, Product(I, Pi)), nil
	}
	return nil, nil
}

// intLog finds k with b^k = x for integers x > 0 and b > 1.
func intLog(x, b Expr) (Expr, bool) {
	xi, ok := x.(*Integer)
	if !ok || xi.v.Sign() <= 0 {
		return nil, false
	}
	bi, ok := b.(*Integer)
	if !ok || bi.v.Cmp(big.NewInt(1)) <= 0 {
		return nil, false
	}
	p := big.NewInt(1)
	for k := int64(0); p.Cmp(xi.v) <= 0; k++ {
		if p.Cmp(xi.v) == 0 {
			return NewInt(k), true
		}
		p.Mul(p, bi.v)
	}
	return nil, false
}

func logNumeric(prec uint, args []*big.Float) (*big.Float, uint, error) {
	w := prec + guard
	x := args[0]
	switch x.Sign() {
	case 0:
		return nil, 0, errPole
	case -1:
		return nil, 0, argError(1)
	}
	r := logFloat(w, x)
	if len(args) == 2 {
		b := args[1]
		if b.Sign() <= 0 {
			return nil, 0, argError(2)
		}
		lb := logFloat(w, b)
		if lb.Sign() == 0 {
			return nil, 0, argError(2)
		}
		r.Quo(r, lb)
	}
	return newFloat(prec).Set(r), 0, nil
}

func absEval(args []Expr) (Expr, error) {
	x := args[0]
	switch x := x.(type) {
	case *Integer, *Rational, *Real:
		if numSign(x) < 0 {
			return negNum(x), nil
		}
		return x, nil
	case Const:
		switch x {
		case Pi, E, EulerGamma:
			return x, nil
		case I:
			return one, nil
		case Infinity, NegInfinity, ComplexInfinity:
			return Infinity, nil
		}
	case *Call:
		if x.fn == Abs {
			return x, nil
		}
	case *Mul:
		c, rest := splitCoeff(x)
		if !isOne(c) {
			a, err := Abs.Call(rest)
			if err != nil {
				return nil, err
			}
			if numSign(c) < 0 {
				c = negNum(c)
			}
			return Product(c, a), nil
		}
	}
	if isNegativeTerm(x) {
		return Abs.Call(Neg(x))
	}
	return nil, nil
}

func signEval(args []Expr) (Expr, error) {
	x := args[0]
	switch x := x.(type) {
	case *Integer, *Rational, *Real:
		return NewInt(int64(numSign(x))), nil
	case Const:
		switch x {
		case Pi, E, EulerGamma, Infinity:
			return one, nil
		case NegInfinity:
			return negOne, nil
		case I:
			return I, nil
		}
	case *Mul:
		c, rest := splitCoeff(x)
		if !isOne(c) {
			s, err := Sign.Call(rest)
			if err != nil {
				return nil, err
			}
			return Product(NewInt(int64(numSign(c))), s), nil
		}
	}
	return nil, nil
}

// roundEval computes floor or ceiling of numbers and infinities, or nil.
func roundEval(x Expr, up bool) Expr {
	var r *big.Int
	switch x := x.(type) {
	case *Integer:
		return x
	case *Rational:
		// Div rounds toward negative infinity for positive divisors.
		r = new(big.Int).Div(x.v.Num(), x.v.Denom())
		if up {
			r.Add(r, big.NewInt(1))
		}
	case *Real:
		r, _ = x.v.Int(nil)
		f := new(big.Float).SetInt(r)
		switch c := x.v.Cmp(f); {
		case c < 0 && !up:
			r.Sub(r, big.NewInt(1))
		case c > 0 && up:
			r.Add(r, big.NewInt(1))
		}
	case Const:
		if x.infinite() {
			return x
		}
		return nil
	default:
		return nil
	}
	return &Integer{v: r}
}

// realKnown reports whether x is known to be real.
func realKnown(x Expr) bool {
	switch x := x.(type) {
	case *Integer, *Rational, *Real:
		return true
	case Const:
		return x == Pi || x == E || x == EulerGamma
	case *Pow:
		return realKnown(x.base) && realKnown(x.exp) && (!isNumber(x.base) || numSign(x.base) > 0)
	case *Add:
		for _, t := range x.terms {
			if !realKnown(t) {
				return false
			}
		}
		return true
	case *Mul:
		for _, f := range x.factors {
			if !realKnown(f) {
				return false
			}
		}
		return true
	}
	return false
}

// reIm splits x into real and imaginary parts when that is possible without
// assumptions about symbols.
func reIm(x Expr) (re, im Expr, ok bool) {
	switch x := x.(type) {
	case Const:
		switch x {
		case I:
			return zero, one, true
		case Infinity, NegInfinity:
			return x, zero, true
		}
	case *Mul:
		var rest []Expr
		imag := false
		for _, f := range x.factors {
			if f == I && !imag {
				imag = true
				continue
			}
			rest = append(rest, f)
		}
		if imag {
			r := Product(rest...)
			if realKnown(r) {
				return zero, r, true
			}
			return nil, nil, false
		}
	case *Add:
		res, ims := make([]Expr, len(x.terms)), make([]Expr, len(x.terms))
		for i, t := range x.terms {
			r, m, ok := reIm(t)
			if !ok {
				return nil, nil, false
			}
			res[i], ims[i] = r, m
		}
		return Sum(res...), Sum(ims...), true
	}
	if realKnown(x) {
		return x, zero, true
	}
	return nil, nil, false
}
