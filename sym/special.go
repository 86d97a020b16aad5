package sym

import (
	"math"
	"math/big"
)

// float64Digits is the number of decimal digits the float64 special
// functions can deliver.
const float64Digits = 15

// digamma computes the logarithmic derivative of the gamma function. Poles
// give NaN.
func digamma(x float64) float64 {
	if x <= 0 && x == math.Floor(x) {
		return math.NaN()
	}
	if x < 0 {
		// Reflection: psi(1-x) - psi(x) = pi cot(pi x)
		return digamma(1-x) - math.Pi/math.Tan(math.Pi*x)
	}
	r := 0.0
	for x < 6 {
		r -= 1 / x
		x++
	}
	f := 1 / (x * x)
	t := f * (-1.0/12 + f*(1.0/120+f*(-1.0/252+f*(1.0/240+f*(-1.0/132)))))
	return r + math.Log(x) - 0.5/x + t
}

// zeta computes the Riemann zeta function on the reals. The pole at 1 gives
// NaN.
func zeta(s float64) float64 {
	switch {
	case s == 1:
		return math.NaN()
	case math.IsInf(s, 1):
		return 1
	case s == 0:
		return -0.5
	case s < 0.5:
		// Functional equation.
		if s < 0 && s == math.Floor(s) && math.Mod(s, 2) == 0 {
			return 0
		}
		return math.Pow(2, s) * math.Pow(math.Pi, s-1) * math.Sin(math.Pi*s/2) * math.Gamma(1-s) * zeta(1-s)
	case s > 60:
		return 1 + math.Pow(2, -s)
	}
	// Borwein's alternating series acceleration.
	const n = 30
	var d [n + 1]float64
	t, sum := 1.0, 1.0
	d[0] = 1
	for i := 1; i <= n; i++ {
		t *= float64(4*(n+i-1)*(n-i+1)) / float64((2*i)*(2*i-1))
		sum += t
		d[i] = sum
	}
	acc := 0.0
	sign := 1.0
	for k := 0; k < n; k++ {
		acc += sign * (d[k] - d[n]) / math.Pow(float64(k+1), s)
		sign = -sign
	}
	return -acc / (d[n] * (1 - math.Pow(2, 1-s)))
}

func initSpecial() {
	Gamma.eval = gammaEval
	Gamma.numeric = approx(func(x float64) (float64, error) {
		r := math.Gamma(x)
		if math.IsNaN(r) {
			return 0, errPole
		}
		return r, nil
	})
	LogGamma.eval = func(args []Expr) (Expr, error) {
		x := args[0]
		switch {
		case isOne(x) || isExactInt(x, 2):
			return zero, nil
		case x == Infinity:
			return Infinity, nil
		}
		if n, ok := x.(*Integer); ok && n.v.Sign() <= 0 {
			return Infinity, nil
		}
		return nil, nil
	}
	LogGamma.numeric = approx(func(x float64) (float64, error) {
		r, sign := math.Lgamma(x)
		if sign < 0 {
			return 0, argError(1)
		}
		return r, nil
	})
	Digamma.eval = digammaEval
	Digamma.numeric = approx(func(x float64) (float64, error) {
		r := digamma(x)
		if math.IsNaN(r) {
			return 0, errPole
		}
		return r, nil
	})
	Zeta.eval = zetaEval
	Zeta.numeric = approx(func(x float64) (float64, error) {
		r := zeta(x)
		if math.IsNaN(r) {
			return 0, errPole
		}
		return r, nil
	})
	Erf.eval = func(args []Expr) (Expr, error) {
		x := args[0]
		switch {
		case isExactInt(x, 0):
			return zero, nil
		case x == Infinity:
			return one, nil
		case isNegativeTerm(x):
			return odd(Erf, x)
		}
		return nil, nil
	}
	Erf.numeric = approx(func(x float64) (float64, error) { return math.Erf(x), nil })
	Erfc.eval = func(args []Expr) (Expr, error) {
		x := args[0]
		switch {
		case isExactInt(x, 0):
			return one, nil
		case x == Infinity:
			return zero, nil
		case x == NegInfinity:
			return NewInt(2), nil
		}
		return nil, nil
	}
	Erfc.numeric = approx(func(x float64) (float64, error) { return math.Erfc(x), nil })
}

// approx adapts a float64 function to the catalogue's numeric signature.
// Results carry at most float64Digits digits.
func approx(f func(float64) (float64, error)) numericFunc {
	return func(prec uint, args []*big.Float) (*big.Float, uint, error) {
		x, _ := args[0].Float64()
		r, err := f(x)
		if err != nil {
			return nil, 0, err
		}
		if math.IsNaN(r) {
			return nil, 0, argError(1)
		}
		return new(big.Float).SetFloat64(r), float64Digits, nil
	}
}

func gammaEval(args []Expr) (Expr, error) {
	switch x := args[0].(type) {
	case *Integer:
		if x.v.Sign() <= 0 {
			return ComplexInfinity, nil
		}
		return Factorial.Call(&Integer{v: new(big.Int).Sub(x.v, one.v)})
	case *Rational:
		if x.v.Denom().Cmp(big.NewInt(2)) != 0 {
			return nil, nil
		}
		// x = n + 1/2
		n := new(big.Int).Div(x.v.Num(), x.v.Denom())
		if !n.IsInt64() || n.Int64() > maxExactExp || n.Int64() < -maxExactExp {
			return nil, nil
		}
		var c *big.Rat
		if n.Sign() >= 0 {
			// (2n)! / (4^n n!)
			k := n.Int64()
			num := new(big.Int).MulRange(1, 2*k)
			den := new(big.Int).Lsh(new(big.Int).MulRange(1, k), uint(2*k))
			c = new(big.Rat).SetFrac(num, den)
		} else {
			// (-4)^m m! / (2m)! with m = -n
			m := -n.Int64()
			num := new(big.Int).Lsh(new(big.Int).MulRange(1, m), uint(2*m))
			if m%2 != 0 {
				num.Neg(num)
			}
			c = new(big.Rat).SetFrac(num, new(big.Int).MulRange(1, 2*m))
		}
		return Product(newRat(c), mustPower(Pi, half)), nil
	case Const:
		if x == Infinity {
			return Infinity, nil
		}
	}
	return nil, nil
}

func digammaEval(args []Expr) (Expr, error) {
	switch x := args[0].(type) {
	case *Integer:
		if x.v.Sign() <= 0 {
			return ComplexInfinity, nil
		}
		if !x.v.IsInt64() || x.v.Int64() > maxExactExp {
			return nil, nil
		}
		// -gamma + H(n-1)
		h := new(big.Rat)
		for k := int64(1); k < x.v.Int64(); k++ {
			h.Add(h, big.NewRat(1, k))
		}
		return Sum(newRat(h), Neg(EulerGamma)), nil
	case *Rational:
		if x.Equal(half) {
			l, err := Log.Call(NewInt(2))
			if err != nil {
				return nil, err
			}
			return Sum(Neg(EulerGamma), Product(NewInt(-2), l)), nil
		}
	case Const:
		if x == Infinity {
			return Infinity, nil
		}
	}
	return nil, nil
}

// maxBernoulli bounds the index of Bernoulli numbers computed exactly.
const maxBernoulli = 512

// bernoulli computes the Bernoulli number B(n) for n >= 2 by the
// Akiyama-Tanigawa algorithm.
func bernoulli(n int) *big.Rat {
	a := make([]*big.Rat, n+1)
	for m := 0; m <= n; m++ {
		a[m] = big.NewRat(1, int64(m+1))
		for j := m; j >= 1; j-- {
			t := new(big.Rat).Sub(a[j-1], a[j])
			a[j-1] = t.Mul(t, big.NewRat(int64(j), 1))
		}
	}
	return a[0]
}

func zetaEval(args []Expr) (Expr, error) {
	switch x := args[0].(type) {
	case *Integer:
		if !x.v.IsInt64() {
			return nil, nil
		}
		n := x.v.Int64()
		switch {
		case n == 0:
			return NewRat(-1, 2), nil
		case n == 1:
			return ComplexInfinity, nil
		case n < 0 && 1-n <= maxBernoulli:
			// zeta(-k) = -B(k+1)/(k+1)
			m := 1 - n
			b := bernoulli(int(m))
			return newRat(b.Quo(b, big.NewRat(-m, 1))), nil
		case n > 0 && n%2 == 0 && n <= maxBernoulli:
			// zeta(2k) = (-1)^(k+1) B(2k) (2 pi)^(2k) / (2 (2k)!)
			b := bernoulli(int(n))
			c := new(big.Rat).SetFrac(new(big.Int).Lsh(big.NewInt(1), uint(n)), new(big.Int).Lsh(new(big.Int).MulRange(1, n), 1))
			c.Mul(c, b)
			if (n/2)%2 == 0 {
				c.Neg(c)
			}
			return Product(newRat(c), mustPower(Pi, x)), nil
		}
	case Const:
		if x == Infinity {
			return one, nil
		}
	}
	return nil, nil
}
