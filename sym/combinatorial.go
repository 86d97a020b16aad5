package sym

import (
	"math"
	"math/big"
)

// maxExactFactorial bounds factorials of reals computed exactly.
const maxExactFactorial = 10000

func initCombinatorial() {
	Factorial.eval = func(args []Expr) (Expr, error) {
		switch x := args[0].(type) {
		case *Integer:
			if x.v.Sign() < 0 {
				return ComplexInfinity, nil
			}
			if !x.v.IsInt64() {
				return nil, nil
			}
			return &Integer{v: new(big.Int).MulRange(1, x.v.Int64())}, nil
		case Const:
			if x == Infinity {
				return Infinity, nil
			}
		}
		return nil, nil
	}
	Factorial.numeric = func(prec uint, args []*big.Float) (*big.Float, uint, error) {
		x := args[0]
		if x.IsInt() {
			if x.Sign() < 0 {
				return nil, 0, errPole
			}
			if x.Cmp(big.NewFloat(maxExactFactorial)) <= 0 {
				n, _ := x.Int64()
				return newFloat(prec).SetInt(new(big.Int).MulRange(1, n)), 0, nil
			}
		}
		f, _ := x.Float64()
		r := math.Gamma(f + 1)
		if math.IsNaN(r) {
			return nil, 0, errPole
		}
		return new(big.Float).SetFloat64(r), float64Digits, nil
	}
	Factorial2.eval = factorial2Eval
	Binomial.eval = binomialEval
	Gcd.eval = func(args []Expr) (Expr, error) {
		return foldInts(args, func(a, b *big.Int) *big.Int {
			return new(big.Int).GCD(nil, nil, a, b)
		}), nil
	}
	Lcm.eval = func(args []Expr) (Expr, error) {
		return foldInts(args, func(a, b *big.Int) *big.Int {
			if a.Sign() == 0 || b.Sign() == 0 {
				return new(big.Int)
			}
			g := new(big.Int).GCD(nil, nil, a, b)
			r := new(big.Int).Mul(a, b)
			return r.Quo(r, g)
		}), nil
	}
	Min.eval = func(args []Expr) (Expr, error) { return pick(args, -1), nil }
	Max.eval = func(args []Expr) (Expr, error) { return pick(args, 1), nil }
}

func factorial2Eval(args []Expr) (Expr, error) {
	x, ok := args[0].(*Integer)
	if !ok || !x.v.IsInt64() {
		return nil, nil
	}
	n := x.v.Int64()
	if n >= 0 {
		r := big.NewInt(1)
		for k := n; k > 1; k -= 2 {
			r.Mul(r, big.NewInt(k))
		}
		return &Integer{v: r}, nil
	}
	if n%2 == 0 {
		return nil, &DomainError{X: x, Func: Factorial2.Name}
	}
	if n < -maxExactExp {
		return nil, nil
	}
	// (k)!! = (k+2)!!/(k+2), starting from (-1)!! = 1.
	r := big.NewRat(1, 1)
	for k := int64(-3); k >= n; k -= 2 {
		r.Quo(r, big.NewRat(k+2, 1))
	}
	return newRat(r), nil
}

func binomialEval(args []Expr) (Expr, error) {
	n, ok := args[0].(*Integer)
	if !ok {
		return nil, nil
	}
	k, ok := args[1].(*Integer)
	if !ok || !k.v.IsInt64() || !n.v.IsInt64() {
		return nil, nil
	}
	nn, kk := n.v.Int64(), k.v.Int64()
	switch {
	case kk < 0:
		return zero, nil
	case nn >= 0:
		if kk > nn {
			return zero, nil
		}
		return &Integer{v: new(big.Int).Binomial(nn, kk)}, nil
	}
	// binomial(n, k) = (-1)^k binomial(k-n-1, k)
	r := new(big.Int).Binomial(kk-nn-1, kk)
	if kk%2 != 0 {
		r.Neg(r)
	}
	return &Integer{v: r}, nil
}

// foldInts folds f over integer arguments, or returns nil if any argument is
// not an Integer.
func foldInts(args []Expr, f func(a, b *big.Int) *big.Int) Expr {
	acc, ok := args[0].(*Integer)
	if !ok {
		return nil
	}
	r := new(big.Int).Abs(acc.v)
	for _, a := range args[1:] {
		n, ok := a.(*Integer)
		if !ok {
			return nil
		}
		r = f(r, new(big.Int).Abs(n.v))
	}
	return &Integer{v: r}
}

// pickDigits is the precision at which min and max compare constants such as
// pi and sqrt(2).
const pickDigits = 30

// pick returns the smallest (dir < 0) or largest argument if all arguments
// are real numbers or real-valued constant expressions, or nil.
func pick(args []Expr, dir int) Expr {
	if len(args) == 1 {
		return args[0]
	}
	if allNumbers(args) {
		best := args[0]
		for _, a := range args[1:] {
			if cmpNum(a, best)*dir > 0 {
				best = a
			}
		}
		return best
	}
	vals := make([]*big.Float, len(args))
	for i, a := range args {
		v, ok := realValue(a)
		if !ok {
			return nil
		}
		vals[i] = v
	}
	k := 0
	for i, v := range vals[1:] {
		if v.Cmp(vals[k])*dir > 0 {
			k = i + 1
		}
	}
	return args[k]
}

// realValue approximates x if it is a real number or an expression without
// free symbols, like pi/2, that evaluates to one.
func realValue(x Expr) (*big.Float, bool) {
	if isNumber(x) {
		return toFloat(x, DigitsToBits(pickDigits)), true
	}
	if len(FreeSymbols(x)) != 0 {
		return nil, false
	}
	r, err := evalf(x, pickDigits)
	if err != nil {
		return nil, false
	}
	v, ok := r.(*Real)
	if !ok {
		return nil, false
	}
	return v.v, true
}
