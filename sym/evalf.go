package sym

// Numeric evaluation first carries evalfGuard extra decimal digits. The guard
// doubles until two successive results agree, up to evalfMaxGuard, so that
// digits lost to cancellation in sums are recovered.
const (
	evalfGuard    = 5
	evalfMaxGuard = 320
)

// N evaluates x numerically to the given number of significant decimal
// digits. Symbols stay symbolic, integer exponents stay exact, and the
// imaginary unit and infinities are unchanged. Functions implemented in
// float64 deliver at most 15 digits regardless of the request.
func N(x Expr, digits uint) (Expr, error) {
	if digits < 1 {
		digits = 1
	}
	var prev Expr
	for g := uint(evalfGuard); ; g *= 2 {
		r, err := evalf(x, digits+g)
		if err != nil {
			return nil, err
		}
		r, err = roundReals(r, digits)
		if err != nil {
			return nil, err
		}
		if g >= evalfMaxGuard || prev != nil && prev.String() == r.String() {
			return r, nil
		}
		prev = r
	}
}

func evalf(x Expr, digits uint) (Expr, error) {
	switch x := x.(type) {
	case *Integer, *Rational, *Real:
		return NewReal(toFloat(x, DigitsToBits(digits)), digits), nil
	case Const:
		switch x {
		case Pi, E, EulerGamma:
			return NewReal(constFloat(x, DigitsToBits(digits)), digits), nil
		}
		return x, nil
	case *Symbol:
		return x, nil
	case *Pow:
		b, err := evalf(x.base, digits)
		if err != nil {
			return nil, err
		}
		e := x.exp
		if _, ok := e.(*Integer); !ok {
			e, err = evalf(e, digits)
			if err != nil {
				return nil, err
			}
		}
		return Power(b, e)
	}
	return rebuild(x, func(a Expr) (Expr, error) { return evalf(a, digits) })
}

// roundReals rounds every real in x with more than digits digits.
func roundReals(x Expr, digits uint) (Expr, error) {
	if r, ok := x.(*Real); ok {
		if r.digits > digits {
			return NewReal(r.v, digits), nil
		}
		return r, nil
	}
	return rebuild(x, func(a Expr) (Expr, error) { return roundReals(a, digits) })
}
