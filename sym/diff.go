package sym

// Diff differentiates x with respect to v.
func Diff(x Expr, v *Symbol) (Expr, error) {
	switch x := x.(type) {
	case *Symbol:
		if x.Name == v.Name {
			return one, nil
		}
		return zero, nil
	case *Integer, *Rational, *Real, Const:
		return zero, nil
	case *Add:
		ts := make([]Expr, len(x.terms))
		for i, t := range x.terms {
			d, err := Diff(t, v)
			if err != nil {
				return nil, err
			}
			ts[i] = d
		}
		return Sum(ts...), nil
	case *Mul:
		ts := make([]Expr, 0, len(x.factors))
		for i, f := range x.factors {
			d, err := Diff(f, v)
			if err != nil {
				return nil, err
			}
			if isZero(d) {
				continue
			}
			fs := append([]Expr(nil), x.factors...)
			fs[i] = d
			ts = append(ts, Product(fs...))
		}
		return Sum(ts...), nil
	case *Pow:
		return diffPow(x, v)
	case *Call:
		return diffCall(x, v)
	}
	return nil, &TypeError{Func: "diff", X: x, Want: "differentiable expression"}
}

// DiffN differentiates x n times with respect to v.
func DiffN(x Expr, v *Symbol, n int) (Expr, error) {
	for i := 0; i < n; i++ {
		var err error
		x, err = Diff(x, v)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

func diffPow(x *Pow, v *Symbol) (Expr, error) {
	db, err := Diff(x.base, v)
	if err != nil {
		return nil, err
	}
	de, err := Diff(x.exp, v)
	if err != nil {
		return nil, err
	}
	if isZero(de) {
		// e * b^(e-1) * b'
		p, err := Power(x.base, Sub(x.exp, one))
		if err != nil {
			return nil, err
		}
		return Product(x.exp, p, db), nil
	}
	// b^e * (e' log(b) + e b'/b)
	lb, err := Log.Call(x.base)
	if err != nil {
		return nil, err
	}
	q, err := Quo(Product(x.exp, db), x.base)
	if err != nil {
		return nil, err
	}
	return Product(x, Sum(Product(de, lb), q)), nil
}

// derivatives gives f'(u) for single-argument functions.
var derivatives map[*Function]func(u Expr) (Expr, error)

func init() {
	call := func(f *Function, u Expr) Expr {
		r, err := f.Call(u)
		if err != nil {
			return &Call{fn: f, args: []Expr{u}}
		}
		return r
	}
	sq := func(u Expr) Expr { return mustPower(u, NewInt(2)) }
	derivatives = map[*Function]func(u Expr) (Expr, error){
		Sin: func(u Expr) (Expr, error) { return call(Cos, u), nil },
		Cos: func(u Expr) (Expr, error) { return Neg(call(Sin, u)), nil },
		Tan: func(u Expr) (Expr, error) { return Sum(one, sq(call(Tan, u))), nil },
		Cot: func(u Expr) (Expr, error) { return Sub(negOne, sq(call(Cot, u))), nil },
		Sec: func(u Expr) (Expr, error) { return Product(call(Sec, u), call(Tan, u)), nil },
		Csc: func(u Expr) (Expr, error) { return Neg(Product(call(Csc, u), call(Cot, u))), nil },
		Asin: func(u Expr) (Expr, error) {
			return Power(Sub(one, sq(u)), NewRat(-1, 2))
		},
		Acos: func(u Expr) (Expr, error) {
			r, err := Power(Sub(one, sq(u)), NewRat(-1, 2))
			if err != nil {
				return nil, err
			}
			return Neg(r), nil
		},
		Atan:  func(u Expr) (Expr, error) { return Recip(Sum(one, sq(u))) },
		Acot:  func(u Expr) (Expr, error) { r, err := Recip(Sum(one, sq(u))); return negErr(r, err) },
		Sinh:  func(u Expr) (Expr, error) { return call(Cosh, u), nil },
		Cosh:  func(u Expr) (Expr, error) { return call(Sinh, u), nil },
		Tanh:  func(u Expr) (Expr, error) { return Sub(one, sq(call(Tanh, u))), nil },
		Asinh: func(u Expr) (Expr, error) { return Power(Sum(sq(u), one), NewRat(-1, 2)) },
		Acosh: func(u Expr) (Expr, error) { return Power(Sub(sq(u), one), NewRat(-1, 2)) },
		Atanh: func(u Expr) (Expr, error) { return Recip(Sub(one, sq(u))) },
		Exp:   func(u Expr) (Expr, error) { return Power(E, u) },
		Log:   Recip,
		Abs:   func(u Expr) (Expr, error) { return call(Sign, u), nil },
		Sign:  func(Expr) (Expr, error) { return zero, nil },
		Floor: func(Expr) (Expr, error) { return zero, nil },
		Ceiling: func(Expr) (Expr, error) {
			return zero, nil
		},
		Gamma:    func(u Expr) (Expr, error) { return Product(call(Gamma, u), call(Digamma, u)), nil },
		LogGamma: func(u Expr) (Expr, error) { return call(Digamma, u), nil },
		Erf: func(u Expr) (Expr, error) {
			return Product(NewInt(2), mustPower(E, Neg(sq(u))), mustPower(Pi, NewRat(-1, 2))), nil
		},
		Erfc: func(u Expr) (Expr, error) {
			return Product(NewInt(-2), mustPower(E, Neg(sq(u))), mustPower(Pi, NewRat(-1, 2))), nil
		},
		Factorial: func(u Expr) (Expr, error) {
			u1 := Sum(u, one)
			return Product(call(Gamma, u1), call(Digamma, u1)), nil
		},
	}
}

func negErr(x Expr, err error) (Expr, error) {
	if err != nil {
		return nil, err
	}
	return Neg(x), nil
}

func diffCall(x *Call, v *Symbol) (Expr, error) {
	if !Has(x, v) {
		return zero, nil
	}
	switch {
	case x.fn == Log && len(x.args) == 2:
		l, err := Log.Call(x.args[0])
		if err != nil {
			return nil, err
		}
		lb, err := Log.Call(x.args[1])
		if err != nil {
			return nil, err
		}
		q, err := Quo(l, lb)
		if err != nil {
			return nil, err
		}
		return Diff(q, v)
	case x.fn == Atan2:
		// d atan2(y, x) = (x dy - y dx)/(x^2 + y^2)
		y, w := x.args[0], x.args[1]
		dy, err := Diff(y, v)
		if err != nil {
			return nil, err
		}
		dw, err := Diff(w, v)
		if err != nil {
			return nil, err
		}
		return Quo(Sub(Product(w, dy), Product(y, dw)), Sum(mustPower(w, NewInt(2)), mustPower(y, NewInt(2))))
	}
	d, ok := derivatives[x.fn]
	if !ok || len(x.args) != 1 {
		return nil, &TypeError{Func: "diff", X: x, Want: "differentiable function"}
	}
	u := x.args[0]
	du, err := Diff(u, v)
	if err != nil {
		return nil, err
	}
	fu, err := d(u)
	if err != nil {
		return nil, err
	}
	return Product(fu, du), nil
}

// Subs replaces every occurrence of old in x with repl and reevaluates.
func Subs(x, old, repl Expr) (Expr, error) {
	if x.Equal(old) {
		return repl, nil
	}
	return rebuild(x, func(a Expr) (Expr, error) { return Subs(a, old, repl) })
}
