package sym

// Simplify tries the rewriting strategies of the engine and returns the
// smallest equivalent form. Ties keep the earlier candidate, so an
// expression that cannot be improved is returned unchanged.
func Simplify(x Expr) (Expr, error) {
	if r, ok := x.(*Relation); ok {
		lhs, err := Simplify(r.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := Simplify(r.RHS)
		if err != nil {
			return nil, err
		}
		return Relate(r.Op, lhs, rhs), nil
	}
	x, err := rebuild(x, simplifyArgs)
	if err != nil {
		return nil, err
	}
	best := x
	try := func(f func(Expr) (Expr, error), from Expr) Expr {
		r, err := f(from)
		if err != nil {
			return from
		}
		if size(r) < size(best) {
			best = r
		}
		return r
	}
	e := try(Expand, x)
	try(Trigsimp, x)
	try(Trigsimp, e)
	try(Cancel, x)
	try(Factor, x)
	try(Factor, e)
	try(Together, x)
	try(Powsimp, x)
	try(Logcombine, x)
	return best, nil
}

// simplifyArgs simplifies the arguments of function applications.
func simplifyArgs(x Expr) (Expr, error) {
	if _, ok := x.(*Call); ok {
		return Simplify(x)
	}
	return rebuild(x, simplifyArgs)
}

// Trigsimp applies the Pythagorean identities sin^2 + cos^2 = 1 and
// cosh^2 - sinh^2 = 1 and rewrites sin/cos as tan.
func Trigsimp(x Expr) (Expr, error) {
	x, err := rebuild(x, Trigsimp)
	if err != nil {
		return nil, err
	}
	switch x := x.(type) {
	case *Add:
		r := pythagoras(x.terms, Sin, Cos, one)
		r = pythagoras(r, Cosh, Sinh, negOne)
		return Sum(r...), nil
	case *Mul:
		return tangents(x), nil
	}
	return x, nil
}

// pythagoras replaces pairs of terms c*f(u)^2 and s*c*g(u)^2 with c, where
// s is the sign relating the squares in the identity f^2 + s*g^2 = 1.
func pythagoras(terms []Expr, f, g *Function, s Expr) []Expr {
	type sq struct {
		idx  int
		rest Expr
	}
	fs := make(map[string]sq)
	for i, t := range terms {
		u, rest, ok := squareOf(t, f)
		if !ok {
			continue
		}
		fs[key(u)+"|"+key(rest)] = sq{idx: i, rest: rest}
	}
	if len(fs) == 0 {
		return terms
	}
	used := make(map[int]bool)
	var add []Expr
	for i, t := range terms {
		u, rest, ok := squareOf(t, g)
		if !ok {
			continue
		}
		// The partner term carries rest/s.
		k := key(u) + "|" + key(Product(rest, s))
		m, ok := fs[k]
		if !ok || used[m.idx] {
			continue
		}
		used[m.idx], used[i] = true, true
		add = append(add, m.rest)
	}
	if len(add) == 0 {
		return terms
	}
	r := make([]Expr, 0, len(terms))
	for i, t := range terms {
		if !used[i] {
			r = append(r, t)
		}
	}
	return append(r, add...)
}

// squareOf matches t = rest * f(u)^2.
func squareOf(t Expr, f *Function) (u, rest Expr, ok bool) {
	fs := []Expr{t}
	if m, ok := t.(*Mul); ok {
		fs = m.factors
	}
	for i, x := range fs {
		b, e := splitPow(x)
		if !isExactInt(e, 2) {
			continue
		}
		a, ok := isCall(b, f)
		if !ok {
			continue
		}
		others := make([]Expr, 0, len(fs)-1)
		others = append(others, fs[:i]...)
		others = append(others, fs[i+1:]...)
		return a, Product(others...), true
	}
	return nil, nil, false
}

// tangents rewrites sin(u)^k * cos(u)^-k as tan(u)^k.
func tangents(m *Mul) Expr {
	sins := make(map[string]int)
	for i, f := range m.factors {
		b, _ := splitPow(f)
		if u, ok := isCall(b, Sin); ok {
			sins[key(u)] = i
		}
	}
	if len(sins) == 0 {
		return m
	}
	fs := append([]Expr(nil), m.factors...)
	changed := false
	for j, f := range m.factors {
		b, e := splitPow(f)
		u, ok := isCall(b, Cos)
		if !ok {
			continue
		}
		i, ok := sins[key(u)]
		if !ok {
			continue
		}
		_, se := splitPow(m.factors[i])
		if !Neg(e).Equal(se) {
			continue
		}
		t, err := Tan.Call(u)
		if err != nil {
			continue
		}
		p, err := Power(t, se)
		if err != nil {
			continue
		}
		fs[i], fs[j] = p, one
		changed = true
	}
	if !changed {
		return m
	}
	return Product(fs...)
}
