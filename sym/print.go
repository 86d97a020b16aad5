package sym

import (
	"strings"
)

// Printer renders expressions as text. Override, if non-nil, is consulted
// for every subexpression before the default rendering; returning false
// falls back to the default.
type Printer struct {
	Override func(p *Printer, x Expr) (string, bool)
}

var defaultPrinter = &Printer{}

// Binding strengths of rendered expressions.
const (
	PrecRelation = 20
	PrecAdd      = 40
	PrecMul      = 50
	PrecPow      = 60
	PrecAtom     = 1000
)

var constNames = [...]string{
	Pi:              "pi",
	E:               "E",
	EulerGamma:      "EulerGamma",
	I:               "I",
	Infinity:        "oo",
	NegInfinity:     "-oo",
	ComplexInfinity: "zoo",
	NaN:             "nan",
}

// Precedence returns the binding strength of x's default rendering.
func Precedence(x Expr) int {
	switch x := x.(type) {
	case *Relation:
		return PrecRelation
	case *Add:
		return PrecAdd
	case *Mul:
		if isNegativeTerm(x) {
			return PrecAdd
		}
		return PrecMul
	case *Rational:
		if x.v.Sign() < 0 {
			return PrecAdd
		}
		return PrecMul
	case *Integer, *Real:
		if numSign(x) < 0 {
			return PrecAdd
		}
	case Const:
		if x == NegInfinity {
			return PrecAdd
		}
	case *Pow:
		switch {
		case x.exp.Equal(half) || x.base == E:
			return PrecAtom
		case isExact(x.exp) && numSign(x.exp) < 0:
			return PrecMul
		}
		return PrecPow
	}
	return PrecAtom
}

// Print renders x.
func (p *Printer) Print(x Expr) string {
	if p.Override != nil {
		if s, ok := p.Override(p, x); ok {
			return s
		}
	}
	switch x := x.(type) {
	case *Symbol:
		return x.Name
	case Const:
		return constNames[x]
	case *Integer:
		return x.v.String()
	case *Rational:
		return x.v.String()
	case *Real:
		return x.Text()
	case *Add:
		return p.add(x)
	case *Mul:
		return p.mul(x)
	case *Pow:
		return p.pow(x)
	case *Call:
		return x.fn.Name + "(" + p.List(x.args) + ")"
	case *Relation:
		return p.relation(x)
	}
	panic("sym: print of unknown expression")
}

// Paren renders x, wrapped in parentheses if it binds more loosely than
// level. If strict, equal binding strength is also wrapped.
func (p *Printer) Paren(x Expr, level int, strict bool) string {
	s := p.Print(x)
	prec := Precedence(x)
	if prec < level || (strict && prec == level) {
		return "(" + s + ")"
	}
	return s
}

// List renders xs separated by commas.
func (p *Printer) List(xs []Expr) string {
	s := make([]string, len(xs))
	for i, x := range xs {
		s[i] = p.Print(x)
	}
	return strings.Join(s, ", ")
}

func (p *Printer) add(x *Add) string {
	var b strings.Builder
	for i, t := range x.terms {
		switch {
		case i == 0:
			b.WriteString(p.Paren(t, PrecAdd, false))
		case isNegativeTerm(t):
			b.WriteString(" - ")
			b.WriteString(p.Paren(Neg(t), PrecAdd, false))
		default:
			b.WriteString(" + ")
			b.WriteString(p.Paren(t, PrecAdd, false))
		}
	}
	return b.String()
}

func (p *Printer) mul(x *Mul) string {
	coeff, rest := splitCoeff(x)
	sign := ""
	if numSign(coeff) < 0 {
		sign = "-"
		coeff = negNum(coeff)
	}
	var num, den []Expr
	switch c := coeff.(type) {
	case *Integer:
		if !isOne(c) {
			num = append(num, c)
		}
	case *Rational:
		if c.v.Num().Cmp(one.v) != 0 {
			num = append(num, &Integer{v: c.v.Num()})
		}
		den = append(den, &Integer{v: c.v.Denom()})
	default:
		num = append(num, c)
	}
	factors := []Expr{rest}
	if m, ok := rest.(*Mul); ok {
		factors = m.factors
	}
	for _, f := range factors {
		if pw, ok := f.(*Pow); ok && isExact(pw.exp) && numSign(pw.exp) < 0 {
			if isExactInt(pw.exp, -1) {
				den = append(den, pw.base)
			} else {
				den = append(den, &Pow{base: pw.base, exp: negNum(pw.exp)})
			}
			continue
		}
		num = append(num, f)
	}
	ns := "1"
	if len(num) > 0 {
		s := make([]string, len(num))
		for i, f := range num {
			s[i] = p.Paren(f, PrecMul, false)
		}
		ns = strings.Join(s, "*")
	}
	switch len(den) {
	case 0:
		return sign + ns
	case 1:
		return sign + ns + "/" + p.Paren(den[0], PrecMul, true)
	}
	s := make([]string, len(den))
	for i, f := range den {
		s[i] = p.Paren(f, PrecMul, false)
	}
	return sign + ns + "/(" + strings.Join(s, "*") + ")"
}

func (p *Printer) pow(x *Pow) string {
	switch {
	case x.exp.Equal(half):
		return "sqrt(" + p.Print(x.base) + ")"
	case isExact(x.exp) && numSign(x.exp) < 0:
		if isExactInt(x.exp, -1) {
			return "1/" + p.Paren(x.base, PrecMul, true)
		}
		return "1/" + p.Paren(&Pow{base: x.base, exp: negNum(x.exp)}, PrecMul, true)
	case x.base == E:
		return "exp(" + p.Print(x.exp) + ")"
	}
	return p.Paren(x.base, PrecPow, true) + "**" + p.Paren(x.exp, PrecPow, true)
}

var relNames = [...]string{
	Eq: "==",
	Lt: "<",
	Gt: ">",
	Le: "<=",
	Ge: ">=",
	Ne: "!=",
}

func (p *Printer) relation(x *Relation) string {
	switch x.Op {
	case Eq:
		return "Eq(" + p.Print(x.LHS) + ", " + p.Print(x.RHS) + ")"
	case Ne:
		return "Ne(" + p.Print(x.LHS) + ", " + p.Print(x.RHS) + ")"
	}
	return p.Paren(x.LHS, PrecRelation, true) + " " + relNames[x.Op] + " " + p.Paren(x.RHS, PrecRelation, true)
}

// RelSymbol returns the ASCII operator for op.
func RelSymbol(op RelOp) string {
	return relNames[op]
}
