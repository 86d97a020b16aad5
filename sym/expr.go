package sym

import (
	"sort"
	"strconv"
	"strings"
)

// Expr is an algebraic value. Values are immutable once constructed; every
// transformation returns a new value.
type Expr interface {
	// String renders the expression in the engine's default notation.
	String() string
	// Equal reports whether two expressions are structurally identical.
	Equal(Expr) bool

	expr()
}

// Symbol is a free variable.
type Symbol struct {
	Name string
}

// NewSymbol creates a free symbol. Two symbols with the same name are equal.
func NewSymbol(name string) *Symbol {
	return &Symbol{Name: name}
}

func (s *Symbol) String() string     { return defaultPrinter.Print(s) }
func (s *Symbol) Equal(x Expr) bool { t, ok := x.(*Symbol); return ok && t.Name == s.Name }
func (*Symbol) expr()               {}

// Const is a named mathematical constant or special value.
type Const int8

const (
	constNone Const = iota
	// Pi is the circle constant.
	Pi
	// E is Euler's number.
	E
	// EulerGamma is the Euler-Mascheroni constant.
	EulerGamma
	// I is the imaginary unit.
	I
	// Infinity is positive real infinity.
	Infinity
	// NegInfinity is negative real infinity.
	NegInfinity
	// ComplexInfinity is the infinity of unknown direction, e.g. 1/0 in the
	// extended complex plane or gamma at its poles.
	ComplexInfinity
	// NaN is the undefined value.
	NaN
)

func (c Const) String() string     { return defaultPrinter.Print(c) }
func (c Const) Equal(x Expr) bool { t, ok := x.(Const); return ok && t == c }
func (Const) expr()               {}

func (c Const) infinite() bool {
	return c == Infinity || c == NegInfinity || c == ComplexInfinity
}

// isInfinite reports whether x is one of the infinities.
func isInfinite(x Expr) bool {
	c, ok := x.(Const)
	return ok && c.infinite()
}

func isNaN(x Expr) bool {
	c, ok := x.(Const)
	return ok && c == NaN
}

// key produces an unambiguous serialization of x. Two expressions are equal
// exactly when their keys are equal.
func key(x Expr) string {
	var b strings.Builder
	writeKey(&b, x)
	return b.String()
}

func writeKey(b *strings.Builder, x Expr) {
	switch x := x.(type) {
	case *Symbol:
		b.WriteByte('s')
		b.WriteString(strconv.Quote(x.Name))
	case Const:
		b.WriteByte('c')
		b.WriteString(strconv.Itoa(int(x)))
	case *Integer:
		b.WriteByte('i')
		b.WriteString(x.v.String())
	case *Rational:
		b.WriteByte('q')
		b.WriteString(x.v.String())
	case *Real:
		b.WriteByte('r')
		b.WriteString(x.v.Text('p', 0))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(x.digits), 10))
	case *Add:
		writeKeys(b, "+", x.terms)
	case *Mul:
		writeKeys(b, "*", x.factors)
	case *Pow:
		writeKeys(b, "^", []Expr{x.base, x.exp})
	case *Call:
		writeKeys(b, "f"+x.fn.Name, x.args)
	case *Relation:
		writeKeys(b, "R"+strconv.Itoa(int(x.Op)), []Expr{x.LHS, x.RHS})
	default:
		panic("sym: unknown expression type")
	}
}

func writeKeys(b *strings.Builder, tag string, xs []Expr) {
	b.WriteString(tag)
	b.WriteByte('(')
	for i, x := range xs {
		if i > 0 {
			b.WriteByte(',')
		}
		writeKey(b, x)
	}
	b.WriteByte(')')
}

// Args returns the direct subexpressions of x in order.
func Args(x Expr) []Expr {
	switch x := x.(type) {
	case *Add:
		return append([]Expr(nil), x.terms...)
	case *Mul:
		return append([]Expr(nil), x.factors...)
	case *Pow:
		return []Expr{x.base, x.exp}
	case *Call:
		return append([]Expr(nil), x.args...)
	case *Relation:
		return []Expr{x.LHS, x.RHS}
	}
	return nil
}

// rebuild reconstructs x from its subexpressions mapped through f, using the
// canonicalizing constructors. Atoms are returned unchanged.
func rebuild(x Expr, f func(Expr) (Expr, error)) (Expr, error) {
	args := Args(x)
	if args == nil {
		return x, nil
	}
	for i, a := range args {
		r, err := f(a)
		if err != nil {
			return nil, err
		}
		args[i] = r
	}
	switch x := x.(type) {
	case *Add:
		return Sum(args...), nil
	case *Mul:
		return Product(args...), nil
	case *Pow:
		return Power(args[0], args[1])
	case *Call:
		return x.fn.Call(args...)
	case *Relation:
		return Relate(x.Op, args[0], args[1]), nil
	}
	panic("sym: rebuild of unknown expression")
}

// Has reports whether y occurs anywhere in x.
func Has(x, y Expr) bool {
	if x.Equal(y) {
		return true
	}
	for _, a := range Args(x) {
		if Has(a, y) {
			return true
		}
	}
	return false
}

// FreeSymbols returns the distinct symbols in x sorted by name.
func FreeSymbols(x Expr) []*Symbol {
	seen := make(map[string]*Symbol)
	collectSymbols(x, seen)
	r := make([]*Symbol, 0, len(seen))
	for _, s := range seen {
		r = append(r, s)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Name < r[j].Name })
	return r
}

func collectSymbols(x Expr, seen map[string]*Symbol) {
	if s, ok := x.(*Symbol); ok {
		seen[s.Name] = s
		return
	}
	for _, a := range Args(x) {
		collectSymbols(a, seen)
	}
}

func hasSymbol(x Expr) bool {
	if _, ok := x.(*Symbol); ok {
		return true
	}
	for _, a := range Args(x) {
		if hasSymbol(a) {
			return true
		}
	}
	return false
}

// size counts the nodes of x. Simplification uses it to pick the smallest
// equivalent form.
func size(x Expr) int {
	n := 1
	for _, a := range Args(x) {
		n += size(a)
	}
	return n
}
