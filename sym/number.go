package sym

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Integer is an exact integer.
type Integer struct {
	v *big.Int
}

// Rational is an exact fraction whose denominator is not 1. Constructors
// produce an Integer instead when the value is integral.
type Rational struct {
	v *big.Rat
}

// Real is an arbitrary-precision real number tagged with the number of
// decimal digits it was constructed with. Reals are always finite.
type Real struct {
	v      *big.Float
	digits uint
}

// NewInt creates an exact integer.
func NewInt(x int64) *Integer {
	return &Integer{v: big.NewInt(x)}
}

// NewBigInt creates an exact integer from a copy of x.
func NewBigInt(x *big.Int) *Integer {
	return &Integer{v: new(big.Int).Set(x)}
}

// NewRat creates an exact rational number. If the denominator divides the
// numerator, the result is an Integer.
func NewRat(a, b int64) Expr {
	return newRat(big.NewRat(a, b))
}

func newRat(r *big.Rat) Expr {
	if r.IsInt() {
		return &Integer{v: new(big.Int).Set(r.Num())}
	}
	return &Rational{v: new(big.Rat).Set(r)}
}

// ParseInteger constructs an exact integer from decimal digits. The second
// result is false if s is not a plain run of decimal digits.
func ParseInteger(s string) (*Integer, bool) {
	if s == "" {
		return nil, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return nil, false
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}
	return &Integer{v: v}, true
}

// ParseReal constructs a real from decimal text at the given number of
// significant decimal digits.
func ParseReal(s string, digits uint) (Expr, error) {
	if digits < 1 {
		digits = 1
	}
	f, _, err := new(big.Float).SetPrec(DigitsToBits(digits)).Parse(s, 10)
	if err != nil {
		return nil, err
	}
	return NewReal(f, digits), nil
}

// NewReal creates a real from a copy of f rounded to the given number of
// decimal digits. Infinite values become the corresponding infinity.
func NewReal(f *big.Float, digits uint) Expr {
	if f.IsInf() {
		if f.Signbit() {
			return NegInfinity
		}
		return Infinity
	}
	if digits < 1 {
		digits = 1
	}
	v := new(big.Float).SetPrec(DigitsToBits(digits)).Set(f)
	return &Real{v: v, digits: digits}
}

// newFloat64 converts a float64 result to an expression.
func newFloat64(f float64, digits uint) Expr {
	switch {
	case math.IsNaN(f):
		return NaN
	case math.IsInf(f, 1):
		return Infinity
	case math.IsInf(f, -1):
		return NegInfinity
	}
	return NewReal(new(big.Float).SetFloat64(f), digits)
}

// DigitsToBits converts a count of decimal digits to a binary precision.
func DigitsToBits(digits uint) uint {
	b := math.Round((float64(digits) + 1) * math.Log2(10))
	if b < 1 {
		return 1
	}
	return uint(b)
}

// BitsToDigits converts a binary precision to a count of decimal digits.
func BitsToDigits(bits uint) uint {
	d := math.Round(float64(bits)/math.Log2(10)) - 1
	if d < 1 {
		return 1
	}
	return uint(d)
}

// Int returns a copy of the integer's value.
func (n *Integer) Int() *big.Int { return new(big.Int).Set(n.v) }

// Sign returns -1, 0, or 1.
func (n *Integer) Sign() int { return n.v.Sign() }

func (n *Integer) String() string     { return defaultPrinter.Print(n) }
func (n *Integer) Equal(x Expr) bool { t, ok := x.(*Integer); return ok && t.v.Cmp(n.v) == 0 }
func (*Integer) expr()               {}

// Rat returns a copy of the rational's value.
func (q *Rational) Rat() *big.Rat { return new(big.Rat).Set(q.v) }

// Sign returns -1 or 1.
func (q *Rational) Sign() int { return q.v.Sign() }

func (q *Rational) String() string     { return defaultPrinter.Print(q) }
func (q *Rational) Equal(x Expr) bool { t, ok := x.(*Rational); return ok && t.v.Cmp(q.v) == 0 }
func (*Rational) expr()               {}

// Float returns a copy of the real's value.
func (r *Real) Float() *big.Float { return new(big.Float).Copy(r.v) }

// Digits returns the number of significant decimal digits of the real.
func (r *Real) Digits() uint { return r.digits }

// Sign returns -1, 0, or 1.
func (r *Real) Sign() int { return r.v.Sign() }

func (r *Real) String() string { return defaultPrinter.Print(r) }
func (r *Real) Equal(x Expr) bool {
	t, ok := x.(*Real)
	return ok && t.digits == r.digits && t.v.Cmp(r.v) == 0
}
func (*Real) expr() {}

// Text formats the real in fixed notation when its decimal exponent is
// moderate and in scientific notation otherwise, always with exactly Digits
// significant digits.
func (r *Real) Text() string {
	digits := int(r.digits)
	if r.v.Sign() == 0 {
		return "0.0"
	}
	s := r.v.Text('e', digits-1)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	k := strings.IndexByte(s, 'e')
	mant := strings.Replace(s[:k], ".", "", 1)
	exp, err := strconv.Atoi(s[k+1:])
	if err != nil {
		panic("sym: bad float exponent in " + s)
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	switch {
	case exp >= 0 && exp < digits:
		b.WriteString(mant[:exp+1])
		b.WriteByte('.')
		b.WriteString(mant[exp+1:])
	case exp < 0 && exp >= -5:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -exp-1))
		b.WriteString(mant)
	default:
		b.WriteString(mant[:1])
		b.WriteByte('.')
		b.WriteString(mant[1:])
		b.WriteByte('e')
		if exp >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(exp))
	}
	return b.String()
}

var (
	zero   = NewInt(0)
	one    = NewInt(1)
	negOne = NewInt(-1)
	half   = NewRat(1, 2)
)

// isNumber reports whether x is an Integer, Rational, or Real.
func isNumber(x Expr) bool {
	switch x.(type) {
	case *Integer, *Rational, *Real:
		return true
	}
	return false
}

// exact returns the value of an Integer or Rational.
func exact(x Expr) (*big.Rat, bool) {
	switch x := x.(type) {
	case *Integer:
		return new(big.Rat).SetInt(x.v), true
	case *Rational:
		return new(big.Rat).Set(x.v), true
	}
	return nil, false
}

func isExact(x Expr) bool {
	_, ok := exact(x)
	return ok
}

// numSign returns the sign of a number. x must satisfy isNumber.
func numSign(x Expr) int {
	switch x := x.(type) {
	case *Integer:
		return x.v.Sign()
	case *Rational:
		return x.v.Sign()
	case *Real:
		return x.v.Sign()
	}
	panic("sym: numSign of non-number")
}

func isZero(x Expr) bool { return isNumber(x) && numSign(x) == 0 }

func isExactInt(x Expr, v int64) bool {
	n, ok := x.(*Integer)
	return ok && n.v.IsInt64() && n.v.Int64() == v
}

func isOne(x Expr) bool { return isExactInt(x, 1) }

// realDigits returns the largest digit count among the reals in xs, or 0 if
// there are none.
func realDigits(xs ...Expr) uint {
	var d uint
	for _, x := range xs {
		if r, ok := x.(*Real); ok && r.digits > d {
			d = r.digits
		}
	}
	return d
}

// toFloat converts a number to a big.Float of the given precision.
func toFloat(x Expr, prec uint) *big.Float {
	z := new(big.Float).SetPrec(prec)
	switch x := x.(type) {
	case *Integer:
		z.SetInt(x.v)
	case *Rational:
		z.SetRat(x.v)
	case *Real:
		z.Set(x.v)
	default:
		panic("sym: toFloat of non-number")
	}
	return z
}

// addNum adds two numbers. Exact inputs give exact results; any real makes the
// result real at the larger precision.
func addNum(a, b Expr) Expr {
	if x, ok := exact(a); ok {
		if y, ok := exact(b); ok {
			return newRat(x.Add(x, y))
		}
	}
	d := realDigits(a, b)
	prec := DigitsToBits(d)
	z := toFloat(a, prec)
	return NewReal(z.Add(z, toFloat(b, prec)), d)
}

// mulNum multiplies two numbers.
func mulNum(a, b Expr) Expr {
	if x, ok := exact(a); ok {
		if y, ok := exact(b); ok {
			return newRat(x.Mul(x, y))
		}
	}
	d := realDigits(a, b)
	prec := DigitsToBits(d)
	z := toFloat(a, prec)
	return NewReal(z.Mul(z, toFloat(b, prec)), d)
}

// negNum negates a number.
func negNum(a Expr) Expr {
	switch a := a.(type) {
	case *Integer:
		return &Integer{v: new(big.Int).Neg(a.v)}
	case *Rational:
		return &Rational{v: new(big.Rat).Neg(a.v)}
	case *Real:
		return &Real{v: new(big.Float).Neg(a.v), digits: a.digits}
	}
	panic("sym: negNum of non-number")
}

// cmpNum compares two numbers.
func cmpNum(a, b Expr) int {
	if x, ok := exact(a); ok {
		if y, ok := exact(b); ok {
			return x.Cmp(y)
		}
	}
	prec := DigitsToBits(realDigits(a, b))
	return toFloat(a, prec).Cmp(toFloat(b, prec))
}

// ToInt64 truncates a number toward zero. The second result is false if x is
// not a number or does not fit in an int64.
func ToInt64(x Expr) (int64, bool) {
	switch x := x.(type) {
	case *Integer:
		if !x.v.IsInt64() {
			return 0, false
		}
		return x.v.Int64(), true
	case *Rational:
		q := new(big.Int).Quo(x.v.Num(), x.v.Denom())
		if !q.IsInt64() {
			return 0, false
		}
		return q.Int64(), true
	case *Real:
		i, _ := x.v.Int(nil)
		if !i.IsInt64() {
			return 0, false
		}
		return i.Int64(), true
	}
	return 0, false
}
