package sym

import (
	"errors"
	"math/big"
	"strconv"
)

// Function is a named function from the engine's catalogue. Calling a
// function applies its exact evaluation rules; when every argument is a
// number and at least one is real, the function is evaluated numerically
// instead. Otherwise the call stays unevaluated.
type Function struct {
	// Name is the function's canonical name.
	Name string

	// min and max bound the number of arguments. max < 0 means variadic.
	min, max int
	// eval applies exact rules. A nil result with a nil error means the call
	// stays unevaluated.
	eval func(args []Expr) (Expr, error)
	// numeric evaluates the function on reals at the given binary precision.
	// A nonzero limit is the number of decimal digits the implementation can
	// actually deliver.
	numeric func(prec uint, args []*big.Float) (r *big.Float, limit uint, err error)
}

// Call applies f to args.
func (f *Function) Call(args ...Expr) (Expr, error) {
	if len(args) < f.min || (f.max >= 0 && len(args) > f.max) {
		return nil, &ArityError{Func: f.Name, Len: len(args)}
	}
	for _, a := range args {
		if isNaN(a) {
			return NaN, nil
		}
	}
	if f.numeric != nil && allNumbers(args) && realDigits(args...) > 0 {
		return f.evalReal(args)
	}
	if f.eval != nil {
		r, err := f.eval(args)
		if err != nil || r != nil {
			return r, err
		}
	}
	return &Call{fn: f, args: append([]Expr(nil), args...)}, nil
}

// Hold applies f to args without evaluating, so that factorial2(5) stays a
// call instead of becoming 15.
func (f *Function) Hold(args ...Expr) (*Call, error) {
	if !f.CanCall(len(args)) {
		return nil, &ArityError{Func: f.Name, Len: len(args)}
	}
	return &Call{fn: f, args: append([]Expr(nil), args...)}, nil
}

// CanCall reports whether f accepts n arguments.
func (f *Function) CanCall(n int) bool {
	return n >= f.min && (f.max < 0 || n <= f.max)
}

// errPole indicates that a numeric evaluation hit a pole of the function.
var errPole = errors.New("pole")

// argError indicates that the 1-based argument is outside the function's
// real domain.
type argError int

func (err argError) Error() string {
	return "argument " + strconv.Itoa(int(err)) + " outside domain"
}

func (f *Function) evalReal(args []Expr) (Expr, error) {
	d := realDigits(args...)
	prec := DigitsToBits(d)
	in := make([]*big.Float, len(args))
	for i, a := range args {
		in[i] = toFloat(a, prec)
	}
	r, limit, err := f.numeric(prec, in)
	if err != nil {
		if err == errPole {
			return ComplexInfinity, nil
		}
		var ae argError
		if errors.As(err, &ae) {
			de := &DomainError{X: args[int(ae)-1], Func: f.Name}
			if len(args) > 1 {
				de.Arg = int(ae)
			}
			return nil, de
		}
		return nil, err
	}
	if limit != 0 && d > limit {
		d = limit
	}
	return NewReal(r, d), nil
}

func allNumbers(xs []Expr) bool {
	for _, x := range xs {
		if !isNumber(x) {
			return false
		}
	}
	return true
}

// Call is an unevaluated application of a catalogue function.
type Call struct {
	fn   *Function
	args []Expr
}

// Func returns the applied function.
func (c *Call) Func() *Function { return c.fn }

// Name returns the applied function's name.
func (c *Call) Name() string { return c.fn.Name }

// Args returns a copy of the call's arguments.
func (c *Call) Args() []Expr { return append([]Expr(nil), c.args...) }

func (c *Call) String() string     { return defaultPrinter.Print(c) }
func (c *Call) Equal(x Expr) bool { return key(c) == key(x) }
func (*Call) expr()               {}

// isCall reports whether x applies f to a single argument, returning it.
func isCall(x Expr, f *Function) (Expr, bool) {
	c, ok := x.(*Call)
	if !ok || c.fn != f || len(c.args) != 1 {
		return nil, false
	}
	return c.args[0], true
}
