package sym

import "strconv"

// DomainError is an error returned when an operation is applied to arguments
// outside its domain. Division by zero is a DomainError with Func "/".
type DomainError struct {
	// X is the out-of-domain argument.
	X Expr
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	if err.Func == "/" {
		return "division by zero"
	}
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// ArityError is an error indicating a call with the wrong number of
// arguments.
type ArityError struct {
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments supplied.
	Len int
}

func (err *ArityError) Error() string {
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments"
}

// TypeError is an error indicating an argument of the wrong kind, such as a
// number where a symbol is required.
type TypeError struct {
	// Func is the operation that rejected the argument.
	Func string
	// X is the rejected argument.
	X Expr
	// Want describes what was expected.
	Want string
}

func (err *TypeError) Error() string {
	return err.Func + ": expected " + err.Want + ", got " + err.X.String()
}
