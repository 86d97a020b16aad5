package jabr

import (
	"sort"

	"github.com/zephyrtronium/jabr/sym"
)

// Reserved names.
const (
	// DigitsName is the name that reads and sets the decimal precision of
	// numeric literals.
	DigitsName = "dps"
	// PrecName is the name that reads and sets the binary precision of
	// numeric literals.
	PrecName = "prec"
	// LastResult is the name bound to the result of each evaluated line.
	LastResult = "_"
)

// DefaultDigits is the decimal precision of a new environment.
const DefaultDigits = 15

// Env is the state of a session: variable bindings and the precision used
// to construct real literals. Setting either precision knob sets the other
// to match. It is not safe to use an Env concurrently.
type Env struct {
	names  map[string]sym.Expr
	digits uint
	prec   uint
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption()
}

type (
	varopt struct {
		name string
		val  sym.Expr
	}
	varsopt   map[string]sym.Expr
	digitsopt uint
	precopt   uint
)

func (varopt) envOption()    {}
func (varsopt) envOption()   {}
func (digitsopt) envOption() {}
func (precopt) envOption()   {}

// SetVar binds a variable in the environment.
func SetVar(name string, val sym.Expr) EnvOption {
	return varopt{name, val}
}

// SetVars binds any number of variables in the environment.
func SetVars(vars map[string]sym.Expr) EnvOption {
	return varsopt(vars)
}

// Digits sets the decimal precision of real literals.
func Digits(digits uint) EnvOption {
	return digitsopt(digits)
}

// Prec sets the binary precision of real literals.
func Prec(prec uint) EnvOption {
	return precopt(prec)
}

// NewEnv creates a new environment. If no precision is given, the default is
// DefaultDigits decimal digits.
func NewEnv(opts ...EnvOption) *Env {
	env := Env{digits: DefaultDigits, prec: sym.DigitsToBits(DefaultDigits)}
	return env.Clone(opts...)
}

// Clone creates a copy of an environment and applies options to it.
// Reserved names in variable options set the precision instead.
func (env *Env) Clone(opts ...EnvOption) *Env {
	n := Env{
		names:  make(map[string]sym.Expr, len(env.names)),
		digits: env.digits,
		prec:   env.prec,
	}
	for k, v := range env.names {
		n.names[k] = v
	}
	// First, check for a precision setting. Loop backward so we apply the last
	// one.
	for i := len(opts) - 1; i >= 0; i-- {
		switch o := opts[i].(type) {
		case digitsopt:
			n.setDigits(uint(o))
		case precopt:
			n.setPrec(uint(o))
		default:
			continue
		}
		break
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.bind(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.bind(k, v)
			}
		case digitsopt, precopt:
			// Already done. Do nothing.
		default:
			panic("jabr: unknown option type")
		}
	}
	return &n
}

// bind stores a value. The precision names are never stored; binding them
// sets the precision, and a value that is not a positive integer panics.
func (env *Env) bind(name string, val sym.Expr) {
	if name == DigitsName || name == PrecName {
		if err := env.Assign(name, val); err != nil {
			panic("jabr: invalid precision option: " + err.Error())
		}
		return
	}
	env.names[name] = val
}

// Assign stores a value under a name. Assigning to DigitsName or PrecName
// changes the precision instead; the value must then be a positive integer.
func (env *Env) Assign(name string, val sym.Expr) error {
	switch name {
	case DigitsName, PrecName:
		n, ok := sym.ToInt64(val)
		if !ok {
			return &sym.TypeError{Func: name, X: val, Want: "positive integer"}
		}
		if n < 1 {
			return &sym.DomainError{X: val, Func: name}
		}
		if name == DigitsName {
			env.setDigits(uint(n))
		} else {
			env.setPrec(uint(n))
		}
	default:
		env.names[name] = val
	}
	return nil
}

func (env *Env) setDigits(digits uint) {
	if digits < 1 {
		digits = 1
	}
	env.digits = digits
	env.prec = sym.DigitsToBits(digits)
}

func (env *Env) setPrec(prec uint) {
	if prec < 1 {
		prec = 1
	}
	env.prec = prec
	env.digits = sym.BitsToDigits(prec)
}

// Lookup returns the value of a name. The reserved precision names read the
// current precision as integers.
func (env *Env) Lookup(name string) (sym.Expr, bool) {
	switch name {
	case DigitsName:
		return sym.NewInt(int64(env.digits)), true
	case PrecName:
		return sym.NewInt(int64(env.prec)), true
	}
	v, ok := env.names[name]
	return v, ok
}

// Digits returns the decimal precision of real literals.
func (env *Env) Digits() uint {
	return env.digits
}

// Prec returns the binary precision of real literals.
func (env *Env) Prec() uint {
	return env.prec
}

// Vars returns the bound names in sorted order.
func (env *Env) Vars() []string {
	r := make([]string, 0, len(env.names))
	for k := range env.names {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
