package jabr

import (
	"sort"

	"github.com/zephyrtronium/jabr/sym"
)

// Transform is a function or postfix operator. A postfix operator receives
// the running value as its first argument, followed by any arguments written
// after its name.
type Transform func(env *Env, args []sym.Expr) (sym.Expr, error)

var specialValues = map[string]sym.Expr{
	"pi":         sym.Pi,
	"π":          sym.Pi,
	"e":          sym.E,
	"E":          sym.E,
	"i":          sym.I,
	"I":          sym.I,
	"oo":         sym.Infinity,
	"inf":        sym.Infinity,
	"∞":          sym.Infinity,
	"zoo":        sym.ComplexInfinity,
	"nan":        sym.NaN,
	"γ":          sym.EulerGamma,
	"EulerGamma": sym.EulerGamma,
}

var functions = map[string]Transform{
	"sin":   call(sym.Sin),
	"cos":   call(sym.Cos),
	"tan":   call(sym.Tan),
	"cot":   call(sym.Cot),
	"sec":   call(sym.Sec),
	"csc":   call(sym.Csc),
	"asin":  call(sym.Asin),
	"acos":  call(sym.Acos),
	"atan":  call(sym.Atan),
	"acot":  call(sym.Acot),
	"atan2": call(sym.Atan2),

	"sinh":  call(sym.Sinh),
	"cosh":  call(sym.Cosh),
	"tanh":  call(sym.Tanh),
	"asinh": call(sym.Asinh),
	"acosh": call(sym.Acosh),
	"atanh": call(sym.Atanh),

	"exp":  call(sym.Exp),
	"log":  call(sym.Log),
	"ln":   call(sym.Log),
	"sqrt": sqrt,
	"root": root,

	"abs":     call(sym.Abs),
	"sign":    call(sym.Sign),
	"floor":   call(sym.Floor),
	"ceiling": call(sym.Ceiling),
	"re":      call(sym.Re),
	"im":      call(sym.Im),

	"gamma":    call(sym.Gamma),
	"Γ":        call(sym.Gamma),
	"loggamma": call(sym.LogGamma),
	"digamma":  call(sym.Digamma),
	"ψ":        call(sym.Digamma),
	"zeta":     call(sym.Zeta),
	"ζ":        call(sym.Zeta),
	"erf":      call(sym.Erf),
	"erfc":     call(sym.Erfc),

	"factorial":  call(sym.Factorial),
	"factorial2": call(sym.Factorial2),
	"binomial":   call(sym.Binomial),
	"gcd":        call(sym.Gcd),
	"lcm":        call(sym.Lcm),
	"min":        call(sym.Min),
	"max":        call(sym.Max),
}

var postfixOperators = map[string]Transform{
	"N":     evalf,
	"n":     evalf,
	"evalf": evalf,

	"simplify":          unary("simplify", sym.Simplify),
	"expand":            unary("expand", sym.Expand),
	"factor":            unary("factor", sym.Factor),
	"apart":             apart,
	"together":          unary("together", sym.Together),
	"cancel":            unary("cancel", sym.Cancel),
	"trigsimp":          unary("trigsimp", sym.Trigsimp),
	"expand_trig":       unary("expand_trig", sym.ExpandTrig),
	"expand_log":        unary("expand_log", sym.ExpandLog),
	"logcombine":        unary("logcombine", sym.Logcombine),
	"powsimp":           unary("powsimp", sym.Powsimp),
	"expand_power_base": unary("expand_power_base", sym.ExpandPowerBase),
	"expand_power_exp":  unary("expand_power_exp", sym.ExpandPowerExp),

	"diff": diff,
	"subs": subs,
}

// SpecialValue returns the constant with the given name.
func SpecialValue(name string) (sym.Expr, bool) {
	v, ok := specialValues[name]
	return v, ok
}

// Function returns the function with the given name.
func Function(name string) (Transform, bool) {
	f, ok := functions[name]
	return f, ok
}

// PostfixOperator returns the postfix operator with the given name.
func PostfixOperator(name string) (Transform, bool) {
	f, ok := postfixOperators[name]
	return f, ok
}

// Names returns every name in the lexicon in sorted order, e.g. for
// completion.
func Names() []string {
	r := make([]string, 0, len(specialValues)+len(functions)+len(postfixOperators))
	for k := range specialValues {
		r = append(r, k)
	}
	for k := range functions {
		r = append(r, k)
	}
	for k := range postfixOperators {
		if _, ok := functions[k]; !ok {
			r = append(r, k)
		}
	}
	sort.Strings(r)
	return r
}

func call(f *sym.Function) Transform {
	return func(_ *Env, args []sym.Expr) (sym.Expr, error) {
		return f.Call(args...)
	}
}

func unary(name string, f func(sym.Expr) (sym.Expr, error)) Transform {
	return func(_ *Env, args []sym.Expr) (sym.Expr, error) {
		if len(args) != 1 {
			return nil, &sym.ArityError{Func: name, Len: len(args)}
		}
		return f(args[0])
	}
}

func sqrt(_ *Env, args []sym.Expr) (sym.Expr, error) {
	if len(args) != 1 {
		return nil, &sym.ArityError{Func: "sqrt", Len: len(args)}
	}
	return sym.Sqrt(args[0])
}

// root is the principal n-th root.
func root(_ *Env, args []sym.Expr) (sym.Expr, error) {
	if len(args) != 2 {
		return nil, &sym.ArityError{Func: "root", Len: len(args)}
	}
	e, err := sym.Recip(args[1])
	if err != nil {
		return nil, err
	}
	return sym.Power(args[0], e)
}

// evalf evaluates numerically to the environment's precision or to the
// number of digits given as the second argument.
func evalf(env *Env, args []sym.Expr) (sym.Expr, error) {
	switch len(args) {
	case 1:
		return sym.N(args[0], env.Digits())
	case 2:
		n, ok := args[1].(*sym.Integer)
		if !ok {
			return nil, &sym.TypeError{Func: "N", X: args[1], Want: "integer"}
		}
		d, ok := sym.ToInt64(n)
		if !ok || d < 1 {
			return nil, &sym.DomainError{X: n, Arg: 2, Func: "N"}
		}
		return sym.N(args[0], uint(d))
	}
	return nil, &sym.ArityError{Func: "N", Len: len(args)}
}

func apart(_ *Env, args []sym.Expr) (sym.Expr, error) {
	switch len(args) {
	case 1:
		return sym.Apart(args[0])
	case 2:
		v, ok := args[1].(*sym.Symbol)
		if !ok {
			return nil, &sym.TypeError{Func: "apart", X: args[1], Want: "symbol"}
		}
		return sym.ApartIn(args[0], v)
	}
	return nil, &sym.ArityError{Func: "apart", Len: len(args)}
}

// diff differentiates the first argument. The rest are variables, each of
// which may be followed by an order: diff(f, x, 2, y) is the third
// derivative, twice by x and once by y. With no variables, the expression
// must have exactly one free symbol.
func diff(_ *Env, args []sym.Expr) (sym.Expr, error) {
	if len(args) == 0 {
		return nil, &sym.ArityError{Func: "diff", Len: 0}
	}
	x := args[0]
	if len(args) == 1 {
		free := sym.FreeSymbols(x)
		if len(free) != 1 {
			return nil, &sym.TypeError{Func: "diff", X: x, Want: "expression in one variable"}
		}
		return sym.Diff(x, free[0])
	}
	var last *sym.Symbol
	for i, a := range args[1:] {
		var err error
		switch a := a.(type) {
		case *sym.Symbol:
			last = a
			x, err = sym.Diff(x, a)
		case *sym.Integer:
			n, ok := sym.ToInt64(a)
			if last == nil || !ok || n < 1 {
				return nil, &sym.DomainError{X: a, Arg: i + 2, Func: "diff"}
			}
			// The variable itself already differentiated once.
			x, err = sym.DiffN(x, last, int(n-1))
		default:
			return nil, &sym.TypeError{Func: "diff", X: a, Want: "symbol or order"}
		}
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

// subs replaces the second argument with the third in the first.
func subs(_ *Env, args []sym.Expr) (sym.Expr, error) {
	if len(args) != 3 {
		return nil, &sym.ArityError{Func: "subs", Len: len(args)}
	}
	return sym.Subs(args[0], args[1], args[2])
}
