package jabr

import (
	"strconv"

	"github.com/zephyrtronium/jabr/sym"
)

// Compile evaluates a syntax tree in an environment. Assignments anywhere in
// the tree update env as they are evaluated, so an error after an assignment
// leaves that assignment in place. Every error is an *EvaluationError.
func Compile(n *Node, env *Env) (sym.Expr, error) {
	r, err := compile(n, env)
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}
	return r, nil
}

func compile(n *Node, env *Env) (sym.Expr, error) {
	switch n.Tag {
	case TagIdentifier:
		if v, ok := env.Lookup(n.Text); ok {
			return v, nil
		}
		if v, ok := specialValues[n.Text]; ok {
			return v, nil
		}
		return sym.NewSymbol(n.Text), nil
	case TagNumber:
		if v, ok := sym.ParseInteger(n.Text); ok {
			return v, nil
		}
		return sym.ParseReal(n.Text, env.Digits())
	case TagCommand:
		return compileCommand(n, env)
	case TagRelation:
		lhs, err := compile(n.Children[0], env)
		if err != nil {
			return nil, err
		}
		rhs, err := compile(n.Children[2], env)
		if err != nil {
			return nil, err
		}
		return sym.Relate(relops[n.Children[1].Tag], lhs, rhs), nil
	case TagAssignment:
		v, err := compile(n.Children[1], env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(n.Children[0].Text, v); err != nil {
			return nil, err
		}
		return v, nil
	case TagExpression:
		terms := make([]sym.Expr, 0, (len(n.Children)+1)/2)
		neg := false
		for _, c := range n.Children {
			if c.Tag.IsMarker() {
				neg = c.Tag == TagMinus
				continue
			}
			v, err := compile(c, env)
			if err != nil {
				return nil, err
			}
			if neg {
				v = sym.Neg(v)
			}
			terms = append(terms, v)
		}
		return sym.Sum(terms...), nil
	case TagTerm:
		factors := make([]sym.Expr, 0, (len(n.Children)+1)/2)
		div := false
		for _, c := range n.Children {
			if c.Tag.IsMarker() {
				div = c.Tag == TagDividedBy
				continue
			}
			v, err := compile(c, env)
			if err != nil {
				return nil, err
			}
			if div {
				v, err = sym.Recip(v)
				if err != nil {
					return nil, err
				}
			}
			factors = append(factors, v)
		}
		return sym.Product(factors...), nil
	case TagFactor:
		v, err := compile(n.Children[1], env)
		if err != nil {
			return nil, err
		}
		if n.Children[0].Tag == TagMinus {
			v = sym.Neg(v)
		}
		return v, nil
	case TagExponential:
		b, err := compile(n.Children[0], env)
		if err != nil {
			return nil, err
		}
		if len(n.Children) == 1 {
			return b, nil
		}
		e, err := compile(n.Children[1], env)
		if err != nil {
			return nil, err
		}
		return sym.Power(b, e)
	case TagFactorial:
		v, err := compile(n.Children[0], env)
		if err != nil {
			return nil, err
		}
		if n.Children[1].Tag == TagDoubleBang {
			return sym.Factorial2.Call(v)
		}
		return sym.Factorial.Call(v)
	case TagFunction:
		name := n.Children[0].Text
		args, err := compileArgs(n.Children[1:], env)
		if err != nil {
			return nil, err
		}
		f, ok := functions[name]
		if !ok {
			f, ok = postfixOperators[name]
		}
		if !ok {
			return nil, &UnrecognizedFunctionError{Name: name}
		}
		return f(env, args)
	default:
		panic("jabr: cannot compile node " + n.Tag.String())
	}
}

// compileCommand applies the postfix operators of a command in order to the
// value of its primary.
func compileCommand(n *Node, env *Env) (sym.Expr, error) {
	v, err := compile(n.Children[0], env)
	if err != nil {
		return nil, err
	}
	for _, post := range n.Children[1:] {
		name := post.Text
		var args []sym.Expr
		if post.Tag == TagFunction {
			name = post.Children[0].Text
			args, err = compileArgs(post.Children[1:], env)
			if err != nil {
				return nil, err
			}
		}
		op, ok := postfixOperators[name]
		if !ok {
			return nil, &UnrecognizedOperatorError{Name: name}
		}
		v, err = op(env, append([]sym.Expr{v}, args...))
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func compileArgs(ns []*Node, env *Env) ([]sym.Expr, error) {
	args := make([]sym.Expr, len(ns))
	for i, a := range ns {
		v, err := compile(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

var relops = map[Tag]sym.RelOp{
	TagEquals:             sym.Eq,
	TagLessThan:           sym.Lt,
	TagGreaterThan:        sym.Gt,
	TagLessThanOrEqual:    sym.Le,
	TagGreaterThanOrEqual: sym.Ge,
	TagNotEqual:           sym.Ne,
}

// EvaluationError is an error that occurred while compiling a syntax tree.
// Err is one of *UnrecognizedOperatorError, *UnrecognizedFunctionError, or
// an error from package sym such as *sym.DomainError.
type EvaluationError struct {
	Err error
}

func (err *EvaluationError) Error() string {
	return err.Err.Error()
}

func (err *EvaluationError) Unwrap() error {
	return err.Err
}

// UnrecognizedOperatorError is an error indicating a postfix operator name
// that is not in the lexicon.
type UnrecognizedOperatorError struct {
	// Name is the unrecognized name.
	Name string
}

func (err *UnrecognizedOperatorError) Error() string {
	return "unrecognized operator: " + strconv.Quote(err.Name)
}

// UnrecognizedFunctionError is an error indicating a function name that is
// not in the lexicon.
type UnrecognizedFunctionError struct {
	// Name is the unrecognized name.
	Name string
}

func (err *UnrecognizedFunctionError) Error() string {
	return "unrecognized function: " + strconv.Quote(err.Name)
}
