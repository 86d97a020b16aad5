package jabr

import (
	"strings"

	"github.com/zephyrtronium/jabr/sym"
)

// printer renders values in the notation Parse reads.
var printer = &sym.Printer{Override: notation}

// Print renders a value with mathematical glyphs for constants, special
// functions, factorials, and comparisons.
func Print(x sym.Expr) string {
	if r, ok := x.(*sym.Real); ok {
		return trimReal(r.Text(), false)
	}
	return printer.Print(x)
}

var constGlyphs = map[sym.Const]string{
	sym.Pi:              "π",
	sym.E:               "e",
	sym.EulerGamma:      "γ",
	sym.I:               "i",
	sym.Infinity:        "∞",
	sym.NegInfinity:     "-∞",
	sym.ComplexInfinity: "z∞",
	sym.NaN:             "nan",
}

var funcGlyphs = map[*sym.Function]string{
	sym.Abs:     "abs",
	sym.Gamma:   "Γ",
	sym.Digamma: "ψ",
	sym.Zeta:    "ζ",
}

var relGlyphs = map[sym.RelOp]string{
	sym.Eq: "=",
	sym.Lt: "<",
	sym.Gt: ">",
	sym.Le: "≤",
	sym.Ge: "≥",
	sym.Ne: "≠",
}

func notation(p *sym.Printer, x sym.Expr) (string, bool) {
	switch x := x.(type) {
	case sym.Const:
		s, ok := constGlyphs[x]
		return s, ok
	case *sym.Real:
		// Inside a larger expression, 2.0 must not read back as 2.
		return trimReal(x.Text(), true), true
	case *sym.Call:
		args := x.Args()
		switch f := x.Func(); f {
		case sym.Factorial:
			return bang(p, args[0], "!"), true
		case sym.Factorial2:
			return bang(p, args[0], "!!"), true
		default:
			if g, ok := funcGlyphs[f]; ok && len(args) == 1 {
				return g + "(" + p.Print(args[0]) + ")", true
			}
		}
	case *sym.Relation:
		return p.Paren(x.LHS, sym.PrecRelation, true) + " " + relGlyphs[x.Op] + " " + p.Paren(x.RHS, sym.PrecRelation, true), true
	}
	return "", false
}

// bang renders a factorial, parenthesizing the operand unless it is a
// non-negative integer or a symbol.
func bang(p *sym.Printer, x sym.Expr, op string) string {
	switch x := x.(type) {
	case *sym.Symbol:
		return p.Print(x) + op
	case *sym.Integer:
		if x.Sign() >= 0 {
			return p.Print(x) + op
		}
	}
	return "(" + p.Print(x) + ")" + op
}

// trimReal removes trailing zeros from the fraction of a formatted real. If
// nothing remains after the decimal point, point keeps a single zero there;
// otherwise the point is removed too.
func trimReal(s string, point bool) string {
	mant, exp := s, ""
	if k := strings.IndexAny(s, "eE"); k >= 0 {
		mant, exp = s[:k], s[k:]
	}
	if strings.Contains(mant, ".") {
		mant = strings.TrimRight(mant, "0")
		if strings.HasSuffix(mant, ".") {
			if point {
				mant += "0"
			} else {
				mant = mant[:len(mant)-1]
			}
		}
	}
	return mant + exp
}
