package jabr_test

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/zephyrtronium/jabr"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "1"},
		{"real", "1.5e3", "1.5e3"},
		{"ident", "x", "x"},
		{"greek", "π", "π"},
		{"infinity", "∞", "oo"},
		{"neg", "-x", "(factor - x)"},
		{"plus", "+x", "(factor + x)"},
		{"negneg", "--x", "(factor - (factor - x))"},
		{"add", "1+2", "(expression 1 + 2)"},
		{"sub-add", "1-2+3", "(expression 1 - 2 + 3)"},
		{"mul-div", "2*3/4", "(term 2 * 3 / 4)"},
		{"times-glyphs", "1 × 2 ÷ 3", "(term 1 × 2 ÷ 3)"},
		{"juxtapose", "2 x", "(term 2 * x)"},
		{"juxtapose-tight", "2x y", "(term 2 * x * y)"},
		{"juxtapose-bracket", "2(x+1)", "(term 2 * (expression x + 1))"},
		{"brackets", "[x]{y}", "(term x * y)"},
		{"mul-precedence", "1+2*3", "(expression 1 + (term 2 * 3))"},
		{"pow", "x^2", "(exponential x 2)"},
		{"pow-stars", "x**2", "(exponential x 2)"},
		{"pow-right", "2^3^4", "(exponential 2 (exponential 3 4))"},
		{"pow-neg-base", "-2^2", "(factor - (exponential 2 2))"},
		{"pow-neg-exp", "2^-1", "(exponential 2 (factor - 1))"},
		{"pow-term", "2x^2", "(term 2 * (exponential x 2))"},
		{"fact", "x!", "(factorial x !)"},
		{"fact2", "x!!", "(factorial x !!)"},
		{"fact3", "x!!!", "(factorial (factorial x !!) !)"},
		{"fact-pow", "x!^2", "(exponential (factorial x !) 2)"},
		{"fact-bracket", "(x+1)!", "(factorial (expression x + 1) !)"},
		{"call", "f(x)", "(function f x)"},
		{"call-none", "f()", "(function f)"},
		{"call-two", "atan2(y, x)", "(function atan2 y x)"},
		{"call-nested", "sin(cos(x))", "(function sin (function cos x))"},
		{"call-spaced", "f (x)", "(term f * x)"},
		{"rel-eq", "x = 1", "(relation x = 1)"},
		{"rel-eqeq", "x == 1", "(relation x == 1)"},
		{"rel-le", "a <= b + 1", "(relation a <= (expression b + 1))"},
		{"rel-ne", "3 ≠ 4", "(relation 3 ≠ 4)"},
		{"rel-bang-ne", "3 != 4", "(relation 3 != 4)"},
		{"assign", "x := 5", "(assignment x 5)"},
		{"assign-chain", "x := y := 2", "(assignment x (assignment y 2))"},
		{"assign-inner", "(x := 2) + x", "(expression (assignment x 2) + x)"},
		{"assign-command", "y := x//simplify", "(assignment y (command x simplify))"},
		{"postfix", "x//N", "(command x N)"},
		{"postfix-args", "x//N(20)", "(command x (function N 20))"},
		{"postfix-chain", "(x+1)^2 // expand // factor", "(command (exponential (expression x + 1) 2) expand factor)"},
		{"postfix-relation", "a = b //simplify", "(command (relation a = b) simplify)"},
		{"postfix-in-arg", "f(x//N)", "(function f (command x N))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := jabr.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := n.String(); got != c.want {
				t.Errorf("%q parsed wrong: want %s, got %s", c.src, c.want, got)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	n, err := jabr.ParseString("y := 2x^2! - f(1) //N")
	if err != nil {
		t.Fatal(err)
	}
	var tags []jabr.Tag
	var walk func(*jabr.Node)
	walk = func(n *jabr.Node) {
		tags = append(tags, n.Tag)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	want := []jabr.Tag{
		jabr.TagAssignment,
		jabr.TagIdentifier,
		jabr.TagCommand,
		jabr.TagExpression,
		jabr.TagTerm,
		jabr.TagNumber,
		jabr.TagTimes,
		jabr.TagExponential,
		jabr.TagIdentifier,
		jabr.TagFactorial,
		jabr.TagNumber,
		jabr.TagBang,
		jabr.TagMinus,
		jabr.TagFunction,
		jabr.TagIdentifier,
		jabr.TagNumber,
		jabr.TagIdentifier,
	}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("wrong tags:\nwant %v\ngot  %v", want, tags)
	}
	markers := 0
	for _, tag := range want {
		if tag.String() == "" {
			t.Errorf("tag %d has no name", tag)
		}
		if tag.IsMarker() {
			markers++
		}
	}
	if markers != 3 {
		t.Errorf("wrong number of markers: want 3, got %d", markers)
	}
	for _, tag := range []jabr.Tag{jabr.TagIdentifier, jabr.TagNumber, jabr.TagCommand, jabr.TagFunction} {
		if tag.IsMarker() {
			t.Errorf("%v is a marker", tag)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  interface{}
	}{
		{"empty", "", new(*jabr.EmptyExpressionError)},
		{"open", "(", new(*jabr.BracketError)},
		{"unclosed", "(x", new(*jabr.BracketError)},
		{"unopened", "x)", new(*jabr.BracketError)},
		{"lone-close", ")", new(*jabr.BracketError)},
		{"mismatched", "(x]", new(*jabr.BracketError)},
		{"empty-brackets", "()", new(*jabr.EmptyExpressionError)},
		{"dangling-op", "1 +", new(*jabr.EmptyExpressionError)},
		{"unary-times", "*x", new(*jabr.OperatorError)},
		{"separator", "x, y", new(*jabr.SeparatorError)},
		{"assign-number", "2 := 3", new(*jabr.AssignError)},
		{"assign-sum", "x + y := 3", new(*jabr.AssignError)},
		{"postfix-eof", "x //", new(*jabr.PostfixError)},
		{"postfix-number", "x // 2", new(*jabr.PostfixError)},
		{"relation-chain", "a < b < c", new(*jabr.OperatorError)},
		{"call-unclosed", "f(x,", new(*jabr.BracketError)},
		{"call-trailing", "f(x,)", new(*jabr.EmptyExpressionError)},
		{"call-mismatched", "f(x]", new(*jabr.BracketError)},
		{"lex", "x $ y", new(*jabr.LexError)},
		{"colon", "x : y", new(*jabr.LexError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := jabr.ParseString(c.src)
			if err == nil {
				t.Fatalf("%q parsed without error to %v", c.src, n)
			}
			if !errors.As(err, c.err) {
				t.Errorf("%q gave wrong error type: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			var ie jabr.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q gave %T, which is not an InputError", c.src, err)
			}
			if ie.Pos() < 1 || ie.Pos() > len([]rune(c.src))+1 {
				t.Errorf("%q gave error at impossible position %d", c.src, ie.Pos())
			}
			if err.Error() == "" {
				t.Errorf("%q gave an empty error message", c.src)
			}
		})
	}
}

func TestParseErrorMessages(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"", `^col 1: nothing to evaluate$`},
		{"1 +", `operand was expected`},
		{"()", `operand before "\)"`},
		{"*x", `"\*" is missing its left operand`},
		{"a < b < c", `^col 7: comparisons cannot be chained`},
		{"(x]", `"\(" is closed by "\]"`},
		{"(x", `"\(" is never closed`},
		{"x)", `"\)" closes nothing`},
		{"x, y", `"," outside an argument list`},
		{"2 := 3", `cannot assign to 2`},
		{"x // 2", `expected operator name after //, got "2"`},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := jabr.ParseString(c.src)
			if err == nil {
				t.Fatalf("%q parsed without error", c.src)
			}
			if !regexp.MustCompile(c.msg).MatchString(err.Error()) {
				t.Errorf("%q: message %q does not match %q", c.src, err.Error(), c.msg)
			}
		})
	}
}

func TestParseStopOn(t *testing.T) {
	src := strings.NewReader("x + 1\ny\nx +\n1\n(x\n+ 1)\n")
	want := []string{
		"(expression x + 1)",
		"y",
		"(expression x + 1)",
		"(expression x + 1)",
	}
	for i, w := range want {
		n, err := jabr.Parse(src, jabr.StopOn('\n'))
		if err != nil {
			t.Fatalf("expression %d: %v", i, err)
		}
		if got := n.String(); got != w {
			t.Errorf("expression %d: want %s, got %s", i, w, got)
		}
	}
}

func TestStopOnPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("StopOn(';') did not panic")
		}
	}()
	jabr.StopOn(';')
}
