package jabr

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// statement   = name ':=' statement | command
// command     = relation { '//' postfix }
// postfix     = name | name '(' [ args ] ')'
// relation    = expression [ relop expression ]
// expression  = term { ( '+' | '-' ) term }
// term        = factor { ( '*' | '×' | '/' | '÷' | juxtaposition ) factor }
// factor      = ( '+' | '-' ) factor | exponential
// exponential = factorial [ ( '^' | '**' ) factor ]
// factorial   = primary { '!' | '!!' }
// primary     = num | name | name '(' [ args ] ')' | '(' statement ')' | '[' statement ']' | '{' statement '}'
// args        = statement { ',' statement }
// relop       = '=' | '==' | '<' | '>' | '<=' | '>=' | '!=' | '≤' | '≥' | '≠'
//
// A name is a function call only when the open parenthesis follows it
// immediately, so f(x) is a call but f (x) is a product.

// Parse parses one statement from src. The given options are applied in
// order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Node, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parsestatement(scan, &p)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next(p.eof())
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, -1)
	}
	return n, nil
}

// ParseString is a shortcut to parse a string.
func ParseString(src string, opts ...ParseOption) (*Node, error) {
	return Parse(strings.NewReader(src), opts...)
}

// Every parse function below pushes back the first token it does not use.

func parsestatement(scan *lexer, p *parsectx) (*Node, error) {
	n, err := parsecommand(scan, p)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next(p.eof())
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOp || tok.text != ":=" {
		scan.push(tok)
		return n, nil
	}
	if n.Tag != TagIdentifier {
		return nil, &AssignError{Col: tok.pos, Target: n.String()}
	}
	v, err := parsestatement(scan, p)
	if err != nil {
		return nil, err
	}
	return rule(TagAssignment, n, v), nil
}

func parsecommand(scan *lexer, p *parsectx) (*Node, error) {
	n, err := parserelation(scan, p)
	if err != nil {
		return nil, err
	}
	children := []*Node{n}
	for {
		tok, err := scan.next(p.eof())
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "//" {
			scan.push(tok)
			break
		}
		name, err := scan.next("")
		if err != nil {
			return nil, err
		}
		if name.kind != tokenIdent {
			return nil, &PostfixError{Col: name.pos, Text: name.text}
		}
		post, err := parsename(scan, p, name)
		if err != nil {
			return nil, err
		}
		children = append(children, post)
	}
	if len(children) == 1 {
		return n, nil
	}
	return rule(TagCommand, children...), nil
}

func parserelation(scan *lexer, p *parsectx) (*Node, error) {
	lhs, err := parseexpression(scan, p)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next(p.eof())
	if err != nil {
		return nil, err
	}
	op := relop(tok)
	if op == TagNone {
		scan.push(tok)
		return lhs, nil
	}
	rhs, err := parseexpression(scan, p)
	if err != nil {
		return nil, err
	}
	return rule(TagRelation, lhs, leaf(op, tok), rhs), nil
}

func parseexpression(scan *lexer, p *parsectx) (*Node, error) {
	n, err := parseterm(scan, p)
	if err != nil {
		return nil, err
	}
	children := []*Node{n}
	for {
		tok, err := scan.next(p.eof())
		if err != nil {
			return nil, err
		}
		var m Tag
		switch {
		case tok.kind == tokenOp && tok.text == "+":
			m = TagPlus
		case tok.kind == tokenOp && tok.text == "-":
			m = TagMinus
		default:
			scan.push(tok)
			if len(children) == 1 {
				return n, nil
			}
			return rule(TagExpression, children...), nil
		}
		rhs, err := parseterm(scan, p)
		if err != nil {
			return nil, err
		}
		children = append(children, leaf(m, tok), rhs)
	}
}

func parseterm(scan *lexer, p *parsectx) (*Node, error) {
	n, err := parsefactor(scan, p)
	if err != nil {
		return nil, err
	}
	children := []*Node{n}
	for {
		tok, err := scan.next(p.eof())
		if err != nil {
			return nil, err
		}
		var m *Node
		switch tok.kind {
		case tokenOp:
			switch tok.text {
			case "*", "×":
				m = leaf(TagTimes, tok)
			case "/", "÷":
				m = leaf(TagDividedBy, tok)
			}
		case tokenNum, tokenIdent, tokenOpen:
			// 2 x -> 2 * x
			scan.push(tok)
			m = &Node{Tag: TagTimes, Text: "*", Pos: tok.pos}
		}
		if m == nil {
			scan.push(tok)
			if len(children) == 1 {
				return n, nil
			}
			return rule(TagTerm, children...), nil
		}
		rhs, err := parsefactor(scan, p)
		if err != nil {
			return nil, err
		}
		children = append(children, m, rhs)
	}
}

func parsefactor(scan *lexer, p *parsectx) (*Node, error) {
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenOp && (tok.text == "+" || tok.text == "-") {
		m := TagPlus
		if tok.text == "-" {
			m = TagMinus
		}
		n, err := parsefactor(scan, p)
		if err != nil {
			return nil, err
		}
		return rule(TagFactor, leaf(m, tok), n), nil
	}
	scan.push(tok)
	return parseexponential(scan, p)
}

func parseexponential(scan *lexer, p *parsectx) (*Node, error) {
	n, err := parsefactorial(scan, p)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next(p.eof())
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOp || (tok.text != "^" && tok.text != "**") {
		scan.push(tok)
		return n, nil
	}
	// The exponent is a factor, so exponentiation is right-associative and
	// binds tighter than unary minus on its left only: -2^2 is -(2^2), and
	// 2^-1 is 2^(-1).
	e, err := parsefactor(scan, p)
	if err != nil {
		return nil, err
	}
	return rule(TagExponential, n, e), nil
}

func parsefactorial(scan *lexer, p *parsectx) (*Node, error) {
	n, err := parseprimary(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next(p.eof())
		if err != nil {
			return nil, err
		}
		switch {
		case tok.kind == tokenOp && tok.text == "!":
			n = rule(TagFactorial, n, leaf(TagBang, tok))
		case tok.kind == tokenOp && tok.text == "!!":
			n = rule(TagFactorial, n, leaf(TagDoubleBang, tok))
		default:
			scan.push(tok)
			return n, nil
		}
	}
}

func parseprimary(scan *lexer, p *parsectx) (*Node, error) {
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return leaf(TagNumber, tok), nil
	case tokenIdent:
		return parsename(scan, p, tok)
	case tokenOpen:
		match := rightbracket(tok.text)
		p.depth++
		n, err := parsestatement(scan, p)
		if err != nil {
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: tok.text}
			}
			return nil, err
		}
		end, err := scan.next("")
		if err != nil {
			return nil, err
		}
		p.depth--
		if end.kind != tokenClose || end.text != closebrackets[match] {
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
		return n, nil
	case tokenOp:
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
	case tokenClose:
		if p.depth == 0 {
			return nil, &BracketError{Col: tok.pos, Right: tok.text}
		}
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("jabr: unknown token: " + tok.String())
	}
}

// parsename parses a name that has just been scanned, along with its
// argument list if it is a function call.
func parsename(scan *lexer, p *parsectx, name lexToken) (*Node, error) {
	id := leaf(TagIdentifier, name)
	tok, err := scan.next(p.eof())
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOpen || tok.text != "(" || tok.pos != name.pos+utf8.RuneCountInString(name.text) {
		scan.push(tok)
		return id, nil
	}
	args, err := parseargs(scan, p, tok)
	if err != nil {
		return nil, err
	}
	return rule(TagFunction, append([]*Node{id}, args...)...), nil
}

// parseargs parses a possibly empty argument list after its open bracket,
// through the matching close bracket.
func parseargs(scan *lexer, p *parsectx, open lexToken) ([]*Node, error) {
	match := rightbracket(open.text)
	p.depth++
	defer func() { p.depth-- }()
	tok, err := scan.peek("")
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenClose {
		scan.must()
		if tok.text != closebrackets[match] {
			return nil, &BracketError{Col: tok.pos, Left: open.text, Right: tok.text}
		}
		return nil, nil
	}
	var args []*Node
	for {
		n, err := parsestatement(scan, p)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression at the end of the input.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open.text}
			}
			return nil, err
		}
		args = append(args, n)
		end, err := scan.next("")
		if err != nil {
			return nil, err
		}
		switch {
		case end.kind == tokenSep:
			continue
		case end.kind == tokenClose && end.text == closebrackets[match]:
			return args, nil
		default:
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
	}
}

// relop gets the marker tag for a relational operator token, or TagNone if
// the token is not one.
func relop(tok lexToken) Tag {
	if tok.kind != tokenOp {
		return TagNone
	}
	switch tok.text {
	case "=", "==":
		return TagEquals
	case "<":
		return TagLessThan
	case ">":
		return TagGreaterThan
	case "<=", "≤":
		return TagLessThanOrEqual
	case ">=", "≥":
		return TagGreaterThanOrEqual
	case "!=", "≠":
		return TagNotEqual
	default:
		return TagNone
	}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("jabr: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket matching right. If right is no bracket,
// then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket rune index that
// the expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok lexToken, match int) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenOp:
		// E.g. the second operator in a < b < c.
		return &OperatorError{Col: tok.pos, Operator: tok.text}
	default:
		panic("jabr: it really should not have ended this way: " + tok.String())
	}
}
