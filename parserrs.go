package jabr

import (
	"strconv"
	"strings"
)

// OperatorError is an error indicating an operator in a place where the
// grammar does not allow one. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the misplaced operator.
	Operator string
	// Unary is whether the operator appeared where an operand was expected,
	// as in "*x". Otherwise it followed a complete statement, as the second
	// comparison in "a < b < c" does.
	Unary bool
}

func (err *OperatorError) Error() string {
	switch {
	case err.Unary:
		return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" is missing its left operand")
	case isComparison(err.Operator):
		return errpos(err.Col, "comparisons cannot be chained; found "+strconv.Quote(err.Operator)+" after a complete relation")
	}
	return errpos(err.Col, "unexpected operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// isComparison reports whether op is a relational operator token.
func isComparison(op string) bool {
	return strings.ContainsAny(op, "=<>≤≥≠") && op != ":="
}

// BracketError is an error indicating a bracket without a partner, or a pair
// of brackets of different kinds. It implements InputError.
type BracketError struct {
	// Col is the position of the offending bracket, or of the end of the
	// input if a bracket was never closed.
	Col int
	// Left is the opening bracket, if any.
	Left string
	// Right is the closing bracket, if any.
	Right string
}

func (err *BracketError) Error() string {
	switch {
	case err.Left == "":
		return errpos(err.Col, strconv.Quote(err.Right)+" closes nothing")
	case err.Right == "":
		return errpos(err.Col, strconv.Quote(err.Left)+" is never closed")
	}
	return errpos(err.Col, strconv.Quote(err.Left)+" is closed by "+strconv.Quote(err.Right))
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating an argument separator outside the
// argument list of a function or postfix operator. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Sep)+" outside an argument list")
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// AssignError is an error indicating an assignment to something other than a
// name. It implements InputError.
type AssignError struct {
	// Col is the position of the assignment operator.
	Col int
	// Target is the parsed left side of the assignment.
	Target string
}

func (err *AssignError) Error() string {
	return errpos(err.Col, "cannot assign to "+err.Target)
}

func (err *AssignError) Pos() int {
	return err.Col
}

// PostfixError is an error indicating that // is not followed by an operator
// name. It implements InputError.
type PostfixError struct {
	// Col is the position of the token following //.
	Col int
	// Text is the token following //, or empty at the end of the input.
	Text string
}

func (err *PostfixError) Error() string {
	if err.Text == "" {
		return errpos(err.Col, "no operator name after //")
	}
	return errpos(err.Col, "expected operator name after //, got "+strconv.Quote(err.Text))
}

func (err *PostfixError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating a missing operand: an empty
// line, empty brackets, a trailing operator, or an empty argument.
type EmptyExpressionError struct {
	// Col is the position of the token where an operand was expected.
	Col int
	// End is that token, or empty at the end of the input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return errpos(err.Col, "expected an operand before "+strconv.Quote(err.End))
	case err.Col <= 1:
		return errpos(err.Col, "nothing to evaluate")
	}
	return errpos(err.Col, "input ends where an operand was expected")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos prefixes a message with the column it refers to.
func errpos(col int, msg string) string {
	return "col " + strconv.Itoa(col) + ": " + msg
}

// InputError is an error that a line could not be parsed. Every such error
// implements InputError, so that an interactive session can mark the column
// at fault.
type InputError interface {
	error
	// Pos returns the 1-based column, in runes, of the token that caused the
	// error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*AssignError)(nil)
	_ InputError = (*PostfixError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
