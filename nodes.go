package jabr

import (
	"strconv"
	"strings"
)

// Node is a node in the syntax tree of an input line. Leaves have a Tag of
// TagIdentifier, TagNumber, or one of the marker tags, and carry their source
// Text. Interior nodes carry a rule tag and an ordered list of Children.
//
// Rules with a single child are never produced; the parser inlines them.
type Node struct {
	Tag      Tag
	Text     string
	Children []*Node
	// Pos is the column of the first rune of the node's source.
	Pos int
}

// Tag identifies a lexical category, grammar rule, or marker.
type Tag int8

const (
	TagNone Tag = iota

	// Leaves.
	TagIdentifier
	TagNumber

	// TagCommand is a primary followed by postfix operators. Each postfix is
	// an identifier leaf or a function node whose arguments follow the
	// running value.
	TagCommand
	// TagRelation is lhs, relational marker, rhs.
	TagRelation
	// TagAssignment is an identifier leaf and a value.
	TagAssignment
	// TagExpression is terms, each but the first preceded by TagPlus or
	// TagMinus.
	TagExpression
	// TagTerm is factors, each but the first preceded by TagTimes or
	// TagDividedBy.
	TagTerm
	// TagFactor is TagPlus or TagMinus followed by an operand.
	TagFactor
	// TagExponential is a base and an exponent.
	TagExponential
	// TagFactorial is an operand and TagBang or TagDoubleBang.
	TagFactorial
	// TagFunction is an identifier leaf followed by the arguments.
	TagFunction

	// Markers.
	TagPlus
	TagMinus
	TagTimes
	TagDividedBy
	TagEquals
	TagLessThan
	TagGreaterThan
	TagLessThanOrEqual
	TagGreaterThanOrEqual
	TagNotEqual
	TagBang
	TagDoubleBang
)

var tagNames = [...]string{
	TagNone:               "none",
	TagIdentifier:         "identifier",
	TagNumber:             "number",
	TagCommand:            "command",
	TagRelation:           "relation",
	TagAssignment:         "assignment",
	TagExpression:         "expression",
	TagTerm:               "term",
	TagFactor:             "factor",
	TagExponential:        "exponential",
	TagFactorial:          "factorial",
	TagFunction:           "function",
	TagPlus:               "plus",
	TagMinus:              "minus",
	TagTimes:              "times",
	TagDividedBy:          "divided_by",
	TagEquals:             "equals",
	TagLessThan:           "less_than",
	TagGreaterThan:        "greater_than",
	TagLessThanOrEqual:    "less_than_or_equal",
	TagGreaterThanOrEqual: "greater_than_or_equal",
	TagNotEqual:           "not_equal",
	TagBang:               "bang",
	TagDoubleBang:         "double_bang",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return "Tag(" + strconv.Itoa(int(t)) + ")"
	}
	return tagNames[t]
}

// IsMarker reports whether t tags an operator marker leaf.
func (t Tag) IsMarker() bool {
	return t >= TagPlus
}

func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes leaves as their text and interior nodes as parenthesized lists
// led by the rule name.
func (n *Node) fmt(b *strings.Builder) {
	if n.Children == nil {
		b.WriteString(n.Text)
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Tag.String())
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.fmt(b)
	}
	b.WriteByte(')')
}

func leaf(tag Tag, tok lexToken) *Node {
	return &Node{Tag: tag, Text: tok.text, Pos: tok.pos}
}

func rule(tag Tag, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children, Pos: children[0].Pos}
}
