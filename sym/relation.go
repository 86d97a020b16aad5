package sym

// RelOp is a comparison kind.
type RelOp int8

const (
	relNone RelOp = iota
	// Eq is equality.
	Eq
	// Lt is less-than.
	Lt
	// Gt is greater-than.
	Gt
	// Le is less-than-or-equal.
	Le
	// Ge is greater-than-or-equal.
	Ge
	// Ne is inequality.
	Ne
)

// Relation is an unevaluated comparison between two expressions. Relations
// are never decided on construction, so 3 <= 4 stays a relation.
type Relation struct {
	Op  RelOp
	LHS Expr
	RHS Expr
}

// Relate constructs a relation.
func Relate(op RelOp, lhs, rhs Expr) *Relation {
	if op <= relNone || op > Ne {
		panic("sym: invalid relation operator")
	}
	return &Relation{Op: op, LHS: lhs, RHS: rhs}
}

func (r *Relation) String() string     { return defaultPrinter.Print(r) }
func (r *Relation) Equal(x Expr) bool { return key(r) == key(x) }
func (*Relation) expr()               {}
