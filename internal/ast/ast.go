// Package ast defines the parse tree the lexer/parser hand to the
// semantic analyser. The node set is exactly the one the analyser
// contracts against: Literal, Ident, Access, BinaryExpression,
// UnaryExpression, Call, Cast, LetEntry, and Type. Nodes are immutable once built and own
// their children; the analyser only ever reads them.
package ast

// Pos is a 1-based line/column source position, used for error reporting.
type Pos struct {
	Line, Col int
}

// Node is implemented by every AST node. node is unexported so the set of
// node kinds is closed to this package, matching the analyser's
// single-type-switch dispatch style.
type Node interface {
	Pos() Pos
	node()
}

// Expr is the subset of Node that can appear where a scalar expression or
// a table-chain operand is expected (everything but LetEntry).
type Expr interface {
	Node
	expr()
}

// Literal is a constant written in source: a number, string, date,
// boolean, or the null keyword. Text carries the original lexeme; Kind
// says how to interpret it. An untyped Kind (LiteralNull) carries no
// useful Text.
type Literal struct {
	Pos_ Pos
	Kind LiteralKind
	Text string
}

// LiteralKind distinguishes the surface forms a Literal can take.
type LiteralKind uint8

const (
	LiteralInteger LiteralKind = iota
	LiteralDecimal
	LiteralString
	LiteralBool
	LiteralDate
	LiteralInterval
	LiteralNull
)

func (l *Literal) Pos() Pos { return l.Pos_ }
func (*Literal) node()      {}
func (*Literal) expr()      {}

// Access is a dotted reference "base.field", e.g. a column reference
// "o.o_orderkey" or a scope reference "t.c". Both sides are plain
// identifiers; chained access ("a.b.c") nests as Access{Access{a,b}, c}.
type Access struct {
	Pos_  Pos
	Base  Expr
	Field string
}

func (a *Access) Pos() Pos { return a.Pos_ }
func (*Access) node()      {}
func (*Access) expr()      {}

// Ident is a bare identifier, the left-most base of an Access chain or a
// zero-argument reference resolved by the analyser (a let, a builtin, a
// table name, or a bound column).
type Ident struct {
	Pos_ Pos
	Name string
}

func (i *Ident) Pos() Pos { return i.Pos_ }
func (*Ident) node()      {}
func (*Ident) expr()      {}

// BinaryOp enumerates the surface binary operators the lexer can produce.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpConcat
	OpAnd
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLike
	OpIs
	OpIsNot
)

// BinaryExpression is a two-operand infix expression produced by the
// precedence-climbing parser.
type BinaryExpression struct {
	Pos_     Pos
	Op       BinaryOp
	Lhs, Rhs Expr
}

func (b *BinaryExpression) Pos() Pos { return b.Pos_ }
func (*BinaryExpression) node()      {}
func (*BinaryExpression) expr()      {}

// UnaryOp enumerates the surface unary (prefix) operators.
type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpPos
	OpNot
)

// UnaryExpression is a single-operand prefix expression.
type UnaryExpression struct {
	Pos_    Pos
	Op      UnaryOp
	Operand Expr
}

func (u *UnaryExpression) Pos() Pos { return u.Pos_ }
func (*UnaryExpression) node()      {}
func (*UnaryExpression) expr()      {}

// FuncArg is one argument in a Call: either positional (Name == "") or
// named ("total: price*qty").
type FuncArg struct {
	Name  string
	Value Expr
}

// Call is a method-style or free-standing function call:
// "table.filter(pred)" parses as Call{Name:"filter", Recv:table,
// Args:[pred]}; a free call like "count()" parses as Call{Name:"count"}
// with Recv == nil. The analyser resolves Name against the builtin table
// first, then against user-defined lets.
type Call struct {
	Pos_ Pos
	Recv Expr // nil for a free-standing call
	Name string
	Args []FuncArg
}

func (c *Call) Pos() Pos { return c.Pos_ }
func (*Call) node()      {}
func (*Call) expr()      {}

// Cast is an explicit "expr: Type" conversion.
type Cast struct {
	Pos_ Pos
	Expr Expr
	Type *Type
}

func (c *Cast) Pos() Pos { return c.Pos_ }
func (*Cast) node()      {}
func (*Cast) expr()      {}

// Type is a parsed type reference: a name ("decimal", "varchar") plus
// zero or more integer arguments (precision/scale, or length).
type Type struct {
	Pos_ Pos
	Name string
	Args []int
}

func (t *Type) Pos() Pos { return t.Pos_ }
func (*Type) node()      {}

// LetEntry is one "let name(args) := body;" (or argument-less "let
// name := body;") declaration at the head of a query.
type LetEntry struct {
	Pos_      Pos
	Name      string
	Signature []LetParam // nil for a value let
	Body      Expr
}

func (l *LetEntry) Pos() Pos { return l.Pos_ }
func (*LetEntry) node()      {}

// LetParam is one formal argument of a callable let: a name and an
// optional default-value expression (re-analysed at each call site, per
// the lazy-by-AST argument semantics).
type LetParam struct {
	Name    string
	Default Expr // nil if the argument is required
}

// ListMarker is the synthetic Call.Name a brace-list "{a, b, name: c}"
// parses into. The analyser recognizes it and expands it into an
// argument list rather than resolving it as a builtin or let.
const ListMarker = "{}"

// Query is the top-level parse result: an ordered list of let
// declarations followed by a single body expression.
type Query struct {
	Lets []*LetEntry
	Body Expr
}
