package algebra

import "github.com/ravelin-sql/saneql/internal/types"

// Expression is implemented by every scalar algebra node. expr is
// unexported, closing the node set to this package; the generator
// dispatches on concrete type via a single type switch rather than a
// per-node virtual method.
type Expression interface {
	// Type returns the node's result type, computed solely from its
	// children and its own parameters — never re-derived by the
	// generator.
	Type() types.Type
	expr()
}

// IURef is a reference to a column produced by some operator in the
// same tree. Its type is always iu.Type().
type IURef struct {
	IU *IU
}

func (r *IURef) Type() types.Type { return r.IU.Type() }
func (*IURef) expr()              {}

// Const is a literal value. Value holds the textual representation for a
// non-null constant and is ignored when Null is true.
type Const struct {
	Value string
	Typ   types.Type
	Null  bool
}

func (c *Const) Type() types.Type { return c.Typ }
func (*Const) expr()               {}

// Cast is an explicit conversion to Typ.
type Cast struct {
	Child Expression
	Typ   types.Type
}

func (c *Cast) Type() types.Type { return c.Typ }
func (*Cast) expr()               {}

// ComparisonMode enumerates the comparison operators, including LIKE and
// the null-safe IS/IS NOT forms (open question in the source resolved
// uniformly: LIKE is one more comparison mode, see §9 of the design
// notes).
type ComparisonMode uint8

const (
	CmpEq ComparisonMode = iota
	CmpNe
	CmpIs
	CmpIsNot
	CmpLt
	CmpLe
	CmpGt
	CmpGe
	CmpLike
)

// Comparison is a two-operand Bool-valued predicate. It is nullable
// unless Mode is CmpIs or CmpIsNot, which are defined to never return
// NULL.
type Comparison struct {
	L, R    Expression
	Mode    ComparisonMode
	Collate string // "" if unspecified
}

func (c *Comparison) Type() types.Type {
	if c.Mode == CmpIs || c.Mode == CmpIsNot {
		return types.BoolType()
	}
	return types.BoolType().WithNullable(c.L.Type().IsNullable() || c.R.Type().IsNullable())
}
func (*Comparison) expr() {}

// Between is "base between lo and hi".
type Between struct {
	Base, Lo, Hi Expression
	Collate      string
}

func (b *Between) Type() types.Type {
	nullable := b.Base.Type().IsNullable() || b.Lo.Type().IsNullable() || b.Hi.Type().IsNullable()
	return types.BoolType().WithNullable(nullable)
}
func (*Between) expr() {}

// In is "probe in (values...)".
type In struct {
	Probe   Expression
	Values  []Expression
	Collate string
}

func (in *In) Type() types.Type {
	nullable := in.Probe.Type().IsNullable()
	for _, v := range in.Values {
		nullable = nullable || v.Type().IsNullable()
	}
	return types.BoolType().WithNullable(nullable)
}
func (*In) expr() {}

// BinaryOp enumerates the arithmetic, logical, and concatenation
// operators available to Binary. Comparisons are never represented here
// — they are always a Comparison node.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinPow
	BinConcat
	BinAnd
	BinOr
)

// Binary is a two-operand arithmetic/logical/concatenation expression.
// The analyser computes Typ via the implicit-cast/promotion table and
// stores it directly; Binary never recomputes it.
type Binary struct {
	L, R Expression
	Op   BinaryOp
	Typ  types.Type
}

func (b *Binary) Type() types.Type { return b.Typ }
func (*Binary) expr()               {}

// UnaryOp enumerates the prefix operators available to Unary.
type UnaryOp uint8

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot
)

// Unary is a single-operand prefix expression.
type Unary struct {
	Child Expression
	Op    UnaryOp
	Typ   types.Type
}

func (u *Unary) Type() types.Type { return u.Typ }
func (*Unary) expr()                {}

// ExtractPart enumerates the date fields Extract can pull out.
type ExtractPart uint8

const (
	ExtractYear ExtractPart = iota
	ExtractMonth
	ExtractDay
)

// Extract pulls a date field out of Child, always as a (possibly
// nullable) Integer.
type Extract struct {
	Child Expression
	Part  ExtractPart
}

func (e *Extract) Type() types.Type {
	return types.IntegerType().WithNullable(e.Child.Type().IsNullable())
}
func (*Extract) expr() {}

// Substr is a substring expression; From and Len are nil when omitted
// (meaning "start" and "to the end" respectively).
type Substr struct {
	Value    Expression
	From, Len Expression
}

func (s *Substr) Type() types.Type {
	nullable := s.Value.Type().IsNullable()
	if s.From != nil {
		nullable = nullable || s.From.Type().IsNullable()
	}
	if s.Len != nil {
		nullable = nullable || s.Len.Type().IsNullable()
	}
	return s.Value.Type().WithNullable(nullable)
}
func (*Substr) expr() {}

// CaseArm is one "when Match then Result" branch of a SimpleCase.
type CaseArm struct {
	Match  Expression
	Result Expression
}

// SimpleCase compares Scrutinee against each arm's Match in turn. Its
// type is the Default arm's type; every arm is unified against it by
// the analyser before the node is built.
type SimpleCase struct {
	Scrutinee Expression
	Arms      []CaseArm
	Default   Expression
}

func (c *SimpleCase) Type() types.Type { return c.Default.Type() }
func (*SimpleCase) expr()               {}

// SearchedArm is one "when Cond then Result" branch of a SearchedCase.
type SearchedArm struct {
	Cond   Expression
	Result Expression
}

// SearchedCase evaluates each arm's Cond in turn. Its type is the
// Default arm's type.
type SearchedCase struct {
	Arms    []SearchedArm
	Default Expression
}

func (c *SearchedCase) Type() types.Type { return c.Default.Type() }
func (*SearchedCase) expr()               {}

// AggFunc enumerates the aggregate functions usable inside an
// AggregateSlot (shared by GroupBy, Aggregate, and Window).
type AggFunc uint8

const (
	AggCountStar AggFunc = iota
	AggCount
	AggSum
	AggAvg
	AggMin
	AggMax
)

// AggregateSlot is one aggregation computed by a GroupBy or a scalar
// Aggregate: a function applied to Arg (nil for AggCountStar), optionally
// deduplicated, bound to IU.
type AggregateSlot struct {
	IU       *IU
	Func     AggFunc
	Distinct bool
	Arg      Expression // nil iff Func == AggCountStar
}

// Aggregate is a scalar expression embedding a sub-plan: it runs Subplan,
// computes Aggregations over its output, and evaluates Computation over
// the aggregation results. Its type is Computation's type.
type Aggregate struct {
	Subplan      Operator
	Aggregations []AggregateSlot
	Computation  Expression
}

func (a *Aggregate) Type() types.Type { return a.Computation.Type() }
func (*Aggregate) expr()               {}

// ForeignCallType selects how ForeignCall renders its arguments.
type ForeignCallType uint8

const (
	CallFunction ForeignCallType = iota
	CallLeftAssoc
	CallRightAssoc
)

// ForeignCall represents a user-declared function or operator call that
// the built-in table does not cover directly. The generator renders it;
// the analyser never builds one, since lets are always inlined.
type ForeignCall struct {
	Name       string
	Args       []Expression
	ReturnType types.Type
	CallType   ForeignCallType
}

func (f *ForeignCall) Type() types.Type { return f.ReturnType }
func (*ForeignCall) expr()               {}
