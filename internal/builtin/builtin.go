// Package builtin is the static dispatch table the semantic analyser
// consults before falling back to user-defined lets: name -> signature
// (argument shapes, expected types, defaults) plus an ID the analyser
// switches on to pick a production rule. Modelled as a flat registry, the
// same shape the rest of this codebase uses for its operator/type maps.
package builtin

import "github.com/ravelin-sql/saneql/internal/types"

// ID identifies which production rule the analyser runs for a builtin.
// IDs are grouped by the table-op / scalar-op split in the builtin table.
type ID uint8

const (
	// Table operations (consume and return ExpressionResult.Table).
	Table ID = iota
	As
	Alias
	Filter
	Project
	MapOp
	JoinOp
	GroupByOp
	AggregateOp
	OrderBy
	WindowOp
	UnionOp
	UnionAllOp
	ExceptOp
	ExceptAllOp
	IntersectOp
	IntersectAllOp
	Distinct

	// Scalar operations.
	CastOp
	ExtractOp
	SubstrOp
	CaseOp
	CoalesceOp
	CountStar
	Count
	Sum
	Avg
	Min
	Max
	RowNumber
	Gensym
	Concat
	CollateOp
)

// ArgShape constrains what kind of AST a positional or named argument
// must be, independent of its value type.
type ArgShape uint8

const (
	ShapeScalar ArgShape = iota
	ShapeTable
	ShapeSymbol      // an identifier used as a name, never evaluated
	ShapeConstBool   // a literal true/false, resolved at analysis time
	ShapeExprList    // a "{...}" brace-list of scalar expressions
	ShapeNamedExprList // a "{...}" brace-list where entries may carry names
)

// Arg describes one formal argument of a builtin.
type Arg struct {
	Name     string // "" for a purely positional argument
	Shape    ArgShape
	Type     types.Type // zero value means "any"
	Optional bool
	// Default, when non-empty, records the SaneQL source of the value an
	// omitted argument takes. The analyser does not read it: each analysis
	// routine applies its own default for an omitted argument.
	Default string
}

// Signature is the full argument list of one builtin.
type Signature struct {
	ID        ID
	IsTableOp bool // true if this consumes a receiver table (method-chain position)
	Args      []Arg
}

// Table_ is the name -> signature registry. Names are matched
// case-sensitively against the identifier the parser produced; SaneQL
// source is written lowercase by convention.
var Table_ = map[string]Signature{
	"table":     {ID: Table, Args: []Arg{{Name: "name", Shape: ShapeSymbol}}},
	"as":        {ID: As, IsTableOp: true, Args: []Arg{{Name: "alias", Shape: ShapeSymbol}}},
	"alias":     {ID: Alias, Args: []Arg{{Name: "column", Shape: ShapeScalar}, {Name: "name", Shape: ShapeSymbol}}},
	"filter":    {ID: Filter, IsTableOp: true, Args: []Arg{{Name: "predicate", Shape: ShapeScalar, Type: types.BoolType()}}},
	"project":   {ID: Project, IsTableOp: true, Args: []Arg{{Name: "columns", Shape: ShapeNamedExprList}}},
	"map":       {ID: MapOp, IsTableOp: true, Args: []Arg{{Name: "columns", Shape: ShapeNamedExprList}}},
	"join":      {ID: JoinOp, IsTableOp: true, Args: []Arg{{Name: "rhs", Shape: ShapeTable}, {Name: "on", Shape: ShapeScalar, Type: types.BoolType()}, {Name: "type", Shape: ShapeSymbol, Optional: true, Default: "inner"}}},
	"groupby":   {ID: GroupByOp, IsTableOp: true, Args: []Arg{{Name: "keys", Shape: ShapeExprList}, {Name: "aggregates", Shape: ShapeNamedExprList, Optional: true}}},
	"aggregate": {ID: AggregateOp, IsTableOp: true, Args: []Arg{{Name: "aggregates", Shape: ShapeNamedExprList}}},
	"orderby":   {ID: OrderBy, IsTableOp: true, Args: []Arg{{Name: "keys", Shape: ShapeExprList}, {Name: "limit", Shape: ShapeScalar, Type: types.IntegerType(), Optional: true}, {Name: "offset", Shape: ShapeScalar, Type: types.IntegerType(), Optional: true}}},
	"window":    {ID: WindowOp, IsTableOp: true, Args: []Arg{{Name: "aggregates", Shape: ShapeNamedExprList}, {Name: "partitionby", Shape: ShapeExprList, Optional: true}, {Name: "orderby", Shape: ShapeExprList, Optional: true}}},
	"union":       {ID: UnionOp, IsTableOp: true, Args: []Arg{{Name: "rhs", Shape: ShapeTable}}},
	"unionall":    {ID: UnionAllOp, IsTableOp: true, Args: []Arg{{Name: "rhs", Shape: ShapeTable}}},
	"except":      {ID: ExceptOp, IsTableOp: true, Args: []Arg{{Name: "rhs", Shape: ShapeTable}}},
	"exceptall":   {ID: ExceptAllOp, IsTableOp: true, Args: []Arg{{Name: "rhs", Shape: ShapeTable}}},
	"intersect":   {ID: IntersectOp, IsTableOp: true, Args: []Arg{{Name: "rhs", Shape: ShapeTable}}},
	"intersectall": {ID: IntersectAllOp, IsTableOp: true, Args: []Arg{{Name: "rhs", Shape: ShapeTable}}},
	"distinct":  {ID: Distinct, IsTableOp: true},

	"cast":     {ID: CastOp, Args: []Arg{{Name: "value", Shape: ShapeScalar}, {Name: "type", Shape: ShapeSymbol}}},
	"extract":  {ID: ExtractOp, Args: []Arg{{Name: "part", Shape: ShapeSymbol}, {Name: "value", Shape: ShapeScalar}}},
	"substr":   {ID: SubstrOp, Args: []Arg{{Name: "value", Shape: ShapeScalar}, {Name: "from", Shape: ShapeScalar, Type: types.IntegerType(), Optional: true}, {Name: "len", Shape: ShapeScalar, Type: types.IntegerType(), Optional: true}}},
	"case":     {ID: CaseOp, Args: []Arg{{Name: "arms", Shape: ShapeExprList}, {Name: "default", Shape: ShapeScalar}}},
	"coalesce": {ID: CoalesceOp, Args: []Arg{{Name: "values", Shape: ShapeExprList}}},
	"count":    {ID: Count, Args: []Arg{{Name: "value", Shape: ShapeScalar, Optional: true}, {Name: "distinct", Shape: ShapeConstBool, Optional: true, Default: "false"}}},
	"sum":      {ID: Sum, Args: []Arg{{Name: "value", Shape: ShapeScalar}, {Name: "distinct", Shape: ShapeConstBool, Optional: true, Default: "false"}}},
	"avg":      {ID: Avg, Args: []Arg{{Name: "value", Shape: ShapeScalar}, {Name: "distinct", Shape: ShapeConstBool, Optional: true, Default: "false"}}},
	"min":      {ID: Min, Args: []Arg{{Name: "value", Shape: ShapeScalar}}},
	"max":      {ID: Max, Args: []Arg{{Name: "value", Shape: ShapeScalar}}},
	"rownumber": {ID: RowNumber},
	"gensym":   {ID: Gensym},
	"concat":   {ID: Concat, Args: []Arg{{Name: "values", Shape: ShapeExprList}}},

	// collate is legal only as the value of an orderby/window-orderby list
	// entry: it tags the sort item with an explicit collation instead of
	// evaluating to an ordinary scalar.
	"collate": {ID: CollateOp, Args: []Arg{{Name: "value", Shape: ShapeScalar}, {Name: "name", Shape: ShapeSymbol}}},
}

// Collations is the fixed set of collation names orderby/window accept
// for a collate(...) sort item, resolving the source's "collate TODO" by
// validating rather than silently passing through an arbitrary string.
var Collations = map[string]bool{
	"none":  true,
	"C":     true,
	"POSIX": true,
}

// Lookup returns the signature registered under name and whether it was
// found.
func Lookup(name string) (Signature, bool) {
	sig, ok := Table_[name]
	return sig, ok
}
