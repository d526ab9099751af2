package algebra

// Operator is implemented by every table-valued algebra node. Like
// Expression, op is unexported to keep the node set closed; the
// generator's operator visitor dispatches via a single type switch.
type Operator interface {
	// Columns returns the ordered list of IUs this operator produces,
	// i.e. its binding in output-column order.
	Columns() []*IU
	op()
}

// TableScan reads every column of a base table, minting one fresh IU per
// schema column in schema order.
type TableScan struct {
	TableName string
	ColNames  []string
	Cols      []*IU
}

func (t *TableScan) Columns() []*IU { return t.Cols }
func (*TableScan) op()               {}

// Select filters Input by Condition, which must be Bool. It reproduces
// Input's bindings unchanged.
type Select struct {
	Input     Operator
	Condition Expression
}

func (s *Select) Columns() []*IU { return s.Input.Columns() }
func (*Select) op()               {}

// MapEntry is one computed column added by a Map: Expr evaluates to IU.
type MapEntry struct {
	Expr Expression
	IU   *IU
}

// Map evaluates each Entries expression over Input and appends the
// result as a new column, keeping Input's existing columns.
type Map struct {
	Input   Operator
	Entries []MapEntry
}

func (m *Map) Columns() []*IU {
	cols := append([]*IU(nil), m.Input.Columns()...)
	for _, e := range m.Entries {
		cols = append(cols, e.IU)
	}
	return cols
}
func (*Map) op() {}

// JoinType enumerates the eight join forms the generator knows how to
// render: the four that keep both sides' rows (possibly padded with
// NULLs) and the four semi/anti forms that filter one side by the
// other's existence.
type JoinType uint8

const (
	Inner JoinType = iota
	LeftOuter
	RightOuter
	FullOuter
	LeftSemi
	RightSemi
	LeftAnti
	RightAnti
)

// Join combines Left and Right under Condition per Kind. Inner/Outer
// forms bind both sides' columns; LeftSemi/LeftAnti bind only Left's;
// RightSemi/RightAnti bind only Right's.
type Join struct {
	Left, Right Operator
	Condition   Expression
	Kind        JoinType
}

func (j *Join) Columns() []*IU {
	switch j.Kind {
	case LeftSemi, LeftAnti:
		return j.Left.Columns()
	case RightSemi, RightAnti:
		return j.Right.Columns()
	default:
		cols := append([]*IU(nil), j.Left.Columns()...)
		return append(cols, j.Right.Columns()...)
	}
}
func (*Join) op() {}

// GroupKey is one grouping expression, bound to a fresh IU.
type GroupKey struct {
	Expr Expression
	IU   *IU
}

// GroupBy groups Input by Keys and computes Aggregates over each group.
// An empty Keys list groups the whole input into a single row.
type GroupBy struct {
	Input      Operator
	Keys       []GroupKey
	Aggregates []AggregateSlot
}

func (g *GroupBy) Columns() []*IU {
	cols := make([]*IU, 0, len(g.Keys)+len(g.Aggregates))
	for _, k := range g.Keys {
		cols = append(cols, k.IU)
	}
	for _, a := range g.Aggregates {
		cols = append(cols, a.IU)
	}
	return cols
}
func (*GroupBy) op() {}

// SortItem is one "order by" entry: an expression, optional collation,
// and sort direction.
type SortItem struct {
	Expr    Expression
	Collate string
	Desc    bool
}

// Sort orders Input by Items and optionally truncates/skips rows. It
// reproduces Input's bindings unchanged.
type Sort struct {
	Input          Operator
	Items          []SortItem
	Limit, Offset  *int
}

func (s *Sort) Columns() []*IU { return s.Input.Columns() }
func (*Sort) op()               {}

// WindowAggregate is one computed column of a Window: a (possibly
// RowNumber) aggregate evaluated over the frame implied by PartitionBy
// and OrderBy, bound to IU.
type WindowAggregate struct {
	IU       *IU
	Func     AggFunc
	RowNum   bool // true selects row_number() instead of Func
	Distinct bool
	Arg      Expression // nil for RowNum or AggCountStar
}

// Window evaluates Aggregates as window functions over Input, partitioned
// by PartitionBy and ordered by OrderBy, keeping Input's existing
// columns and appending one new column per aggregate.
type Window struct {
	Input       Operator
	Aggregates  []WindowAggregate
	PartitionBy []Expression
	OrderBy     []SortItem
}

func (w *Window) Columns() []*IU {
	cols := append([]*IU(nil), w.Input.Columns()...)
	for _, a := range w.Aggregates {
		cols = append(cols, a.IU)
	}
	return cols
}
func (*Window) op() {}

// SetOp enumerates the set-operation kinds, each with an "all" variant
// that skips duplicate elimination.
type SetOp uint8

const (
	Union SetOp = iota
	UnionAll
	Except
	ExceptAll
	Intersect
	IntersectAll
)

// SetOperation combines Left and Right row-wise: LeftCols and RightCols
// name the (equal-length, pairwise type-compatible) projections from
// each side, and ResultIUs binds the combined result.
type SetOperation struct {
	Left, Right         Operator
	LeftCols, RightCols []*IU
	ResultIUs           []*IU
	Op                  SetOp
}

func (s *SetOperation) Columns() []*IU { return s.ResultIUs }
func (*SetOperation) op()               {}

// InlineTable is a literal table: RowCount rows of Values (flattened
// row-major, len(Values) == RowCount*len(Columns)), bound to Columns.
type InlineTable struct {
	Columns_ []*IU
	Values   []Expression
	RowCount int
}

func (t *InlineTable) Columns() []*IU { return t.Columns_ }
func (*InlineTable) op()               {}
