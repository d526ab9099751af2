package sqlgen

import (
	"github.com/ravelin-sql/saneql/internal/algebra"
	"github.com/ravelin-sql/saneql/internal/types"
)

// GenerateOperator writes op's rendering as a parenthesised sub-select,
// suitable for use as a FROM-clause input to an enclosing operator. The
// top-level driver peels the outermost Sort (and the scalar case)
// itself rather than calling this directly — see internal/driver.
func (w *Writer) GenerateOperator(op algebra.Operator) {
	switch o := op.(type) {
	case *algebra.TableScan:
		w.generateTableScan(o)
	case *algebra.Select:
		w.Write("(select * from ")
		w.GenerateOperator(o.Input)
		w.Write(" s where ")
		w.GenerateExpression(o.Condition)
		w.Write(")")
	case *algebra.Map:
		w.Write("(select *")
		for _, e := range o.Entries {
			w.Write(", ")
			w.GenerateExpression(e.Expr)
			w.Write(" as ")
			w.Write(w.Alias(e.IU))
		}
		w.Write(" from ")
		w.GenerateOperator(o.Input)
		w.Write(" s)")
	case *algebra.Join:
		w.generateJoin(o)
	case *algebra.GroupBy:
		w.generateGroupBy(o)
	case *algebra.Sort:
		w.Write("(select * from ")
		w.GenerateOperator(o.Input)
		w.Write(" s")
		w.WriteOrderByLimitOffset(o.Items, o.Limit, o.Offset)
		w.Write(")")
	case *algebra.Window:
		w.generateWindow(o)
	case *algebra.SetOperation:
		w.generateSetOperation(o)
	case *algebra.InlineTable:
		w.generateInlineTable(o)
	default:
		w.Writef("/* unhandled operator %T */", op)
	}
}

func (w *Writer) generateTableScan(t *algebra.TableScan) {
	w.Write("(select ")
	for i, col := range t.ColNames {
		if i > 0 {
			w.Write(", ")
		}
		w.WriteIdentifier(col)
		w.Write(" as ")
		w.Write(w.Alias(t.Cols[i]))
	}
	w.Write(" from ")
	w.WriteIdentifier(t.TableName)
	w.Write(")")
}

func (w *Writer) generateJoin(j *algebra.Join) {
	switch j.Kind {
	case algebra.Inner, algebra.LeftOuter, algebra.RightOuter, algebra.FullOuter:
		w.Write("(select * from ")
		w.GenerateOperator(j.Left)
		w.Write(" l ")
		w.Write(joinKeyword(j.Kind))
		w.Write(" join ")
		w.GenerateOperator(j.Right)
		w.Write(" r on ")
		w.GenerateExpression(j.Condition)
		w.Write(")")
	case algebra.LeftSemi, algebra.LeftAnti:
		w.Write("(select * from ")
		w.GenerateOperator(j.Left)
		w.Write(" l where ")
		if j.Kind == algebra.LeftAnti {
			w.Write("not ")
		}
		w.Write("exists (select * from ")
		w.GenerateOperator(j.Right)
		w.Write(" r where ")
		w.GenerateExpression(j.Condition)
		w.Write("))")
	case algebra.RightSemi, algebra.RightAnti:
		w.Write("(select * from ")
		w.GenerateOperator(j.Right)
		w.Write(" r where ")
		if j.Kind == algebra.RightAnti {
			w.Write("not ")
		}
		w.Write("exists (select * from ")
		w.GenerateOperator(j.Left)
		w.Write(" l where ")
		w.GenerateExpression(j.Condition)
		w.Write("))")
	}
}

func joinKeyword(k algebra.JoinType) string {
	switch k {
	case algebra.LeftOuter:
		return "left outer"
	case algebra.RightOuter:
		return "right outer"
	case algebra.FullOuter:
		return "full outer"
	default:
		return "inner"
	}
}

func (w *Writer) generateGroupBy(g *algebra.GroupBy) {
	w.Write("(select ")
	first := true
	for _, k := range g.Keys {
		if !first {
			w.Write(", ")
		}
		first = false
		w.GenerateExpression(k.Expr)
		w.Write(" as ")
		w.Write(w.Alias(k.IU))
	}
	for _, a := range g.Aggregates {
		if !first {
			w.Write(", ")
		}
		first = false
		w.generateAggregateSlot(a)
		w.Write(" as ")
		w.Write(w.Alias(a.IU))
	}
	w.Write(" from ")
	w.GenerateOperator(g.Input)
	w.Write(" s group by ")
	if len(g.Keys) == 0 {
		w.Write("true")
	} else {
		for i := range g.Keys {
			if i > 0 {
				w.Write(",")
			}
			w.Writef("%d", i+1)
		}
	}
	w.Write(")")
}

func (w *Writer) generateAggregateSlot(a algebra.AggregateSlot) {
	if a.Func == algebra.AggCountStar {
		w.Write("count(*)")
		return
	}
	w.Write(aggKeyword(a.Func))
	w.Write("(")
	if a.Distinct {
		w.Write("distinct ")
	}
	w.GenerateExpression(a.Arg)
	w.Write(")")
}

func aggKeyword(f algebra.AggFunc) string {
	switch f {
	case algebra.AggCount:
		return "count"
	case algebra.AggSum:
		return "sum"
	case algebra.AggAvg:
		return "avg"
	case algebra.AggMin:
		return "min"
	case algebra.AggMax:
		return "max"
	default:
		return "count"
	}
}

// WriteOrderByLimitOffset writes the shared "order by ... [limit n]
// [offset n]" tail used both by a nested Sort and by the driver's
// top-level Sort peel.
func (w *Writer) WriteOrderByLimitOffset(items []algebra.SortItem, limit, offset *int) {
	if len(items) > 0 {
		w.Write(" order by ")
		for i, it := range items {
			if i > 0 {
				w.Write(", ")
			}
			w.GenerateExpression(it.Expr)
			if it.Collate != "" {
				w.Write(" collate ")
				w.WriteIdentifier(it.Collate)
			}
			if it.Desc {
				w.Write(" desc")
			}
		}
	}
	if limit != nil {
		w.Writef(" limit %d", *limit)
	}
	if offset != nil {
		w.Writef(" offset %d", *offset)
	}
}

func (w *Writer) generateWindow(win *algebra.Window) {
	w.Write("(select *")
	for _, a := range win.Aggregates {
		w.Write(", ")
		if a.RowNum {
			w.Write("row_number()")
		} else {
			w.generateAggregateSlot(algebra.AggregateSlot{Func: a.Func, Distinct: a.Distinct, Arg: a.Arg})
		}
		w.Write(" over (")
		wrote := false
		if len(win.PartitionBy) > 0 {
			w.Write("partition by ")
			for i, p := range win.PartitionBy {
				if i > 0 {
					w.Write(", ")
				}
				w.GenerateExpression(p)
			}
			wrote = true
		}
		if len(win.OrderBy) > 0 {
			if wrote {
				w.Write(" ")
			}
			w.Write("order by ")
			for i, it := range win.OrderBy {
				if i > 0 {
					w.Write(", ")
				}
				w.GenerateExpression(it.Expr)
				if it.Collate != "" {
					w.Write(" collate ")
					w.WriteIdentifier(it.Collate)
				}
				if it.Desc {
					w.Write(" desc")
				}
			}
		}
		w.Write(") as ")
		w.Write(w.Alias(a.IU))
	}
	w.Write(" from ")
	w.GenerateOperator(win.Input)
	w.Write(" s)")
}

func (w *Writer) generateSetOperation(s *algebra.SetOperation) {
	w.Write("(select * from ((select ")
	w.writeColumnAliasList(s.LeftCols)
	w.Write(" from ")
	w.GenerateOperator(s.Left)
	w.Write(" l) ")
	w.Write(setOpKeyword(s.Op))
	w.Write(" (select ")
	w.writeColumnAliasList(s.RightCols)
	w.Write(" from ")
	w.GenerateOperator(s.Right)
	w.Write(" r)) s(")
	for i, iu := range s.ResultIUs {
		if i > 0 {
			w.Write(", ")
		}
		w.Write(w.Alias(iu))
	}
	w.Write("))")
}

func (w *Writer) writeColumnAliasList(cols []*algebra.IU) {
	if len(cols) == 0 {
		w.Write("1")
		return
	}
	for i, iu := range cols {
		if i > 0 {
			w.Write(", ")
		}
		w.Write(w.Alias(iu))
	}
}

func setOpKeyword(op algebra.SetOp) string {
	switch op {
	case algebra.UnionAll:
		return "union all"
	case algebra.Except:
		return "except"
	case algebra.ExceptAll:
		return "except all"
	case algebra.Intersect:
		return "intersect"
	case algebra.IntersectAll:
		return "intersect all"
	default:
		return "union"
	}
}

// generateInlineTable renders a literal table. Postgres rejects zero-column
// row literals, so an empty table is instead rendered as one row of NULL
// followed by "limit 0", which every dialect accepts.
func (w *Writer) generateInlineTable(t *algebra.InlineTable) {
	w.Write("(select * from (values ")
	ncols := len(t.Columns_)
	if t.RowCount == 0 {
		w.Write("(NULL)")
	} else {
		for r := 0; r < t.RowCount; r++ {
			if r > 0 {
				w.Write(", ")
			}
			w.Write("(")
			for c := 0; c < ncols; c++ {
				if c > 0 {
					w.Write(", ")
				}
				w.GenerateExpression(t.Values[r*ncols+c])
			}
			w.Write(")")
		}
	}
	w.Write(") s(")
	for i, iu := range t.Columns_ {
		if i > 0 {
			w.Write(", ")
		}
		w.Write(w.Alias(iu))
	}
	w.Write(")")
	if t.RowCount == 0 {
		w.Write(" limit 0")
	}
	w.Write(")")
}

// GenerateExpression writes e's SQL rendering.
func (w *Writer) GenerateExpression(e algebra.Expression) {
	switch n := e.(type) {
	case *algebra.IURef:
		w.Write(w.Alias(n.IU))
	case *algebra.Const:
		w.generateConst(n)
	case *algebra.Cast:
		w.Dialect.WriteCast(w, n)
	case *algebra.Comparison:
		w.generateOperand(n.L)
		w.Write(" ")
		w.Write(comparisonKeyword(n.Mode))
		w.Write(" ")
		// "is [not] null" takes the bare keyword: "is not (null)" is not SQL.
		if c, ok := n.R.(*algebra.Const); ok && c.Null && (n.Mode == algebra.CmpIs || n.Mode == algebra.CmpIsNot) {
			w.Write("null")
		} else {
			w.generateOperand(n.R)
		}
		if n.Collate != "" {
			w.Write(" collate ")
			w.WriteIdentifier(n.Collate)
		}
	case *algebra.Between:
		w.generateOperand(n.Base)
		w.Write(" between ")
		w.generateOperand(n.Lo)
		w.Write(" and ")
		w.generateOperand(n.Hi)
	case *algebra.In:
		w.generateOperand(n.Probe)
		w.Write(" in (")
		for i, v := range n.Values {
			if i > 0 {
				w.Write(", ")
			}
			w.GenerateExpression(v)
		}
		w.Write(")")
	case *algebra.Binary:
		w.generateOperand(n.L)
		w.Write(" ")
		w.Write(binaryKeyword(n.Op))
		w.Write(" ")
		w.generateOperand(n.R)
	case *algebra.Unary:
		w.Write(unaryKeyword(n.Op))
		w.generateOperand(n.Child)
	case *algebra.Extract:
		w.Write("extract(")
		w.Write(extractKeyword(n.Part))
		w.Write(" from ")
		w.GenerateExpression(n.Child)
		w.Write(")")
	case *algebra.Substr:
		w.Write("substr(")
		w.GenerateExpression(n.Value)
		if n.From != nil {
			w.Write(", ")
			w.GenerateExpression(n.From)
		}
		if n.Len != nil {
			w.Write(", ")
			w.GenerateExpression(n.Len)
		}
		w.Write(")")
	case *algebra.SimpleCase:
		w.Write("case ")
		w.GenerateExpression(n.Scrutinee)
		for _, arm := range n.Arms {
			w.Write(" when ")
			w.GenerateExpression(arm.Match)
			w.Write(" then ")
			w.GenerateExpression(arm.Result)
		}
		w.Write(" else ")
		w.GenerateExpression(n.Default)
		w.Write(" end")
	case *algebra.SearchedCase:
		w.Write("case")
		for _, arm := range n.Arms {
			w.Write(" when ")
			w.GenerateExpression(arm.Cond)
			w.Write(" then ")
			w.GenerateExpression(arm.Result)
		}
		w.Write(" else ")
		w.GenerateExpression(n.Default)
		w.Write(" end")
	case *algebra.ForeignCall:
		w.generateForeignCall(n)
	case *algebra.Aggregate:
		w.generateAggregate(n)
	default:
		w.Writef("/* unhandled expression %T */", e)
	}
}

// generateOperand always wraps e in parentheses, preserving operator
// precedence without needing a precedence table in the generator.
func (w *Writer) generateOperand(e algebra.Expression) {
	w.Write("(")
	w.GenerateExpression(e)
	w.Write(")")
}

func (w *Writer) generateConst(c *algebra.Const) {
	if c.Null {
		w.Write("null")
		return
	}
	switch c.Typ.Tag() {
	case types.Char, types.Varchar, types.Text:
		w.WriteStringLiteral(c.Value)
	case types.Date:
		w.Write("date ")
		w.WriteStringLiteral(c.Value)
	case types.Interval:
		w.Write("interval ")
		w.WriteStringLiteral(c.Value)
	default:
		w.Write(c.Value)
	}
}

func comparisonKeyword(m algebra.ComparisonMode) string {
	switch m {
	case algebra.CmpNe:
		return "<>"
	case algebra.CmpIs:
		return "is"
	case algebra.CmpIsNot:
		return "is not"
	case algebra.CmpLt:
		return "<"
	case algebra.CmpLe:
		return "<="
	case algebra.CmpGt:
		return ">"
	case algebra.CmpGe:
		return ">="
	case algebra.CmpLike:
		return "like"
	default:
		return "="
	}
}

func binaryKeyword(op algebra.BinaryOp) string {
	switch op {
	case algebra.BinSub:
		return "-"
	case algebra.BinMul:
		return "*"
	case algebra.BinDiv:
		return "/"
	case algebra.BinMod:
		return "%"
	case algebra.BinPow:
		return "^"
	case algebra.BinConcat:
		return "||"
	case algebra.BinAnd:
		return "and"
	case algebra.BinOr:
		return "or"
	default:
		return "+"
	}
}

func unaryKeyword(op algebra.UnaryOp) string {
	switch op {
	case algebra.UnaryMinus:
		return "-"
	case algebra.UnaryNot:
		return "not "
	default:
		return "+"
	}
}

func extractKeyword(p algebra.ExtractPart) string {
	switch p {
	case algebra.ExtractMonth:
		return "month"
	case algebra.ExtractDay:
		return "day"
	default:
		return "year"
	}
}

func (w *Writer) generateForeignCall(f *algebra.ForeignCall) {
	switch f.CallType {
	case algebra.CallLeftAssoc:
		w.foldAssoc(f.Name, f.Args, true)
	case algebra.CallRightAssoc:
		w.foldAssoc(f.Name, f.Args, false)
	default:
		w.Write(f.Name)
		w.Write("(")
		for i, a := range f.Args {
			if i > 0 {
				w.Write(", ")
			}
			w.GenerateExpression(a)
		}
		w.Write(")")
	}
}

// foldAssoc renders args as a nested chain of the infix operator name,
// associating left-to-right if left is true and right-to-left otherwise,
// with explicit parentheses at every level.
func (w *Writer) foldAssoc(name string, args []algebra.Expression, left bool) {
	if len(args) == 1 {
		w.GenerateExpression(args[0])
		return
	}
	w.Write("(")
	if left {
		w.foldAssoc(name, args[:len(args)-1], left)
		w.Write(" " + name + " ")
		w.GenerateExpression(args[len(args)-1])
	} else {
		w.GenerateExpression(args[0])
		w.Write(" " + name + " ")
		w.foldAssoc(name, args[1:], left)
	}
	w.Write(")")
}

// generateAggregate renders a scalar Aggregate: its sub-plan's aggregate
// list is computed in an inner select, and Computation is evaluated over
// that single-row result. When Computation is just a reference to the one
// aggregation, the aggregation is rendered directly over the sub-plan
// ("(select count(*) from <input> s)") without the inner select.
func (w *Writer) generateAggregate(a *algebra.Aggregate) {
	if ref, ok := a.Computation.(*algebra.IURef); ok && len(a.Aggregations) == 1 && ref.IU == a.Aggregations[0].IU {
		w.Write("(select ")
		w.generateAggregateSlot(a.Aggregations[0])
		w.Write(" from ")
		w.GenerateOperator(a.Subplan)
		w.Write(" s)")
		return
	}
	w.Write("(select ")
	w.GenerateExpression(a.Computation)
	w.Write(" from (select ")
	for i, slot := range a.Aggregations {
		if i > 0 {
			w.Write(", ")
		}
		w.generateAggregateSlot(slot)
		w.Write(" as ")
		w.Write(w.Alias(slot.IU))
	}
	w.Write(" from ")
	w.GenerateOperator(a.Subplan)
	w.Write(" s) s)")
}
