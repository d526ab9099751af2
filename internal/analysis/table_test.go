package analysis_test

import (
	"testing"

	"github.com/ravelin-sql/saneql/internal/algebra"
	"github.com/ravelin-sql/saneql/internal/analysis"
	"github.com/ravelin-sql/saneql/internal/parser"
	"github.com/ravelin-sql/saneql/internal/schema"
)

func mustAnalyze(t *testing.T, src string) *analysis.Result {
	t.Helper()
	q, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	res, err := analysis.Analyze(schema.TPCH(), q)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	return res
}

func TestAnalyzeTableScan(t *testing.T) {
	res := mustAnalyze(t, "region")
	if !res.IsTable {
		t.Fatal("expected a table result")
	}
	scan, ok := res.Op.(*algebra.TableScan)
	if !ok {
		t.Fatalf("expected *algebra.TableScan, got %T", res.Op)
	}
	if scan.TableName != "region" || len(scan.Cols) != 3 {
		t.Errorf("got %+v", scan)
	}
}

func TestAnalyzeFilter(t *testing.T) {
	res := mustAnalyze(t, `region.filter(r_name = 'EUROPE')`)
	sel, ok := res.Op.(*algebra.Select)
	if !ok {
		t.Fatalf("expected *algebra.Select, got %T", res.Op)
	}
	cmp, ok := sel.Condition.(*algebra.Comparison)
	if !ok || cmp.Mode != algebra.CmpEq {
		t.Fatalf("expected equality comparison, got %#v", sel.Condition)
	}
}

func TestAnalyzeProjectAndMap(t *testing.T) {
	res := mustAnalyze(t, `orders.project({orderkey: o_orderkey, o_totalprice})`)
	_, ok := res.Op.(*algebra.Map)
	if !ok {
		t.Fatalf("expected *algebra.Map, got %T", res.Op)
	}
	if len(res.Binding.Columns) != 2 {
		t.Fatalf("expected 2 output columns, got %d", len(res.Binding.Columns))
	}
	if res.Binding.Columns[0].Name != "orderkey" || res.Binding.Columns[1].Name != "o_totalprice" {
		t.Errorf("got columns %+v", res.Binding.Columns)
	}
}

func TestAnalyzeMapKeepsInputColumns(t *testing.T) {
	res := mustAnalyze(t, `orders.map({doubled: o_totalprice * 2})`)
	if len(res.Binding.Columns) != 10 {
		t.Fatalf("expected 9 input columns + 1 new, got %d", len(res.Binding.Columns))
	}
}

func TestAnalyzeJoin(t *testing.T) {
	res := mustAnalyze(t, `orders.join(customer, o_custkey = c_custkey)`)
	join, ok := res.Op.(*algebra.Join)
	if !ok {
		t.Fatalf("expected *algebra.Join, got %T", res.Op)
	}
	if join.Kind != algebra.Inner {
		t.Errorf("expected inner join by default, got %v", join.Kind)
	}
	if len(res.Binding.Columns) != 9+8 {
		t.Fatalf("expected combined column count, got %d", len(res.Binding.Columns))
	}
}

func TestAnalyzeJoinLeftSemiKeepsOnlyLeftColumns(t *testing.T) {
	res := mustAnalyze(t, `orders.join(customer, o_custkey = c_custkey, type: leftsemi)`)
	if len(res.Binding.Columns) != 9 {
		t.Fatalf("expected only left columns, got %d", len(res.Binding.Columns))
	}
}

func TestAnalyzeGroupByAggregate(t *testing.T) {
	res := mustAnalyze(t, `orders.groupby({o_orderstatus}, {n: count()})`)
	gb, ok := res.Op.(*algebra.GroupBy)
	if !ok {
		t.Fatalf("expected *algebra.GroupBy, got %T", res.Op)
	}
	if len(gb.Keys) != 1 || len(gb.Aggregates) != 1 {
		t.Fatalf("got %+v", gb)
	}
	if gb.Aggregates[0].Func != algebra.AggCountStar {
		t.Errorf("expected count-star aggregate, got %v", gb.Aggregates[0].Func)
	}
}

func TestAnalyzeGroupByRejectsUngroupedColumn(t *testing.T) {
	q, err := parser.Parse(`orders.groupby({o_orderstatus}, {bad: o_custkey})`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, err := analysis.Analyze(schema.TPCH(), q); err == nil {
		t.Fatal("expected an error referencing a non-key column outside an aggregate")
	}
}

func TestAnalyzeOrderByWithLimit(t *testing.T) {
	res := mustAnalyze(t, `orders.orderby({desc: o_orderdate}, limit: 10)`)
	sort, ok := res.Op.(*algebra.Sort)
	if !ok {
		t.Fatalf("expected *algebra.Sort, got %T", res.Op)
	}
	if sort.Limit == nil || *sort.Limit != 10 {
		t.Fatalf("expected limit 10, got %v", sort.Limit)
	}
	if len(sort.Items) != 1 || !sort.Items[0].Desc {
		t.Fatalf("expected one descending sort item, got %+v", sort.Items)
	}
}

func TestAnalyzeOrderByWithCollate(t *testing.T) {
	res := mustAnalyze(t, `orders.orderby({collate(o_orderstatus, C)})`)
	sort, ok := res.Op.(*algebra.Sort)
	if !ok {
		t.Fatalf("expected *algebra.Sort, got %T", res.Op)
	}
	if len(sort.Items) != 1 || sort.Items[0].Collate != "C" || sort.Items[0].Desc {
		t.Fatalf("got %+v", sort.Items)
	}
}

func TestAnalyzeOrderByRejectsUnknownCollation(t *testing.T) {
	q, err := parser.Parse(`orders.orderby({collate(o_orderstatus, klingon)})`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, err := analysis.Analyze(schema.TPCH(), q); err == nil {
		t.Fatal("expected an error for an unknown collation")
	}
}

func TestAnalyzeAggregateProducesScalar(t *testing.T) {
	res := mustAnalyze(t, `orders.aggregate({total: sum(o_totalprice)})`)
	if res.IsTable {
		t.Fatal("expected a scalar result for a single aggregate()")
	}
	agg, ok := res.Expr.(*algebra.Aggregate)
	if !ok {
		t.Fatalf("expected *algebra.Aggregate, got %T", res.Expr)
	}
	if len(agg.Aggregations) != 1 || agg.Aggregations[0].Func != algebra.AggSum {
		t.Fatalf("got %+v", agg.Aggregations)
	}
}

func TestAnalyzeAggregateDistinctFlag(t *testing.T) {
	res := mustAnalyze(t, `orders.aggregate({n: sum(value: o_totalprice, distinct: true)})`)
	agg, ok := res.Expr.(*algebra.Aggregate)
	if !ok {
		t.Fatalf("expected *algebra.Aggregate, got %T", res.Expr)
	}
	if len(agg.Aggregations) != 1 || !agg.Aggregations[0].Distinct {
		t.Fatalf("expected a distinct sum, got %+v", agg.Aggregations)
	}
}

func TestAnalyzeAggregateDistinctAcceptsOutOfOrderNamedArgs(t *testing.T) {
	res := mustAnalyze(t, `orders.aggregate({n: sum(distinct: true, value: o_totalprice)})`)
	agg, ok := res.Expr.(*algebra.Aggregate)
	if !ok {
		t.Fatalf("expected *algebra.Aggregate, got %T", res.Expr)
	}
	if len(agg.Aggregations) != 1 || !agg.Aggregations[0].Distinct {
		t.Fatalf("expected a distinct sum even with arguments given out of order, got %+v", agg.Aggregations)
	}
}

func TestAnalyzeDistinct(t *testing.T) {
	res := mustAnalyze(t, `orders.project({o_orderstatus}).distinct()`)
	gb, ok := res.Op.(*algebra.GroupBy)
	if !ok {
		t.Fatalf("expected distinct to lower to *algebra.GroupBy, got %T", res.Op)
	}
	if len(gb.Keys) != 1 || len(gb.Aggregates) != 0 {
		t.Fatalf("got %+v", gb)
	}
}

func TestAnalyzeUnion(t *testing.T) {
	res := mustAnalyze(t, `
region.project({r_name}).unionall(nation.project({n_name}))
`)
	setOp, ok := res.Op.(*algebra.SetOperation)
	if !ok {
		t.Fatalf("expected *algebra.SetOperation, got %T", res.Op)
	}
	if setOp.Op != algebra.UnionAll {
		t.Errorf("expected UnionAll, got %v", setOp.Op)
	}
}

func TestAnalyzeAsAndScopeAccess(t *testing.T) {
	res := mustAnalyze(t, `region.as(r).filter(r.r_name = 'EUROPE')`)
	if !res.IsTable {
		t.Fatal("expected a table result")
	}
}

func TestAnalyzeLetChain(t *testing.T) {
	res := mustAnalyze(t, `
let europe() := region.filter(r_name = 'EUROPE');
europe().project({r_name})
`)
	if !res.IsTable {
		t.Fatal("expected a table result")
	}
}

func TestAnalyzeWindowRowNumber(t *testing.T) {
	res := mustAnalyze(t, `orders.window({rn: rownumber()}, partitionby: {o_custkey}, orderby: {desc: o_orderdate})`)
	win, ok := res.Op.(*algebra.Window)
	if !ok {
		t.Fatalf("expected *algebra.Window, got %T", res.Op)
	}
	if len(win.Aggregates) != 1 || !win.Aggregates[0].RowNum {
		t.Fatalf("got %+v", win.Aggregates)
	}
}

func TestAnalyzeCoalesce(t *testing.T) {
	res := mustAnalyze(t, `coalesce(values: {orders.o_clerk, 'unknown'})`)
	if res.IsTable {
		t.Fatal("expected a scalar result")
	}
	if _, ok := res.Expr.(*algebra.SearchedCase); !ok {
		t.Fatalf("expected coalesce to lower to *algebra.SearchedCase, got %T", res.Expr)
	}
}

func TestAnalyzeCoalesceSingleValueIsNotACase(t *testing.T) {
	res := mustAnalyze(t, `coalesce(values: {orders.o_clerk})`)
	if res.IsTable {
		t.Fatal("expected a scalar result")
	}
	if _, ok := res.Expr.(*algebra.SearchedCase); ok {
		t.Fatal("expected a single-value coalesce to return the value directly, not a zero-arm case")
	}
}

func TestAnalyzeCoalesceWidensToCommonType(t *testing.T) {
	res := mustAnalyze(t, `coalesce(values: {orders.o_totalprice, 0})`)
	sc, ok := res.Expr.(*algebra.SearchedCase)
	if !ok {
		t.Fatalf("expected *algebra.SearchedCase, got %T", res.Expr)
	}
	if _, ok := sc.Default.(*algebra.Cast); !ok {
		t.Fatalf("expected the integer default to be cast to the decimal common type, got %T", sc.Default)
	}
	if sc.Type() != sc.Default.Type() {
		t.Fatalf("expected Type() to report the widened common type, got %v", sc.Type())
	}
	if len(sc.Arms) != 1 {
		t.Fatalf("got %+v", sc.Arms)
	}
	if _, ok := sc.Arms[0].Result.(*algebra.Cast); !ok {
		t.Fatalf("expected the decimal arm to also carry an explicit (identity) cast, got %T", sc.Arms[0].Result)
	}
	if sc.Arms[0].Result.Type() != sc.Default.Type() {
		t.Fatalf("expected every arm to share the widened common type, got %v vs %v", sc.Arms[0].Result.Type(), sc.Default.Type())
	}
}

func TestAnalyzeCaseWidensToCommonType(t *testing.T) {
	res := mustAnalyze(t, `case(arms: {{orders.o_totalprice > 0, orders.o_totalprice}}, default: 0)`)
	sc, ok := res.Expr.(*algebra.SearchedCase)
	if !ok {
		t.Fatalf("expected *algebra.SearchedCase, got %T", res.Expr)
	}
	if _, ok := sc.Default.(*algebra.Cast); !ok {
		t.Fatalf("expected the integer default to be cast to the decimal common type, got %T", sc.Default)
	}
	if sc.Type() != sc.Default.Type() || sc.Type() != sc.Arms[0].Result.Type() {
		t.Fatalf("expected the case expression and its arm to share the widened common type, got case=%v arm=%v", sc.Type(), sc.Arms[0].Result.Type())
	}
}
