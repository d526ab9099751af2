package sqlgen_test

import (
	"testing"

	"github.com/ravelin-sql/saneql/internal/analysis"
	"github.com/ravelin-sql/saneql/internal/parser"
	"github.com/ravelin-sql/saneql/internal/schema"
	"github.com/ravelin-sql/saneql/internal/sqlgen"
)

func mustGenerate(t *testing.T, src string, d sqlgen.Dialect) string {
	t.Helper()
	q, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	res, err := analysis.Analyze(schema.TPCH(), q)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	w := sqlgen.NewWriter(d)
	if res.IsTable {
		w.GenerateOperator(res.Op)
	} else {
		w.GenerateExpression(res.Expr)
	}
	return w.String()
}

func TestGenerateArithmeticCastsBothOperands(t *testing.T) {
	sql := mustGenerate(t, "1 + 2", sqlgen.Postgres{})
	want := "(cast(1 as integer)) + (cast(2 as integer))"
	if sql != want {
		t.Errorf("got  %s\nwant %s", sql, want)
	}
}

func TestGenerateTableScan(t *testing.T) {
	sql := mustGenerate(t, "region", sqlgen.Postgres{})
	want := `(select "r_regionkey" as v1, "r_name" as v2, "r_comment" as v3 from "region")`
	if sql != want {
		t.Errorf("got  %s\nwant %s", sql, want)
	}
}

func TestGenerateFilter(t *testing.T) {
	sql := mustGenerate(t, `region.filter(r_name = 'EUROPE')`, sqlgen.Postgres{})
	if !contains(sql, `where (v2) = ('EUROPE')`) {
		t.Errorf("expected a where clause comparing v2, got %s", sql)
	}
	if !contains(sql, `select * from (select "r_regionkey" as v1`) {
		t.Errorf("expected the scan to be nested as the filter's input, got %s", sql)
	}
}

func TestGenerateProject(t *testing.T) {
	// project lowers to Map plus a binding-level trim: the underlying SQL
	// still selects every input column ("select *") alongside the fresh
	// projected one, since Map itself carries no notion of dropped columns.
	sql := mustGenerate(t, `region.project({r_name})`, sqlgen.Postgres{})
	want := `(select *, v2 as v4 from (select "r_regionkey" as v1, "r_name" as v2, "r_comment" as v3 from "region") s)`
	if sql != want {
		t.Errorf("got  %s\nwant %s", sql, want)
	}
}

func TestGenerateJoin(t *testing.T) {
	sql := mustGenerate(t, `orders.join(customer, o_custkey = c_custkey)`, sqlgen.Postgres{})
	if !contains(sql, " inner join ") {
		t.Errorf("expected an inner join, got %s", sql)
	}
	if !contains(sql, " on ") {
		t.Errorf("expected an on clause, got %s", sql)
	}
}

func TestGenerateLeftSemiJoinUsesExists(t *testing.T) {
	sql := mustGenerate(t, `orders.join(customer, o_custkey = c_custkey, type: leftsemi)`, sqlgen.Postgres{})
	if !contains(sql, "where exists (select * from") {
		t.Errorf("expected a correlated exists subquery, got %s", sql)
	}
}

func TestGenerateLeftAntiJoinNegatesExists(t *testing.T) {
	sql := mustGenerate(t, `orders.join(customer, o_custkey = c_custkey, type: leftanti)`, sqlgen.Postgres{})
	if !contains(sql, "where not exists (select * from") {
		t.Errorf("expected a negated correlated exists subquery, got %s", sql)
	}
}

func TestGenerateGroupByWithKeysAndAggregate(t *testing.T) {
	sql := mustGenerate(t, `orders.groupby({o_orderstatus}, {n: count()})`, sqlgen.Postgres{})
	if !contains(sql, "count(*)") {
		t.Errorf("expected count(*), got %s", sql)
	}
	if !contains(sql, "group by 1") {
		t.Errorf("expected group by 1, got %s", sql)
	}
}

func TestGenerateDistinctGroupsByEveryKeyNoAggregate(t *testing.T) {
	sql := mustGenerate(t, `orders.project({o_orderstatus}).distinct()`, sqlgen.Postgres{})
	if !contains(sql, "group by 1") {
		t.Errorf("expected group by 1, got %s", sql)
	}
}

func TestGenerateOrderByWithLimit(t *testing.T) {
	sql := mustGenerate(t, `orders.orderby({desc: o_orderdate}, limit: 10)`, sqlgen.Postgres{})
	if !contains(sql, "order by") || !contains(sql, "desc") || !contains(sql, "limit 10") {
		t.Errorf("expected a descending order by with a limit, got %s", sql)
	}
}

func TestGenerateOrderByCollate(t *testing.T) {
	sql := mustGenerate(t, `orders.orderby({collate(o_orderstatus, C)})`, sqlgen.Postgres{})
	if !contains(sql, `order by `) || !contains(sql, ` collate "C"`) {
		t.Errorf("expected an explicit collate clause, got %s", sql)
	}
}

func TestGenerateOrderByCollateNoneOmitsClause(t *testing.T) {
	sql := mustGenerate(t, `orders.orderby({collate(o_orderstatus, none)})`, sqlgen.Postgres{})
	if contains(sql, "collate") {
		t.Errorf("expected collate(x, none) to omit the clause entirely, got %s", sql)
	}
}

func TestGenerateWindowRowNumber(t *testing.T) {
	sql := mustGenerate(t, `orders.window({rn: rownumber()}, partitionby: {o_custkey}, orderby: {desc: o_orderdate})`, sqlgen.Postgres{})
	if !contains(sql, "row_number() over (partition by") {
		t.Errorf("expected a row_number() window function, got %s", sql)
	}
}

func TestGenerateUnionAll(t *testing.T) {
	sql := mustGenerate(t, `region.project({r_name}).unionall(nation.project({n_name}))`, sqlgen.Postgres{})
	if !contains(sql, " union all ") {
		t.Errorf("expected union all, got %s", sql)
	}
}

func TestGenerateAggregateScalar(t *testing.T) {
	sql := mustGenerate(t, `orders.aggregate({total: sum(o_totalprice)})`, sqlgen.Postgres{})
	if !contains(sql, "sum(") {
		t.Errorf("expected a sum aggregate, got %s", sql)
	}
	if sql[0] != '(' {
		t.Errorf("expected a parenthesised scalar sub-select, got %s", sql)
	}
}

func TestGenerateCoalesceLowersToCase(t *testing.T) {
	sql := mustGenerate(t, `coalesce(values: {orders.o_clerk, 'unknown'})`, sqlgen.Postgres{})
	if !contains(sql, "case when") || !contains(sql, "is not null then") {
		t.Errorf("expected a searched case, got %s", sql)
	}
}

func TestGenerateCastDialectDifference(t *testing.T) {
	pg := mustGenerate(t, `'2024-01-01' : date`, sqlgen.Postgres{})
	if !contains(pg, "cast(") || !contains(pg, " as date)") {
		t.Errorf("expected a standard cast under postgres, got %s", pg)
	}
	lite := mustGenerate(t, `'2024-01-01' : date`, sqlgen.SQLite{})
	if !contains(lite, "unixepoch(") {
		t.Errorf("expected unixepoch() under sqlite, got %s", lite)
	}
}

func contains(s, sub string) bool {
	return len(s) >= len(sub) && indexOf(s, sub) >= 0
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
