package driver_test

import (
	"strings"
	"testing"

	"github.com/ravelin-sql/saneql/internal/driver"
	"github.com/ravelin-sql/saneql/internal/schema"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	c := driver.New(schema.TPCH())
	sql, err := c.Compile(src)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return sql
}

func TestGoldenScalarArithmeticIsNotFolded(t *testing.T) {
	got := compile(t, "1+2")
	want := "select (cast(1 as integer)) + (cast(2 as integer))"
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestGoldenFilter(t *testing.T) {
	got := compile(t, `region.filter(r_name='EUROPE')`)
	want := `select v1 as r_regionkey, v2 as r_name, v3 as r_comment from (select * from (select "r_regionkey" as v1, "r_name" as v2, "r_comment" as v3 from "region") s where (v2) = ('EUROPE')) s`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestGoldenGroupBy(t *testing.T) {
	got := compile(t, `orders.groupby({o_orderstatus}, {n:count()})`)
	if !containsAll(got, []string{"group by 1", "count(*)"}) {
		t.Errorf("got %s", got)
	}
	if !hasPrefix(got, "select ") {
		t.Errorf("expected the outer peel to start with a plain select, got %s", got)
	}
}

func TestGoldenOrderByLimit(t *testing.T) {
	got := compile(t, `region.orderby({r_name}, limit:3)`)
	want := `select v1 as r_regionkey, v2 as r_name, v3 as r_comment from (select "r_regionkey" as v1, "r_name" as v2, "r_comment" as v3 from "region") s order by v2 limit 3`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestGoldenAggregateScalar(t *testing.T) {
	got := compile(t, `region.aggregate(count())`)
	want := `select (select count(*) from (select "r_regionkey" as v1, "r_name" as v2, "r_comment" as v3 from "region") s)`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestGoldenFilterTrueIsEquivalentToPlainScan(t *testing.T) {
	plain := compile(t, "region")
	filtered := compile(t, "region.filter(true)")
	// Invariant 4: filter(true) must not change the set of emitted
	// columns or their order, only add a redundant "where true" layer.
	if !sameColumnNames(plain, filtered) {
		t.Errorf("filter(true) changed the projected columns:\nplain:    %s\nfiltered: %s", plain, filtered)
	}
}

func TestGoldenAliasIdempotence(t *testing.T) {
	a := compile(t, `region.as(a).as(b).filter(b.r_name = 'EUROPE')`)
	b := compile(t, `region.as(b).filter(b.r_name = 'EUROPE')`)
	if !sameColumnNames(a, b) {
		t.Errorf("re-aliasing changed the final column names:\na: %s\nb: %s", a, b)
	}
}

func TestGoldenDeterminism(t *testing.T) {
	src := `orders.join(customer, o_custkey = c_custkey).filter(o_totalprice > 100).project({o_orderkey, c_name})`
	first := compile(t, src)
	second := compile(t, src)
	if first != second {
		t.Errorf("two compilations of the same query diverged:\n%s\n%s", first, second)
	}
}

func TestVerifyAcceptsRealQueries(t *testing.T) {
	c := driver.New(schema.TPCH())
	c.Verify = true
	if _, err := c.Compile(`orders.join(customer, o_custkey = c_custkey).filter(o_totalprice > 100)`); err != nil {
		t.Errorf("expected a verified compile to succeed, got %v", err)
	}
}

func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if indexOf(s, sub) < 0 {
			return false
		}
	}
	return true
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// sameColumnNames compares the "as <name>" tail of every top-level
// projected column between two compiled outputs, ignoring the "v<n>"
// alias numbers (which may legitimately differ between queries).
func sameColumnNames(a, b string) bool {
	return extractPrefix(a, " from ") == extractPrefix(b, " from ")
}

func extractPrefix(s, sep string) string {
	i := indexOf(s, sep)
	if i < 0 {
		return s
	}
	return normalizeAliases(s[len("select "):i])
}

// normalizeAliases strips the "v<n> as " prefix from each comma-separated
// column entry, leaving just the final display names in order.
func normalizeAliases(colList string) string {
	entries := strings.Split(colList, ", ")
	names := make([]string, len(entries))
	for i, entry := range entries {
		if as := strings.Index(entry, " as "); as >= 0 {
			entry = entry[as+4:]
		}
		names[i] = entry
	}
	return strings.Join(names, ",")
}
