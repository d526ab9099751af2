package algebra

import (
	"testing"

	"github.com/ravelin-sql/saneql/internal/types"
)

func TestIUAllocatorNumbersFromOne(t *testing.T) {
	a := NewIUAllocator()
	iu1 := a.New(types.IntegerType())
	iu2 := a.New(types.TextType())
	if iu1.ID() != 1 || iu2.ID() != 2 {
		t.Fatalf("got ids %d, %d, want 1, 2", iu1.ID(), iu2.ID())
	}
}

func TestIUAllocatorRestartsPerInstance(t *testing.T) {
	a1 := NewIUAllocator()
	a1.New(types.IntegerType())
	a2 := NewIUAllocator()
	iu := a2.New(types.IntegerType())
	if iu.ID() != 1 {
		t.Fatalf("expected fresh allocator to start at 1, got %d", iu.ID())
	}
}

func TestTableScanColumns(t *testing.T) {
	a := NewIUAllocator()
	cols := []*IU{a.New(types.IntegerType()), a.New(types.TextType())}
	scan := &TableScan{TableName: "region", ColNames: []string{"r_regionkey", "r_name"}, Cols: cols}
	if len(scan.Columns()) != 2 {
		t.Fatalf("got %d columns", len(scan.Columns()))
	}
}

func TestMapAppendsToInputColumns(t *testing.T) {
	a := NewIUAllocator()
	scanIU := a.New(types.IntegerType())
	scan := &TableScan{Cols: []*IU{scanIU}}
	mapIU := a.New(types.IntegerType())
	m := &Map{Input: scan, Entries: []MapEntry{{Expr: &IURef{IU: scanIU}, IU: mapIU}}}
	cols := m.Columns()
	if len(cols) != 2 || cols[0] != scanIU || cols[1] != mapIU {
		t.Fatalf("got %+v", cols)
	}
}

func TestJoinSemiKeepsOnlyLeftColumns(t *testing.T) {
	a := NewIUAllocator()
	left := &TableScan{Cols: []*IU{a.New(types.IntegerType())}}
	right := &TableScan{Cols: []*IU{a.New(types.IntegerType())}}
	j := &Join{Left: left, Right: right, Kind: LeftSemi}
	if len(j.Columns()) != 1 {
		t.Fatalf("expected semi-join to keep only left columns, got %d", len(j.Columns()))
	}
}

func TestComparisonNullability(t *testing.T) {
	nullableInt := &Const{Typ: types.IntegerType().Nullable(), Null: true}
	nonNull := &Const{Typ: types.IntegerType(), Value: "1"}
	cmp := &Comparison{L: nullableInt, R: nonNull, Mode: CmpEq}
	if !cmp.Type().IsNullable() {
		t.Error("expected = comparison with a nullable operand to be nullable")
	}
	is := &Comparison{L: nullableInt, R: nonNull, Mode: CmpIs}
	if is.Type().IsNullable() {
		t.Error("expected IS comparison to never be nullable")
	}
}
