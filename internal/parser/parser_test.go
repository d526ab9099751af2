package parser

import (
	"testing"

	"github.com/ravelin-sql/saneql/internal/ast"
)

func TestParseSimpleChain(t *testing.T) {
	q, err := Parse(`region.filter(r_name='EUROPE')`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := q.Body.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", q.Body)
	}
	if call.Name != "filter" {
		t.Errorf("got call name %q", call.Name)
	}
	recv, ok := call.Recv.(*ast.Ident)
	if !ok || recv.Name != "region" {
		t.Errorf("expected receiver ident 'region', got %#v", call.Recv)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(call.Args))
	}
}

func TestParseBraceList(t *testing.T) {
	q, err := Parse(`orders.groupby({o_orderstatus}, {n: count()})`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := q.Body.(*ast.Call)
	if call.Name != "groupby" || len(call.Args) != 2 {
		t.Fatalf("got %+v", call)
	}
	keys, ok := call.Args[0].Value.(*ast.Call)
	if !ok || keys.Name != ast.ListMarker {
		t.Fatalf("expected list marker for keys, got %#v", call.Args[0].Value)
	}
	aggs := call.Args[1].Value.(*ast.Call)
	if aggs.Args[0].Name != "n" {
		t.Errorf("expected named aggregate 'n', got %q", aggs.Args[0].Name)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	q, err := Parse("1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, ok := q.Body.(*ast.BinaryExpression)
	if !ok || top.Op != ast.OpAdd {
		t.Fatalf("expected top-level +, got %#v", q.Body)
	}
	rhs, ok := top.Rhs.(*ast.BinaryExpression)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected rhs to be *, got %#v", top.Rhs)
	}
}

func TestParseCast(t *testing.T) {
	q, err := Parse("1 : decimal(10,2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cast, ok := q.Body.(*ast.Cast)
	if !ok {
		t.Fatalf("expected *ast.Cast, got %T", q.Body)
	}
	if cast.Type.Name != "decimal" || len(cast.Type.Args) != 2 || cast.Type.Args[0] != 10 || cast.Type.Args[1] != 2 {
		t.Errorf("got %+v", cast.Type)
	}
}

func TestParseLetDeclaration(t *testing.T) {
	q, err := Parse(`let double(x) := x * 2; double(21)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Lets) != 1 || q.Lets[0].Name != "double" {
		t.Fatalf("got lets %+v", q.Lets)
	}
	if len(q.Lets[0].Signature) != 1 || q.Lets[0].Signature[0].Name != "x" {
		t.Fatalf("got signature %+v", q.Lets[0].Signature)
	}
	call := q.Body.(*ast.Call)
	if call.Name != "double" {
		t.Errorf("got call %+v", call)
	}
}

func TestParseIsNot(t *testing.T) {
	q, err := Parse("a is not null")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, ok := q.Body.(*ast.BinaryExpression)
	if !ok || bin.Op != ast.OpIsNot {
		t.Fatalf("expected IS NOT, got %#v", q.Body)
	}
}

func TestParseAccessChain(t *testing.T) {
	q, err := Parse("t.c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	acc, ok := q.Body.(*ast.Access)
	if !ok || acc.Field != "c" {
		t.Fatalf("got %#v", q.Body)
	}
	base, ok := acc.Base.(*ast.Ident)
	if !ok || base.Name != "t" {
		t.Fatalf("got base %#v", acc.Base)
	}
}

func TestParseErrorOnTrailingInput(t *testing.T) {
	_, err := Parse("1 2")
	if err == nil {
		t.Fatal("expected error for trailing input")
	}
}
