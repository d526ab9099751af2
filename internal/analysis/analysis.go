// Package analysis implements semantic analysis: it turns a parsed
// ast.Query into a typed algebra tree bound to a schema, resolving
// scopes, applying implicit casts, validating argument shapes, enforcing
// aggregation rules, and expanding user-defined lets.
package analysis

import (
	"github.com/ravelin-sql/saneql/internal/algebra"
	"github.com/ravelin-sql/saneql/internal/ast"
	"github.com/ravelin-sql/saneql/internal/schema"
)

// Result is the tagged union analysis produces: either a scalar
// expression or a table-valued operator with its binding.
type Result struct {
	IsTable bool
	Expr    algebra.Expression // valid iff !IsTable
	Op      algebra.Operator   // valid iff IsTable
	Binding *BindingInfo       // valid iff IsTable
}

// Analyzer holds the per-compilation state: the schema being analysed
// against, the IU allocator, and the let declarations in scope. A fresh
// Analyzer must be used per compilation — nextSymbolID and the IU
// allocator are not safe to share across compilations.
type Analyzer struct {
	schema        schema.Catalogue
	alloc         *algebra.IUAllocator
	lets          []*ast.LetEntry
	letLookup     map[string]int
	nextSymbolID  int
}

// Analyze runs semantic analysis on a complete query against cat.
func Analyze(cat schema.Catalogue, q *ast.Query) (*Result, error) {
	a := &Analyzer{
		schema:    cat,
		alloc:     algebra.NewIUAllocator(),
		lets:      q.Lets,
		letLookup: map[string]int{},
	}
	for i, l := range q.Lets {
		if _, dup := a.letLookup[l.Name]; dup {
			return nil, errf(l.Pos(), "duplicate let %q", l.Name)
		}
		a.letLookup[l.Name] = i
	}
	return a.analyzeExpr(q.Body, NewBindingInfo(), len(q.Lets))
}

// analyzeExpr dispatches an AST node to its production rule. limit is
// the index of the first let NOT currently visible (the
// "letScopeLimit"): a reference to lets[i] is legal only if i < limit.
func (a *Analyzer) analyzeExpr(e ast.Expr, b *BindingInfo, limit int) (*Result, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return a.analyzeLiteral(n)
	case *ast.Ident:
		return a.analyzeIdent(n, b, limit)
	case *ast.Access:
		return a.analyzeAccess(n, b, limit)
	case *ast.BinaryExpression:
		return a.analyzeBinary(n, b, limit)
	case *ast.UnaryExpression:
		return a.analyzeUnary(n, b, limit)
	case *ast.Cast:
		return a.analyzeCast(n, b, limit)
	case *ast.Call:
		return a.analyzeCall(n, b, limit)
	default:
		return nil, errf(e.Pos(), "internal: unhandled AST node %T", e)
	}
}

// requireScalar analyses e and reports an error if it turns out to be
// table-valued.
func (a *Analyzer) requireScalar(e ast.Expr, b *BindingInfo, limit int) (algebra.Expression, error) {
	res, err := a.analyzeExpr(e, b, limit)
	if err != nil {
		return nil, err
	}
	if res.IsTable {
		return nil, errf(e.Pos(), "expected a scalar expression, got a table")
	}
	return res.Expr, nil
}

// requireTable analyses e and reports an error if it turns out to be
// scalar.
func (a *Analyzer) requireTable(e ast.Expr, b *BindingInfo, limit int) (*Result, error) {
	res, err := a.analyzeExpr(e, b, limit)
	if err != nil {
		return nil, err
	}
	if !res.IsTable {
		return nil, errf(e.Pos(), "expected a table, got a scalar expression")
	}
	return res, nil
}

// gensym returns a fresh, per-analyser-unique symbol name.
func (a *Analyzer) gensym() string {
	a.nextSymbolID++
	return symbolPrefix(a.nextSymbolID)
}

func symbolPrefix(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	s := make([]byte, 0, 4)
	for n > 0 {
		n--
		s = append([]byte{letters[n%26]}, s...)
		n /= 26
	}
	if len(s) == 0 {
		s = []byte{'a'}
	}
	return "$" + string(s)
}
