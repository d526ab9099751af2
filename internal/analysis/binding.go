package analysis

import (
	"github.com/ravelin-sql/saneql/internal/algebra"
	"github.com/ravelin-sql/saneql/internal/ast"
)

// GroupMode records whether the analyser is currently inside an
// aggregation argument, which relaxes or restricts which names a bare
// column reference may resolve to (spec §9: "a mode flag on
// BindingInfo").
type GroupMode uint8

const (
	GroupNone GroupMode = iota
	InsideAggregate
	InsideWindow
)

// ambiguous is a sentinel IU stored in a flat name map when two distinct
// columns would otherwise shadow each other (e.g. a join of two tables
// that both have a column named the same). Its address, not its
// contents, is the marker; it is never dereferenced for its type.
var ambiguous = &algebra.IU{}

// Column is one (name, IU) entry of a BindingInfo's ordered column list.
type Column struct {
	Name string
	IU   *algebra.IU
}

// scope is a named sub-binding, created by "as" or by one side of a
// join, mapping unqualified field names to IUs.
type scope struct {
	ambiguous bool
	columns   map[string]*algebra.IU
}

// argBinding is a lazily-evaluated let argument: the caller-provided (or
// default) AST plus the binding it must be analysed against.
type argBinding struct {
	expr    ast.Expr
	binding *BindingInfo
	limit   int
}

// BindingInfo is the set of names visible at one point in the algebra
// tree: the ordered columns of the current table, any named scopes
// introduced by "as" or "join", the let-call arguments currently bound,
// an optional parent scope for nested scalar sub-analyses, and the
// current aggregation mode.
type BindingInfo struct {
	Columns   []Column
	byName    map[string]*algebra.IU
	scopes    map[string]*scope
	arguments map[string]argBinding
	Parent    *BindingInfo
	GroupMode GroupMode
	// groupKeys, when GroupMode == GroupNone but the binding was built by
	// a groupby's aggregate-argument analysis, holds the IUs legal to
	// reference directly (group keys); nil outside that context.
	groupKeys map[*algebra.IU]bool
}

// NewBindingInfo returns an empty binding with no parent.
func NewBindingInfo() *BindingInfo {
	return &BindingInfo{byName: map[string]*algebra.IU{}}
}

// AddColumn appends (name, iu) to the binding's ordered column list and
// flat name map, marking the name ambiguous if it was already present.
func (b *BindingInfo) AddColumn(name string, iu *algebra.IU) {
	b.Columns = append(b.Columns, Column{Name: name, IU: iu})
	if b.byName == nil {
		b.byName = map[string]*algebra.IU{}
	}
	if _, exists := b.byName[name]; exists {
		b.byName[name] = ambiguous
		return
	}
	b.byName[name] = iu
}

// AddScope registers a named scope (e.g. "t" after ".as(t)"), merging
// with any existing scope under that name and marking it ambiguous if a
// field collides — mirrors what a repeated join alias does.
func (b *BindingInfo) AddScope(name string, columns map[string]*algebra.IU) {
	if b.scopes == nil {
		b.scopes = map[string]*scope{}
	}
	existing, ok := b.scopes[name]
	if !ok {
		cp := make(map[string]*algebra.IU, len(columns))
		for k, v := range columns {
			cp[k] = v
		}
		b.scopes[name] = &scope{columns: cp}
		return
	}
	existing.ambiguous = true
	for k, v := range columns {
		existing.columns[k] = v
	}
}

// Lookup resolves a bare name against the flat column map, returning
// (iu, found, ambiguous).
func (b *BindingInfo) Lookup(name string) (*algebra.IU, bool, bool) {
	iu, ok := b.byName[name]
	if !ok {
		return nil, false, false
	}
	if iu == ambiguous {
		return nil, true, true
	}
	return iu, true, false
}

// LookupScope resolves a qualified "scope.field" reference, returning
// (iu, found, ambiguous).
func (b *BindingInfo) LookupScope(scopeName, field string) (*algebra.IU, bool, bool) {
	sc, ok := b.scopes[scopeName]
	if !ok {
		return nil, false, false
	}
	iu, ok := sc.columns[field]
	if !ok {
		return nil, false, false
	}
	if sc.ambiguous {
		return nil, true, true
	}
	return iu, true, false
}

// HasScope reports whether name is registered as a named scope.
func (b *BindingInfo) HasScope(name string) bool {
	_, ok := b.scopes[name]
	return ok
}

// WithGroupMode returns a shallow copy of b with GroupMode set to mode,
// used to analyse aggregate-function arguments and window arguments
// without mutating the enclosing binding.
func (b *BindingInfo) WithGroupMode(mode GroupMode) *BindingInfo {
	cp := *b
	cp.GroupMode = mode
	return &cp
}

// BindArgument registers a let-call argument: the AST to (re-)analyse on
// each reference, the binding it must be analysed against, and the
// let-visibility limit in force at the point it should be (re-)analysed
// — all per the lazy-by-AST/hygienic-scoping rule.
func (b *BindingInfo) BindArgument(name string, expr ast.Expr, binding *BindingInfo, limit int) {
	if b.arguments == nil {
		b.arguments = map[string]argBinding{}
	}
	b.arguments[name] = argBinding{expr: expr, binding: binding, limit: limit}
}

// LookupArgument returns the AST, scope, and let-visibility limit
// registered for a let argument name, if any.
func (b *BindingInfo) LookupArgument(name string) (ast.Expr, *BindingInfo, int, bool) {
	arg, ok := b.arguments[name]
	if !ok {
		return nil, nil, 0, false
	}
	return arg.expr, arg.binding, arg.limit, ok
}

// NewChildForLetCall builds a binding for the body of a let invocation:
// it carries the callee's own argument bindings and points Parent at the
// caller's binding (not used for name resolution directly — arguments
// are resolved by name through the arguments map, lazily, in the
// caller's scope).
func NewChildForLetCall(parent *BindingInfo) *BindingInfo {
	return &BindingInfo{
		byName:    map[string]*algebra.IU{},
		arguments: map[string]argBinding{},
		Parent:    parent,
	}
}
