// Package algebra implements the typed relational-algebra intermediate
// representation: a closed set of expression and operator node kinds
// connected by Information Units (IUs), the opaque column handles that
// the semantic analyser mints and the SQL generator reads back.
package algebra

import "github.com/ravelin-sql/saneql/internal/types"

// IU is an Information Unit: the identity of a single column produced by
// exactly one operator in the tree. IUs are compared by pointer identity,
// never by value — two IUs sharing a type are not interchangeable. Only
// the IUAllocator that owns a compilation may construct one.
type IU struct {
	id  int
	typ types.Type
}

// ID is the allocation-order index of the IU, stable for one compilation
// and used by the generator to derive deterministic "v<n>" aliases.
func (iu *IU) ID() int { return iu.id }

// Type returns the IU's value type.
func (iu *IU) Type() types.Type { return iu.typ }

// IUAllocator mints IUs for a single compilation. Numbering restarts at 1
// for every new allocator, which is what makes two compilations of the
// same query produce byte-identical SQL (testable property 6).
type IUAllocator struct {
	next int
}

// NewIUAllocator returns an allocator with its counter at zero.
func NewIUAllocator() *IUAllocator {
	return &IUAllocator{}
}

// New mints a fresh IU of the given type.
func (a *IUAllocator) New(t types.Type) *IU {
	a.next++
	return &IU{id: a.next, typ: t}
}
