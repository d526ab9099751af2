// Package schema provides the read-only table catalogue the analyser
// resolves table() and access expressions against. Concrete catalogues
// (the built-in TPC-H schema, the empty schema, and the MongoDB-backed
// loader in mongoschema.go) all implement Catalogue.
package schema

import (
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/ravelin-sql/saneql/internal/types"
)

// Column is one column of a Table: its name and declared type.
type Column struct {
	Name string
	Type types.Type
}

// Table is an ordered list of columns under a table name.
type Table struct {
	Name    string
	Columns []Column
}

// Catalogue maps lowercase table names to their column lists. Concrete
// implementations are external to the core in spirit; this package ships
// the two built-ins spec.md requires (empty, TPC-H) plus one additional
// backend (MongoDB) from the domain stack.
type Catalogue interface {
	// LookupTable returns the table registered under name, or nil if
	// there is none. name is matched case-insensitively.
	LookupTable(name string) *Table
}

// StaticCatalogue is a Catalogue backed by an in-memory map, used by both
// Empty and TPCH and by tests that build ad hoc schemas.
type StaticCatalogue struct {
	tables map[string]*Table
}

// NewStaticCatalogue builds a StaticCatalogue from a list of tables.
func NewStaticCatalogue(tables ...Table) *StaticCatalogue {
	c := &StaticCatalogue{tables: make(map[string]*Table, len(tables))}
	for i := range tables {
		t := tables[i]
		c.tables[strings.ToLower(t.Name)] = &t
	}
	return c
}

// LookupTable implements Catalogue. It first tries the exact lowercase
// name, then the inflected singular/plural forms — a small ergonomic
// extension (not required by spec.md) so that a let argument named
// "order" can resolve against a schema table named "orders".
func (c *StaticCatalogue) LookupTable(name string) *Table {
	key := strings.ToLower(name)
	if t, ok := c.tables[key]; ok {
		return t
	}
	if t, ok := c.tables[strings.ToLower(inflection.Plural(key))]; ok {
		return t
	}
	if t, ok := c.tables[strings.ToLower(inflection.Singular(key))]; ok {
		return t
	}
	return nil
}

// Empty returns the empty schema (no tables registered).
func Empty() Catalogue {
	return NewStaticCatalogue()
}
