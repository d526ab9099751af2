// Package driver wires the parser, semantic analyser, and SQL generator
// into a single compile(source, schema) -> sql entry point, and applies
// the cosmetic top-level "trailing Sort peel" described in the design
// notes: a top-level Sort is rendered as a plain projection with an
// order-by tail rather than wrapped in one more subquery.
package driver

import (
	"fmt"

	"github.com/ravelin-sql/saneql/internal/algebra"
	"github.com/ravelin-sql/saneql/internal/analysis"
	"github.com/ravelin-sql/saneql/internal/parser"
	"github.com/ravelin-sql/saneql/internal/schema"
	"github.com/ravelin-sql/saneql/internal/sqlcheck"
	"github.com/ravelin-sql/saneql/internal/sqlgen"
)

// Compiler holds the state needed to compile SaneQL source into SQL: the
// schema queries are analysed against, the target dialect, an optional
// cache consulted before and after the (always single-threaded) compile
// pass, and an optional post-generation SQL round-trip check.
type Compiler struct {
	Schema  schema.Catalogue
	Dialect sqlgen.Dialect
	Cache   CompileCache

	// Verify, when set, round-trips every freshly generated (non-cached)
	// query through sqlcheck before returning it. A hit served from Cache
	// is trusted without re-verification, since it was verified on the
	// compile that first populated it.
	Verify bool
}

// CompileCache is consulted by Compile before running the pipeline and
// populated after a cache miss. Implementations (see
// internal/compilecache) must be safe to share across Compiler values.
type CompileCache interface {
	Get(key string) (sql string, ok bool)
	Put(key string, sql string)
}

// New returns a Compiler targeting cat with the PostgreSQL dialect.
func New(cat schema.Catalogue) *Compiler {
	return &Compiler{Schema: cat, Dialect: sqlgen.Postgres{}}
}

// Compile parses, analyses, and generates SQL for source. Compilation is
// one synchronous pass; it never retries and never partially recovers
// from an error.
func (c *Compiler) Compile(source string) (string, error) {
	if c.Cache != nil {
		if sql, ok := c.Cache.Get(source); ok {
			return sql, nil
		}
	}
	q, err := parser.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}
	res, err := analysis.Analyze(c.Schema, q)
	if err != nil {
		return "", fmt.Errorf("analysis error: %w", err)
	}
	dialect := c.Dialect
	if dialect == nil {
		dialect = sqlgen.Postgres{}
	}
	sql := generateTopLevel(res, dialect)
	if c.Verify {
		if err := sqlcheck.Validate(sql); err != nil {
			return "", fmt.Errorf("generated SQL failed to round-trip: %w", err)
		}
	}
	if c.Cache != nil {
		c.Cache.Put(source, sql)
	}
	return sql, nil
}

// generateTopLevel renders the final result: a scalar emits "select
// <expr>"; a table whose root operator is a Sort has that Sort peeled
// into the outer select instead of being wrapped as one more subquery;
// any other table emits "select <cols> from <op> s".
func generateTopLevel(res *analysis.Result, dialect sqlgen.Dialect) string {
	w := sqlgen.NewWriter(dialect)
	if !res.IsTable {
		w.Write("select ")
		w.GenerateExpression(res.Expr)
		return w.String()
	}

	w.Write("select ")
	writeColumnList(w, res.Binding.Columns)
	w.Write(" from ")

	if sort, ok := res.Op.(*algebra.Sort); ok {
		w.GenerateOperator(sort.Input)
		w.Write(" s")
		w.WriteOrderByLimitOffset(sort.Items, sort.Limit, sort.Offset)
		return w.String()
	}

	w.GenerateOperator(res.Op)
	w.Write(" s")
	return w.String()
}

func writeColumnList(w *sqlgen.Writer, cols []analysis.Column) {
	for i, col := range cols {
		if i > 0 {
			w.Write(", ")
		}
		w.Write(w.Alias(col.IU))
		w.Write(" as ")
		w.Write(col.Name)
	}
}
