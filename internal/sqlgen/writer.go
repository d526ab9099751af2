// Package sqlgen renders a typed algebra tree into SQL text: a pair of
// visitors (one over operators, one over expressions) writing into a
// Writer, which names each IU by a stable alias derived from its ID.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/ravelin-sql/saneql/internal/algebra"
	"github.com/ravelin-sql/saneql/internal/types"
)

// Writer accumulates generated SQL text for one compilation. Column
// aliases are derived straight from each IU's allocation-order ID, which
// is what makes two compilations of the same query byte-identical.
type Writer struct {
	sb      strings.Builder
	Dialect Dialect
}

// NewWriter returns a fresh Writer rendering Cast the way d specifies.
func NewWriter(d Dialect) *Writer {
	return &Writer{Dialect: d}
}

// String returns the SQL text accumulated so far.
func (w *Writer) String() string { return w.sb.String() }

// Write appends raw SQL text.
func (w *Writer) Write(s string) { w.sb.WriteString(s) }

// Writef appends formatted SQL text.
func (w *Writer) Writef(format string, a ...interface{}) { fmt.Fprintf(&w.sb, format, a...) }

// Alias returns iu's "v<n>" identifier, derived from its allocation order.
func (w *Writer) Alias(iu *algebra.IU) string {
	return fmt.Sprintf("v%d", iu.ID())
}

// WriteIdentifier double-quotes name, doubling any embedded quote.
func (w *Writer) WriteIdentifier(name string) {
	w.sb.WriteByte('"')
	w.sb.WriteString(strings.ReplaceAll(name, `"`, `""`))
	w.sb.WriteByte('"')
}

// WriteStringLiteral single-quotes s, doubling any embedded quote.
func (w *Writer) WriteStringLiteral(s string) {
	w.sb.WriteByte('\'')
	w.sb.WriteString(strings.ReplaceAll(s, "'", "''"))
	w.sb.WriteByte('\'')
}

// WriteType prints the canonical SQL type name, e.g. "decimal(10,2)".
func (w *Writer) WriteType(t types.Type) { w.Write(t.SQLName()) }
