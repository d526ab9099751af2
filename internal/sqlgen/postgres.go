package sqlgen

import "github.com/ravelin-sql/saneql/internal/algebra"

// Postgres is the default dialect: every Cast renders as a standard SQL
// "cast(expr as type)", for every target type including Date and
// Interval.
type Postgres struct{}

func (Postgres) WriteCast(w *Writer, c *algebra.Cast) {
	w.Write("cast(")
	w.GenerateExpression(c.Child)
	w.Write(" as ")
	w.WriteType(c.Typ)
	w.Write(")")
}
