package sqlgen

import (
	"github.com/ravelin-sql/saneql/internal/algebra"
	"github.com/ravelin-sql/saneql/internal/types"
)

// SQLite overrides Cast for the two target types SQLite has no native
// representation for: a cast to Date renders as unixepoch(child), and a
// cast to Interval renders as unixepoch(0, child) — the child read as an
// offset modifier relative to the epoch. Every other target type falls
// through to the standard rendering.
type SQLite struct{}

func (SQLite) WriteCast(w *Writer, c *algebra.Cast) {
	switch c.Typ.Tag() {
	case types.Date:
		w.Write("unixepoch(")
		w.GenerateExpression(c.Child)
		w.Write(")")
	case types.Interval:
		w.Write("unixepoch(0, ")
		w.GenerateExpression(c.Child)
		w.Write(")")
	default:
		Postgres{}.WriteCast(w, c)
	}
}
