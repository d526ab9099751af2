package sqlgen

import "github.com/ravelin-sql/saneql/internal/algebra"

// Dialect supplies the one piece of generation that differs across
// backends: how an explicit Cast renders. Every other operator and
// expression form is shared between dialects.
type Dialect interface {
	WriteCast(w *Writer, c *algebra.Cast)
}
