package analysis

import (
	"fmt"

	"github.com/ravelin-sql/saneql/internal/ast"
)

// CompileError is the single failure channel for semantic analysis: a
// message plus the source position that triggered it. Analysis halts at
// the first one — there is no partial recovery (spec §7).
type CompileError struct {
	Message string
	Pos     ast.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Col, e.Message)
}

func errf(pos ast.Pos, format string, args ...interface{}) error {
	return &CompileError{Message: fmt.Sprintf(format, args...), Pos: pos}
}
