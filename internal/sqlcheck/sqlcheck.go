// Package sqlcheck validates generated SQL by round-tripping it through a
// real SQL parser rather than trusting the generator's own bookkeeping.
// It plays the same role the teacher's validator package plays for
// translated queries, narrowed to the one dialect pg_query_go can parse.
package sqlcheck

import (
	pg_query "github.com/pganalyze/pg_query_go/v5"
)

// Validate parses sql as PostgreSQL and reports a parse error if it is
// malformed: unbalanced parentheses, an unquoted identifier that collides
// with a keyword, a dropped comma, and similar generator bugs all surface
// here instead of at the database.
func Validate(sql string) error {
	_, err := pg_query.Parse(sql)
	return err
}

// Result is the detailed counterpart to Validate, mirroring the
// engine validator's ValidationResult shape for callers that want to
// report the failure rather than just detect it.
type Result struct {
	Valid bool
	Error string
}

// Check parses sql and returns a Result instead of a bare error, for
// callers (e.g. a CLI "--verify" flag) that want to report rather than
// abort on an invalid query.
func Check(sql string) (*Result, error) {
	if _, err := pg_query.Parse(sql); err != nil {
		return &Result{Valid: false, Error: err.Error()}, nil
	}
	return &Result{Valid: true}, nil
}
