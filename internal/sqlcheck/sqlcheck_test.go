package sqlcheck_test

import (
	"testing"

	"github.com/ravelin-sql/saneql/internal/driver"
	"github.com/ravelin-sql/saneql/internal/schema"
	"github.com/ravelin-sql/saneql/internal/sqlcheck"
)

func TestValidateAcceptsGeneratedSQL(t *testing.T) {
	c := driver.New(schema.TPCH())
	sql, err := c.Compile(`region.filter(r_name='EUROPE').project({r_name})`)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if err := sqlcheck.Validate(sql); err != nil {
		t.Errorf("expected generated SQL to round-trip, got %v\nsql: %s", err, sql)
	}
}

func TestValidateRejectsMalformedSQL(t *testing.T) {
	if err := sqlcheck.Validate("select * from where ("); err == nil {
		t.Fatal("expected an error for malformed SQL")
	}
}

func TestCheckReportsInvalidWithoutError(t *testing.T) {
	res, err := sqlcheck.Check("select * from (")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Valid {
		t.Fatal("expected Valid to be false")
	}
	if res.Error == "" {
		t.Error("expected a non-empty error message")
	}
}
