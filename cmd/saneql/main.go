// Command saneql compiles SaneQL source into SQL against the built-in
// TPC-H schema. One or more filenames are given on the command line; their
// concatenated contents form the query.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ravelin-sql/saneql/internal/driver"
	"github.com/ravelin-sql/saneql/internal/schema"
	"github.com/ravelin-sql/saneql/internal/sqlgen"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "error: usage: saneql <file> [file...]")
		os.Exit(1)
	}

	var parts []string
	for _, name := range os.Args[1:] {
		data, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		parts = append(parts, string(data))
	}
	source := strings.Join(parts, "\n")

	c := driver.New(schema.TPCH())
	if os.Getenv("dialect") == "sqlite" {
		c.Dialect = sqlgen.SQLite{}
	}

	sql, err := c.Compile(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(sql)
}
