package dataset

import "fmt"

// SchemaError reports a required column missing from an input table. Unlike
// missing join keys, which degrade to nulls, a schema violation aborts the
// run before any computation: downstream nulls would be indistinguishable
// from legitimately missing data.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input table %q is missing required column %q", e.Table, e.Column)
}

// checkColumns verifies every required column is present, returning a
// SchemaError naming the first missing one.
func checkColumns(table string, present map[string]bool, required []string) error {
	for _, col := range required {
		if !present[col] {
			return &SchemaError{Table: table, Column: col}
		}
	}
	return nil
}
