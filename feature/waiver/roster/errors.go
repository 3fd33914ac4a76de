package roster

import (
	"fmt"
	"strings"
)

// SchemaError indicates the identifier column could not be located, even
// after the header fallback scan.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("could not find %q column in the roster file; make sure the column is named exactly %q", e.Column, e.Column)
}

// DuplicateIDError indicates one or more identifiers occur more than once
// in the roster. IDs holds each distinct offending value.
type DuplicateIDError struct {
	IDs []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate student IDs found in roster: %s", strings.Join(e.IDs, ", "))
}

// ParseError indicates a cell value could not be coerced to an identifier.
type ParseError struct {
	Row   int
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse %q as a student ID", e.Row, e.Value)
}
