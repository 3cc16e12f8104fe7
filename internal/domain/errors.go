package domain

import (
	"errors"
	"fmt"
)

// LoadError reports that a source table could not be loaded. It is fatal to a run.
type LoadError struct {
	Path   string
	Line   int    // 0 when the failure is not tied to a line
	Column string // "" when the failure is not tied to a column
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("failed to load table %q (line %d, column %q): %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("failed to load table %q (line %d): %v", e.Path, e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("failed to load table %q (column %q): %v", e.Path, e.Column, e.Err)
	default:
		return fmt.Sprintf("failed to load table %q: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// Causes carried by ColumnError.
var (
	ErrColumnNotFound    = errors.New("not found")
	ErrColumnNotNumeric  = errors.New("not numeric")
	ErrColumnNotTemporal = errors.New("not a timestamp or year column")
	ErrTooFewColumns     = errors.New("correlation needs at least two numeric columns")
)

// ColumnError reports a requested column that is absent from a table or unusable for an
// operator. It fails a single panel, never the whole report.
type ColumnError struct {
	Table  string
	Column string // "" when the failure concerns the table as a whole
	Err    error
}

func (e *ColumnError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("table %q: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("column %q in table %q: %v", e.Column, e.Table, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }
