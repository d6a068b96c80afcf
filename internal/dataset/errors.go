package dataset

import (
	"fmt"
	"strings"
)

// ConnectionError means the database could not be opened or reached. Nothing was queried.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s database: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError reports the statement that aborted the batch. Index is zero-based.
type QueryError struct {
	Index int
	SQL   string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %d failed: %v", e.Index+1, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// SchemaMismatchError is returned when a column is missing from a result or holds values
// that cannot be read the way the caller asked for.
type SchemaMismatchError struct {
	Column    string
	Available []string
	Reason    string // empty when the column is missing
}

func (e *SchemaMismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("column %q not found in result (columns: %s)", e.Column, strings.Join(e.Available, ", "))
}
