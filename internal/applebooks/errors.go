package applebooks

import "fmt"

// DataAccessError is returned when a query cannot run against the Apple Books
// stores at all (missing attachment, unexpected schema, unreadable file).
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// rowDecodeError describes a single row that could not be mapped. It never
// leaves the package: the row is logged and skipped.
type rowDecodeError struct {
	Entity string
	Err    error
}

func (e *rowDecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s row: %v", e.Entity, e.Err)
}

func (e *rowDecodeError) Unwrap() error {
	return e.Err
}
