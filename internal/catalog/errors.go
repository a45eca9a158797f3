package catalog

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by a fallback source that has nothing to offer.
var ErrNoData = errors.New("catalog: source has no data")

// TransportError wraps any remote-store failure of a gateway operation.
type TransportError struct {
	Op  string // gateway operation, e.g. "fetchAll"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("catalog %s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DataError reports a stored row that cannot be represented in the domain model.
type DataError struct {
	RowID string
	Field string
	Value string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("catalog: row %q has invalid %s %q", e.RowID, e.Field, e.Value)
}

func transportErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}
