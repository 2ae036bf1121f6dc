// Package catalog holds the store contracts and the error taxonomy shared
// by the write and read paths. Handlers map these kinds to transport
// status codes; nothing below the handlers knows about HTTP.
package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that an id or seller_id resolves to nothing.
var ErrNotFound = errors.New("product not found")

// ErrConstraint signals a foreign reference (seller_id, category_id) that
// does not resolve to an existing row.
var ErrConstraint = errors.New("constraint violation")

// ValidationError marks malformed or missing required input. It maps to a
// 4xx at the boundary so clients can tell "fix your input" from "retry
// later".
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps any unexpected persistence failure. It is surfaced
// to the caller, never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
