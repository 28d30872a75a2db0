package dynamic

import (
	"errors"
	"fmt"
)

// ErrNotInScope is a sentinel matched by errors.Is against any
// *NotInScopeError, so callers can intercept the not-found read path
// without naming the binding.
var ErrNotInScope = errors.New("binding not in scope")

// NotInScopeError is returned by Get when no active frame matches the
// requested name and no default was supplied.  It is recoverable:
// callers may catch it with errors.Is(err, ErrNotInScope) or errors.As
// and substitute a value of their own.
type NotInScopeError struct {
	Name string
}

func (e *NotInScopeError) Error() string {
	return fmt.Sprintf("dynamic binding %q not in scope", e.Name)
}

func (e *NotInScopeError) Unwrap() error {
	return ErrNotInScope
}

// TypeMismatchError is returned when a value written to a typed frame,
// either at creation or by a later rebind, is not accepted by the
// frame's declared type.
type TypeMismatchError struct {
	Name  string
	Type  Type
	Value interface{}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("dynamic binding %q: value %v (%T) does not conform to declared type %s",
		e.Name, e.Value, e.Value, e.Type)
}
