package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrInvalidDate is returned when a date can't be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrCyclicDependency is returned when task dependencies form a cycle.
	ErrCyclicDependency = errors.New("cyclic dependency")
	// ErrPrecondition is returned when an operation is called in a state that doesn't allow it.
	ErrPrecondition = errors.New("precondition failed")
)
