package lib

import (
	"errors"

	"github.com/slok/fourd/internal/model"
)

var (
	// ErrNotFound is returned when a schedule or task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned on invalid input.
	ErrNotValid = errors.New("not valid")
	// ErrInvalidDate is returned when a date can't be parsed, like on the imported rows.
	ErrInvalidDate = errors.New("invalid date")
	// ErrCyclicDependency is returned when the task dependencies form a cycle.
	ErrCyclicDependency = errors.New("cyclic dependency")
	// ErrPrecondition is returned when an operation is called in a state that doesn't allow it,
	// like playing a schedule without tasks.
	ErrPrecondition = errors.New("precondition failed")
)

// sentinels maps the internal errors to the public ones, the most specific first.
var sentinels = []struct {
	internal error
	public   error
}{
	{model.ErrInvalidDate, ErrInvalidDate},
	{model.ErrCyclicDependency, ErrCyclicDependency},
	{model.ErrPrecondition, ErrPrecondition},
	{model.ErrNotFound, ErrNotFound},
	{model.ErrNotValid, ErrNotValid},
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var matched []error
	for _, s := range sentinels {
		if errors.Is(err, s.internal) {
			matched = append(matched, s.public)
		}
	}
	if len(matched) == 0 {
		return err
	}

	return &mappedError{original: err, sentinels: matched}
}

type mappedError struct {
	original  error
	sentinels []error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	for _, s := range e.sentinels {
		if target == s {
			return true
		}
	}
	return false
}

func (e *mappedError) Unwrap() error { return e.original }
