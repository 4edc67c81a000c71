package selector

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is. The concrete errors recorded
// by a builder are *DuplicatePartError and *OrderError, both unwrap to one of
// these.
var (
	ErrDuplicatePart = errors.New("element, id and pseudo-element parts may occur at most once")
	ErrOutOfOrder    = errors.New("selector parts must follow the order: element, id, class, attribute, pseudo-class, pseudo-element")
)

// DuplicatePartError reports a second append of a once-only category on the
// same builder.
type DuplicatePartError struct {
	Part Category
}

func (e *DuplicatePartError) Error() string {
	return fmt.Sprintf("duplicate %s part: %v", e.Part, ErrDuplicatePart)
}

func (e *DuplicatePartError) Unwrap() error { return ErrDuplicatePart }

// OrderError reports an append of a category after a higher-ordinal category
// has already been appended to the same builder.
type OrderError struct {
	Part  Category // category of the violating append
	Stage Category // highest category appended so far
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s part after %s part: %v", e.Part, e.Stage, ErrOutOfOrder)
}

func (e *OrderError) Unwrap() error { return ErrOutOfOrder }
