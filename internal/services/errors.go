package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("product not found")

// NotFoundError reports an operation addressing a product ID that does not exist.
type NotFoundError struct {
	Op string
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s: product with ID %d not found", e.Op, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
