package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDerivationUnavailable = errors.New("derivation unavailable")
	ErrCompositionFailure    = errors.New("composition failed")
	ErrIneligibleFormula     = errors.New("formula is not validated")
	ErrUnknownTable          = errors.New("unknown table")
)

// StoreError tags a persistence failure with the operation that produced it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
