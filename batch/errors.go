package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned, before any solving, for a nil batch,
	// inconsistent dimensions or NaN costs. It wraps the matrix error.
	ErrShapeMismatch = errors.New("batch: shape mismatch")

	// ErrInvalidConfig is returned for unknown enums and negative counts.
	ErrInvalidConfig = errors.New("batch: invalid config")
)

// FaultError reports batch elements whose optimality certificate failed.
// It unwraps to the first element's error, which wraps
// lap.ErrNumericInstability.
type FaultError struct {
	Elements []int // ascending element indices with StatusNumericFault
	Err      error // error of Elements[0]
}

func (e *FaultError) Error() string {
	if len(e.Elements) == 1 {
		return fmt.Sprintf("batch: element %d: %v", e.Elements[0], e.Err)
	}

	return fmt.Sprintf("batch: %d elements faulted, first %d: %v", len(e.Elements), e.Elements[0], e.Err)
}

func (e *FaultError) Unwrap() error { return e.Err }
