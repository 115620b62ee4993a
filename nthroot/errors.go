package nthroot

import (
	"errors"
	"fmt"
)

// Error classes.
var (
	// ErrInvalidArgument is the parent of every input validation error.
	ErrInvalidArgument = errors.New("nthroot: invalid argument")

	// ErrInternal indicates a logic defect rather than a caller mistake.
	ErrInternal = errors.New("nthroot: internal error")
)

// Validation errors. All wrap ErrInvalidArgument.
var (
	ErrNilRadicand       = fmt.Errorf("%w: radicand is nil", ErrInvalidArgument)
	ErrNegativeRadicand  = fmt.Errorf("%w: negative radicand values are not supported", ErrInvalidArgument)
	ErrNegativeDegree    = fmt.Errorf("%w: negative degree values are not supported", ErrInvalidArgument)
	ErrAmbiguousExponent = fmt.Errorf("%w: degree 0 leads to an ambiguous result", ErrInvalidArgument)
	ErrNotApplicable     = fmt.Errorf("%w: algorithm is not applicable to this degree", ErrInvalidArgument)
	ErrUnknownAlgorithm  = fmt.Errorf("%w: unknown algorithm", ErrInvalidArgument)
)

// ErrUnsupportedAlgorithm is returned when the dispatcher could not select
// any algorithm. It wraps ErrInternal and is never expected in practice.
var ErrUnsupportedAlgorithm = fmt.Errorf("%w: no supported root extraction algorithm", ErrInternal)
