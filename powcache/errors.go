package powcache

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the parent of every input validation error.
	ErrInvalidArgument = errors.New("powcache: invalid argument")

	// ErrNegativeExponent is returned for exponents below zero.
	ErrNegativeExponent = fmt.Errorf("%w: negative exponent values are not supported", ErrInvalidArgument)

	// ErrNilBasement is returned when the basement is nil.
	ErrNilBasement = fmt.Errorf("%w: basement is nil", ErrInvalidArgument)

	// ErrAllocationFailed is returned when the memory guard refused an
	// allocation even after the cache was cleared.
	ErrAllocationFailed = errors.New("powcache: allocation failed")
)
