package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Tree Errors.

	// ErrInvalidHierarchy indicates a hierarchy descriptor cannot be used.
	ErrInvalidHierarchy = errors.New("invalid hierarchy")

	// ErrUnsupportedStrategy indicates an unknown materializer strategy.
	ErrUnsupportedStrategy = errors.New("unsupported strategy")

	// ErrMissingField indicates a record lacks a key or parent field.
	// Such records are skipped, never returned as a failure.
	ErrMissingField = errors.New("missing field")

	// ErrCyclicReference indicates a node appears on its own ancestor path.
	ErrCyclicReference = errors.New("cyclic reference")

	// ErrDepthExceeded indicates a path grew beyond the configured limit.
	ErrDepthExceeded = errors.New("depth limit exceeded")
)
