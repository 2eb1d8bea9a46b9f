package curve

import "errors"

// Sentinel errors for per-record validation failures. Callers match them
// with errors.Is; parse positions are added by wrapping.
var (
	// ErrMalformedHeader indicates a header line without exactly seven fields
	// or with unparseable numeric fields
	ErrMalformedHeader = errors.New("malformed header")

	// ErrNonMonotonicTime indicates a sample whose time does not strictly
	// increase over the previous sample (or the implicit origin)
	ErrNonMonotonicTime = errors.New("non-monotonic sample time")

	// ErrPrematureZeroThrust indicates a zero-force sample before the final one
	ErrPrematureZeroThrust = errors.New("zero thrust before final sample")

	// ErrMissingTerminalZero indicates an entry that ended with nonzero force
	ErrMissingTerminalZero = errors.New("final sample has nonzero thrust")

	// ErrZeroBurnTime indicates an entry with no usable samples
	ErrZeroBurnTime = errors.New("zero-length burn")
)
