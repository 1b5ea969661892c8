package reactive

import "errors"

var (
	// ErrEmptySource is returned by AsFuture when the source completes
	// without ever emitting a value.
	ErrEmptySource = errors.New("reactive: source completed without emitting a value")
	// ErrCircuitOpen is delivered to a CircuitBreak operator's downstream
	// when the wrapped breaker is open.
	ErrCircuitOpen = errors.New("reactive: circuit is open")
)
