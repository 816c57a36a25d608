package watch

import "go.trai.ch/zerr"

var (
	// ErrInvalidTarget is returned when Observe is given a value that is not an observable container.
	ErrInvalidTarget = zerr.New("value cannot be observed")

	// ErrRejected is returned by Handle.Call when the validation gate vetoes the call.
	// The receiver is left exactly as it was before the call.
	ErrRejected = zerr.New("mutation rejected by validator")
)
