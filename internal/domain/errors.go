package domain

import "errors"

// Warm-up failure taxonomy. Backends wrap one of these so the manager can
// classify failures with errors.Is; anything unrecognized is treated as a
// decode failure.
var (
	// ErrSourceUnavailable indicates the media URI could not be reached
	// (network error, 4xx/5xx, DNS).
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrDecodeFailure indicates the codec rejected the content.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrCancelled indicates the warm-up was superseded by eviction.
	// Expected during fast scrolling; never surfaced to subscribers.
	ErrCancelled = errors.New("warm-up cancelled")

	// ErrUnknownVideo indicates an operation referenced an identifier that
	// was never registered.
	ErrUnknownVideo = errors.New("unknown video identifier")
)
