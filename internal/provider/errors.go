package provider

import (
	"errors"
	"fmt"
)

// Sentinel causes reported by the HTTP provider; the batch driver matches on
// these to pick a retry policy, and the application maps them onto its own
// tagged error surface.
var (
	// ErrConnection: the provider endpoint could not be reached.
	ErrConnection = errors.New("connection error with data provider")
	// ErrNoData: empty result set, symbol may be delisted.
	ErrNoData = errors.New("no data found, symbol may be delisted")
	// ErrRateLimited: the provider rejected the request for pacing reasons;
	// retryable with backoff.
	ErrRateLimited = errors.New("rate limited by data provider")
)

// FetchError wraps a sentinel with the offending ticker.
type FetchError struct {
	Ticker string
	Err    error
}

func (e *FetchError) Error() string { return fmt.Sprintf("%s: %v", e.Ticker, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether the batch driver should retry this failure.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrConnection)
}
