package application

import "fmt"

// ErrorKind tags the terminal input/data errors. Statistical degeneracies are
// never errors: the affected field is left undefined and the pipeline
// continues.
type ErrorKind string

const (
	// ErrConnection: the data provider was unreachable.
	ErrConnection ErrorKind = "CONNECTION"
	// ErrNoData: empty result set, symbol may be delisted or invalid.
	ErrNoData ErrorKind = "NO_DATA"
	// ErrInsufficientHistory: below the minimum bar count.
	ErrInsufficientHistory ErrorKind = "INSUFFICIENT_HISTORY"
	// ErrAccountTooSmall: the account cannot afford one share at the given
	// risk tolerance. Detected before the statistical pipeline runs.
	ErrAccountTooSmall ErrorKind = "ACCOUNT_TOO_SMALL"
)

// AnalysisError is the tagged terminal error of one analysis. No partial
// result accompanies it.
type AnalysisError struct {
	Kind   ErrorKind
	Ticker string
	Detail string
	Cause  error
}

func (e *AnalysisError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Ticker, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Ticker, e.Kind)
}

func (e *AnalysisError) Unwrap() error { return e.Cause }

// KindOf extracts the error kind; empty for untagged errors.
func KindOf(err error) ErrorKind {
	if ae, ok := err.(*AnalysisError); ok {
		return ae.Kind
	}
	return ""
}
