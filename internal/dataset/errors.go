package dataset

import "fmt"

// NotFoundError reports that the backing store has no file for a ticker.
type NotFoundError struct {
	Ticker string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("data for ticker '%s' not found", e.Ticker)
}

// ReadError reports a structural failure while reading or parsing a ticker's file.
type ReadError struct {
	Ticker string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error processing data for ticker '%s': %v", e.Ticker, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
