package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for request-level rejection.
var (
	ErrEmptyBatch  = errors.New("no links or cards provided")
	ErrInvalidBody = errors.New("invalid request body")
)

// FetchError scopes a network failure to a single URL; the batch continues.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError scopes a document-parse failure to a single URL.
type ParseError struct {
	URL    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.URL, e.Reason)
}
