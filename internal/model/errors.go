package model

import (
	"fmt"
	"time"
)

// ExtractionError means the listing page was unreachable or its structure
// no longer matches what the extractor expects. The whole run aborts:
// continuing with a partial candidate list would silently drop offers.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extracting offers: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extracting offers: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// EnrichmentError means a single offer's detail page could not be fetched
// or parsed. Scoped to that offer only; the rest of the batch proceeds.
type EnrichmentError struct {
	Link string
	Err  error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enriching %s: %v", e.Link, e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}

// StoreCorruptError means the persisted snapshot exists but is not
// well-formed. Fatal: treating corrupt state as empty would re-notify for
// every stored offer, so the run stops and an operator has to look.
type StoreCorruptError struct {
	Path string
	Err  error
}

func (e *StoreCorruptError) Error() string {
	return fmt.Sprintf("store %s is corrupt: %v", e.Path, e.Err)
}

func (e *StoreCorruptError) Unwrap() error {
	return e.Err
}

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
