package repo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrStorageRead and ErrStorageWrite wrap key-value store failures so
	// callers can report a generic storage problem without inspecting the
	// backend error.
	ErrStorageRead  = errors.New("storage read failed")
	ErrStorageWrite = errors.New("storage write failed")
)

// ValidationError names the product field that failed validation. The
// offending operation persists nothing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StockChangedError reports cart lines whose authoritative stock no longer
// covers the requested quantity at commit time. The commit is aborted as a
// whole; no partial decrement happens.
type StockChangedError struct {
	Products []string
}

func (e *StockChangedError) Error() string {
	return "stock changed for: " + strings.Join(e.Products, ", ")
}
