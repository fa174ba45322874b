package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrLedgerUnavailable indicates that the ledger store could not commit an
// operation. Nothing is persisted when this error is returned.
var ErrLedgerUnavailable = errors.New("ledger unavailable")

// ErrExtraction indicates that the upstream extraction oracle failed to
// produce a usable result for an uploaded image.
var ErrExtraction = errors.New("extraction failed")
