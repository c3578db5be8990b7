package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrEmptySelection is returned when checkout runs with nothing selected.
	ErrEmptySelection = errors.New("no items selected")
	// ErrMissingAddress is returned when checkout runs before an address is known.
	ErrMissingAddress = errors.New("address not set")
	// ErrIncompleteForm is returned when pickup date, time, payment or delivery is missing.
	ErrIncompleteForm = errors.New("checkout form incomplete")
	// ErrInvalidOrder is returned when a customization has no catalog item selected.
	ErrInvalidOrder = errors.New("no catalog item selected")
	// ErrNoDraft is returned when no customization order is in progress.
	ErrNoDraft = errors.New("no customization in progress")

	ErrAttachmentLimit   = errors.New("attachment limit reached")
	ErrDuplicateReview   = errors.New("transaction already reviewed")
	ErrInvalidReview     = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus     = errors.New("unknown transaction status")
	ErrInvalidTransition = errors.New("transaction status cannot move backwards")
)
