package workflow

import (
	"errors"

	"marketplace-app/internal/store"
)

// ErrNotFound is the store's sentinel, re-exported so callers only need
// this package to classify engine failures.
var ErrNotFound = store.ErrNotFound

var (
	ErrAlreadyReviewed       = errors.New("update request already reviewed")
	ErrPendingCreatorRequest = errors.New("user already has a pending creator request")
	ErrNotCreator            = errors.New("user is not an approved creator")
	ErrValidation            = errors.New("invalid input")
)
