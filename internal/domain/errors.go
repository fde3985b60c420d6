package domain

import "errors"

var (
	ErrInvalidWeight          = errors.New("invalid weight")
	ErrUnknownCriterion       = errors.New("unknown criterion")
	ErrItemNotFound           = errors.New("item not found")
	ErrStoreNotFound          = errors.New("store not found")
	ErrNoScoreForStore        = errors.New("no score entry for store")
	ErrItemNotInStore         = errors.New("item not in store bucket")
	ErrEmptyBucket            = errors.New("store has no assigned items")
	ErrSessionNotFound        = errors.New("session not found")
	ErrSessionExists          = errors.New("session already exists for store")
	ErrSessionCompleted       = errors.New("session already completed")
	ErrInvalidPrice           = errors.New("invalid price")
	ErrInconsistentAssignment = errors.New("inconsistent assignment")
)
