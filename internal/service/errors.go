package service

import "errors"

// Validation errors returned before any mutation reaches the store.
// Storage faults and storage.ErrNotFound propagate unmodified; corrupt
// persisted state surfaces as calculator.ErrCorruptState.
var (
	// ErrInvalidAmount reports a non-positive amount or shares that do
	// not sum to the expense total.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidShare reports an expense share or payer referencing a
	// participant that is not a member of the gathering.
	ErrInvalidShare = errors.New("invalid share")

	// ErrDuplicateName reports a participant name already taken in the
	// gathering, under the unique-name policy.
	ErrDuplicateName = errors.New("duplicate participant name")

	// ErrInvalidName reports an empty gathering or participant name.
	ErrInvalidName = errors.New("invalid name")

	// ErrGatheringClosed reports a mutation attempted on a closed
	// gathering.
	ErrGatheringClosed = errors.New("gathering is closed")

	// ErrHasActivity reports a participant removal blocked by recorded
	// expenses, shares, or payments.
	ErrHasActivity = errors.New("participant has recorded activity")
)
