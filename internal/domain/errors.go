package domain

import "errors"

// Errors shared between the storage and service layers. Handlers map them to
// HTTP statuses with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrCapacityExceeded    = errors.New("claim exceeds available item quantity")
	ErrAlreadyPaid         = errors.New("item is already paid for")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNothingOwed         = errors.New("nothing owed for this receipt")
)
