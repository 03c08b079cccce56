package database

import "errors"

// Sentinel errors for the data-access layer. Handlers map these to HTTP
// status codes with errors.Is; anything else is a 500.
var (
	// ErrNotFound - the referenced product, order or user does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock - a sale would take a product's quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidStatus - the status value is not one of the four known states.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidState - the operation is not allowed in the order's current
	// state (illegal transition, or deleting a non-pending order).
	ErrInvalidState = errors.New("invalid state for this operation")

	// ErrInvalidCredentials - wrong username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled - the account exists but was deactivated by an admin.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrDuplicate - unique constraint hit (username or barcode already taken).
	ErrDuplicate = errors.New("duplicate record")
)
