package domain

import "errors"

// Sentinel errors for the whole backend. Lower layers wrap these with
// fmt.Errorf("%w: ...") and the HTTP layer maps them to status codes
// with errors.Is.
var (
	// ErrNotFound: the entity does not exist or is not visible to the
	// caller (unknown id, inactive vehicle, no active checkout).
	ErrNotFound = errors.New("not found")

	// ErrConflict: an exclusivity rule blocks the write (vehicle or
	// user already has an active checkout, trip already open,
	// duplicate code or plate).
	ErrConflict = errors.New("conflict")

	// ErrInvalidState: the entity exists but its lifecycle state
	// forbids the operation (correcting an open checkout, return
	// odometer below depart).
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidInput: the request itself is malformed (negative
	// odometer, bad date, unknown period name).
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden: authenticated but not allowed (non-admin on admin
	// routes, someone else's checkout, expired edit window).
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized: missing or bad credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
