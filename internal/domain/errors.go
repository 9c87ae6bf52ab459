package domain

import "errors"

// Outcomes surfaced to clients instead of silent no-ops.
var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUnauthorizedAction = errors.New("You are not allowed to perform this action")
	ErrInvalidTransition  = errors.New("Invalid status transition")
	ErrListingExpired     = errors.New("Listing has expired")
	ErrNotFound           = errors.New("Listing not found")
	ErrValidation         = errors.New("Validation failed")
)
