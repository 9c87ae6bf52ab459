package auth

import "errors"

var (
	ErrCredentialsRequired = errors.New("Email, password and role are required")
	ErrNotAuthenticated    = errors.New("Not authenticated")
)
