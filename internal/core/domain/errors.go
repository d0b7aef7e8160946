package domain

import "errors"

var (
	// ErrNotFound means the requested entity does not exist or is not visible
	// to the calling user. Repositories map driver-level "no rows" onto this.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName means a secret with that name already exists for the
	// user.
	ErrDuplicateName = errors.New("secret name already in use")

	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountSuspended means the user exists but may not authenticate.
	ErrAccountSuspended = errors.New("account suspended")

	// ErrInvalidToken covers expired, malformed, and wrong-type tokens.
	ErrInvalidToken = errors.New("invalid token")
)
