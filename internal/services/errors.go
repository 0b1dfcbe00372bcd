package services

import "errors"

var (
	// ErrDuplicateEmail is returned when registering with an email that
	// already has an account.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned for every failed login. Unknown
	// email and wrong password are deliberately indistinguishable so
	// responses do not leak which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
