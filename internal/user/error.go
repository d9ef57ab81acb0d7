package user

import "errors"

var (
	// -- Validation & Input --
	ErrUsernameExists   = errors.New("username already registered")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// -- Authentication --
	ErrInvalidCredentials = errors.New("invalid username or password")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
