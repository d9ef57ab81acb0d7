package catalog

import "errors"

var (
	// -- Validation & Input --
	ErrTitleTooShort      = errors.New("title must be at least 3 characters")
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrPublishBeforeBirth = errors.New("published date cannot precede the author's birth date")
	ErrBirthDateInFuture  = errors.New("birth date cannot be in the future")

	// -- Resource State --
	ErrAuthorNotFound = errors.New("author not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrNotOwner       = errors.New("only the creator can modify this book")
)
