package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrConstraintViolation = errors.New("constraint violation")

	// Messages below are returned to clients as-is.
	ErrNotAuthenticated  = errors.New("Invalid Email or Password!")
	ErrDuplicateEmail    = errors.New("Email is already registered")
	ErrDuplicateUserName = errors.New("Username is already registered")
)
