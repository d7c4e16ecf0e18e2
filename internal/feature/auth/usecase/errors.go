package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login fails, without revealing
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword is returned when a registration password does not meet
	// the minimum length requirement.
	ErrWeakPassword = errors.New("password too weak")
)
