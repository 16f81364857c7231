// Package usecase implements the business logic for the accounts feature.
package usecase

import "errors"

var (
	// ErrAccountNotFound is returned when an account cannot be found by email or ID.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailAlreadyExists is returned when attempting to create an account with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned on login failure. It deliberately does not
	// distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrPasswordTooShort is returned when a password fails the minimum-length policy.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

	// ErrPasswordMismatch is returned when the password confirmation does not match.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidToken is returned when a verification token fails the signature,
	// purpose or age check. All of those collapse into this single error; callers
	// only learn that the link is unusable, not why.
	ErrInvalidToken = errors.New("invalid or expired verification token")

	// ErrAlreadyVerified is returned when requesting a new verification email for
	// an account whose email is already confirmed.
	ErrAlreadyVerified = errors.New("email already verified")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")
)
