package dto

import (
	"time"

	"account_backend/internal/feature/accounts/domain/entity"
)

// AccountResponse is the client-facing projection of an account.
// The password hash is deliberately absent; it never leaves the server.
type AccountResponse struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewAccountResponse converts an account entity to its response shape.
func NewAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:         a.ID,
		Email:      a.Email,
		Verified:   a.Verified,
		VerifiedAt: a.VerifiedAt,
		CreatedAt:  a.CreatedAt,
	}
}

// SignupResponse is the response body for a successful signup.
// EmailSent reports whether the verification email could be delivered;
// account creation succeeds either way.
type SignupResponse struct {
	Message   string          `json:"message"`
	Account   AccountResponse `json:"account"`
	EmailSent bool            `json:"email_sent"`
}

// TokenResponse is the response body for a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a generic informational response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the shared error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
