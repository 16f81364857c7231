// Package dto defines data transfer objects for the accounts feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /signup endpoint.
// It uses Gin's binding tags for validation (required, email format, password
// length and confirmation match). The usecase re-validates; the tags just
// reject obviously bad requests before any work is done.
type SignupReq struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}
