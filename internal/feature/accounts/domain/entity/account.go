// Package entity defines the domain entities for the accounts feature.
package entity

import "time"

// Account represents a registered account in the system.
// It contains the login credential and the email verification state.
type Account struct {
	// ID is the unique identifier for the account.
	ID uint `gorm:"primaryKey"`

	// Email is the account's email address used for login and verification.
	// It is stored lowercased and must be unique across all accounts.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the account's password.
	// This never stores the plaintext and is never serialized to clients.
	Password string `gorm:"size:255;not null"`

	// Verified reports whether the email address has been confirmed.
	// The transition to true is one-way; nothing ever sets it back to false.
	Verified bool `gorm:"not null;default:false"`

	// VerifiedAt is the time the email was confirmed.
	// It is nil exactly as long as Verified is false.
	VerifiedAt *time.Time

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the account was last updated.
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (Account) TableName() string {
	return "accounts"
}
