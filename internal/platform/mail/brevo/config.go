// Package brevo provides a verification-email notifier backed by the Brevo
// transactional-email HTTP API.
package brevo

import "time"

// Config holds configuration for the Brevo API client.
type Config struct {
	APIKey      string        // API key for authentication
	BaseURL     string        // Base URL for the API (e.g., "https://api.brevo.com")
	SenderName  string        // Display name of the sender
	SenderEmail string        // Sender address registered with Brevo
	AppURL      string        // Public base URL of this service, used to build verification links
	Timeout     time.Duration // HTTP request timeout
}
