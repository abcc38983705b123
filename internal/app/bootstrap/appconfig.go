// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig is everything specific to DevCollab.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer token configuration
	TokenSecret string        // HMAC secret for signing bearer tokens
	TokenTTL    time.Duration // Token and session lifetime

	// Transactional email configuration
	MailAPIURL   string // Provider endpoint for sending (POST JSON)
	MailAPIKey   string // Provider API key
	MailFrom     string // From email address (e.g., noreply@devcollab.app)
	MailFromName string // From display name (e.g., DevCollab)

	// Base URL for email links (password reset, verification)
	BaseURL string // e.g., "https://devcollab.app" or "http://localhost:3000"
}
