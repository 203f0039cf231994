// Package common contains shared constants and sentinel errors used across
// userdesk components.
package common

const (
	// AuthorizationHeader carries the bearer token on outbound requests.
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the token value in AuthorizationHeader.
	BearerPrefix = "Bearer "
	// APIKeyHeader is the static key some directory deployments require.
	APIKeyHeader = "x-api-key"
	// RequestIDHeader correlates a request with client-side log lines.
	RequestIDHeader = "X-Request-ID"

	// TokenKey is the fixed storage key of the session token.
	TokenKey = "token"
	// TokenSavedAtKey records when the token was persisted (RFC 3339).
	TokenSavedAtKey = "token_saved_at"
)
