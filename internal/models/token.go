// ABOUTME: OAuthToken is the singleton Google credential record
// ABOUTME: Refreshed transparently before near-expiry use
package models

import "time"

// OAuthToken holds the stored Google OAuth credentials.
// Exactly one row exists; connecting again replaces it.
type OAuthToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scope        string    `json:"scope"`
	GoogleEmail  string    `json:"google_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
