// ABOUTME: Google OAuth token storage, a single-row credential record
// ABOUTME: Connecting again replaces the stored credentials
package sqlite

import (
	"database/sql"
	"time"

	"github.com/harper/secondbrain/internal/models"
)

// TokenStore handles the OAuth credential singleton
type TokenStore struct {
	db *DB
}

// NewTokenStore creates a new TokenStore
func NewTokenStore(db *DB) *TokenStore {
	return &TokenStore{db: db}
}

// Save stores the credentials, replacing any existing row
func (s *TokenStore) Save(token *models.OAuthToken) error {
	now := time.Now()
	createdAt := token.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.db.Exec(`
		INSERT INTO oauth_tokens (id, access_token, refresh_token, token_type, expires_at, scope,
			google_email, created_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expires_at = excluded.expires_at,
			scope = excluded.scope,
			google_email = excluded.google_email,
			updated_at = excluded.updated_at
	`, token.AccessToken, token.RefreshToken, token.TokenType, token.ExpiresAt,
		nullString(token.Scope), nullString(token.GoogleEmail), createdAt, now)

	return err
}

// Get retrieves the stored credentials, or nil when not connected
func (s *TokenStore) Get() (*models.OAuthToken, error) {
	row := s.db.QueryRow(`
		SELECT access_token, refresh_token, token_type, expires_at, scope, google_email,
			created_at, updated_at
		FROM oauth_tokens
		WHERE id = 1
	`)

	var (
		token models.OAuthToken
		scope sql.NullString
		email sql.NullString
	)

	err := row.Scan(&token.AccessToken, &token.RefreshToken, &token.TokenType, &token.ExpiresAt,
		&scope, &email, &token.CreatedAt, &token.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	token.Scope = fromNull(scope)
	token.GoogleEmail = fromNull(email)

	return &token, nil
}

// Delete removes the stored credentials (disconnect)
func (s *TokenStore) Delete() error {
	_, err := s.db.Exec("DELETE FROM oauth_tokens WHERE id = 1")
	return err
}
