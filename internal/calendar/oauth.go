// ABOUTME: Google OAuth flow and token lifecycle for the calendar integration
// ABOUTME: Tokens are refreshed transparently within 5 minutes of expiry
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/harper/secondbrain/internal/models"
	"github.com/harper/secondbrain/internal/storage/sqlite"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// refreshWindow is how close to expiry a token gets refreshed before use
const refreshWindow = 5 * time.Minute

// Status reports whether the calendar integration is usable
type Status struct {
	Connected bool
	Email     string
}

// Client talks to Google Calendar using credentials stored in the datastore
type Client struct {
	conf   *oauth2.Config
	tokens *sqlite.TokenStore
	loc    *time.Location
	now    func() time.Time
}

// NewClient creates a calendar client. The token store holds the singleton
// credential record; loc is the scheduling reference timezone.
func NewClient(clientID, clientSecret, redirectURI string, tokens *sqlite.TokenStore, loc *time.Location) *Client {
	return &Client{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{gcal.CalendarEventsScope, oauth2api.UserinfoEmailScope},
			Endpoint:     googleoauth.Endpoint,
		},
		tokens: tokens,
		loc:    loc,
		now:    time.Now,
	}
}

// AuthURL returns the consent URL for connecting a Google account.
// Consent is forced so a refresh token is always issued.
func (c *Client) AuthURL(state string) string {
	return c.conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for tokens, looks up the account
// email, and stores the credential record
func (c *Client) Exchange(ctx context.Context, code string) error {
	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code: %w", err)
	}
	if token.RefreshToken == "" {
		return fmt.Errorf("no refresh token returned; reconnect with consent")
	}

	email, err := c.fetchEmail(ctx, token)
	if err != nil {
		// The email is informational; a failed lookup should not block connect
		email = ""
	}

	return c.tokens.Save(&models.OAuthToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
		Scope:        gcal.CalendarEventsScope + " " + oauth2api.UserinfoEmailScope,
		GoogleEmail:  email,
	})
}

// Disconnect deletes the stored credentials
func (c *Client) Disconnect() error {
	return c.tokens.Delete()
}

// IsConnected reports whether a usable credential exists, refreshing it if
// needed. A failed refresh reports disconnected rather than erroring.
func (c *Client) IsConnected(ctx context.Context) Status {
	stored, err := c.tokens.Get()
	if err != nil || stored == nil {
		return Status{Connected: false}
	}

	token, err := c.validToken(ctx, stored)
	if err != nil || token == nil {
		return Status{Connected: false, Email: stored.GoogleEmail}
	}

	return Status{Connected: true, Email: stored.GoogleEmail}
}

// validToken returns a token good for at least the refresh window,
// refreshing and re-storing it when necessary
func (c *Client) validToken(ctx context.Context, stored *models.OAuthToken) (*oauth2.Token, error) {
	if stored.ExpiresAt.Sub(c.now()) > refreshWindow {
		return &oauth2.Token{
			AccessToken:  stored.AccessToken,
			RefreshToken: stored.RefreshToken,
			TokenType:    stored.TokenType,
			Expiry:       stored.ExpiresAt,
		}, nil
	}

	// Force a refresh by presenting only the refresh token
	refreshed, err := c.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: stored.RefreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	// Google may omit the refresh token on refresh; keep the original
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = stored.RefreshToken
	}

	if err := c.tokens.Save(&models.OAuthToken{
		AccessToken:  refreshed.AccessToken,
		RefreshToken: refreshed.RefreshToken,
		TokenType:    refreshed.TokenType,
		ExpiresAt:    refreshed.Expiry,
		Scope:        stored.Scope,
		GoogleEmail:  stored.GoogleEmail,
		CreatedAt:    stored.CreatedAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to store refreshed token: %w", err)
	}

	return refreshed, nil
}

// fetchEmail looks up the connected account's email address
func (c *Client) fetchEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(c.conf.TokenSource(ctx, token)))
	if err != nil {
		return "", err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return info.Email, nil
}
