// ABOUTME: Tests for the calendar connection status and token refresh window
// ABOUTME: Refresh traffic goes to a local test server, never to Google
package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/harper/secondbrain/internal/models"
	"github.com/harper/secondbrain/internal/storage/sqlite"
	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T) (*Client, *sqlite.TokenStore) {
	t.Helper()

	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	tokens := sqlite.NewTokenStore(db)
	client := NewClient("client-id", "client-secret", "http://localhost/callback", tokens, time.UTC)
	return client, tokens
}

func TestIsConnectedWithoutToken(t *testing.T) {
	client, _ := newTestClient(t)

	status := client.IsConnected(context.Background())
	if status.Connected {
		t.Error("IsConnected() = true, want false with no stored token")
	}
}

func TestIsConnectedWithFreshToken(t *testing.T) {
	client, tokens := newTestClient(t)

	err := tokens.Save(&models.OAuthToken{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(time.Hour),
		GoogleEmail:  "me@example.com",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Well outside the refresh window: no refresh call happens
	status := client.IsConnected(context.Background())
	if !status.Connected {
		t.Error("IsConnected() = false, want true for a fresh token")
	}
	if status.Email != "me@example.com" {
		t.Errorf("Email = %v, want me@example.com", status.Email)
	}
}

func TestIsConnectedRefreshesNearExpiry(t *testing.T) {
	client, tokens := newTestClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"new-access","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()
	client.conf.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}

	err := tokens.Save(&models.OAuthToken{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(time.Minute),
		GoogleEmail:  "me@example.com",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	status := client.IsConnected(context.Background())
	if !status.Connected {
		t.Fatal("IsConnected() = false, want true after successful refresh")
	}

	// The refreshed token is persisted, keeping the original refresh token
	stored, err := tokens.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.AccessToken != "new-access" {
		t.Errorf("AccessToken = %v, want new-access", stored.AccessToken)
	}
	if stored.RefreshToken != "refresh" {
		t.Errorf("RefreshToken = %v, want original preserved", stored.RefreshToken)
	}
}

func TestIsConnectedRefreshFailureReportsDisconnected(t *testing.T) {
	client, tokens := newTestClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()
	client.conf.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}

	err := tokens.Save(&models.OAuthToken{
		AccessToken:  "stale",
		RefreshToken: "revoked",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	status := client.IsConnected(context.Background())
	if status.Connected {
		t.Error("IsConnected() = true, want false when refresh fails")
	}
}

func TestAuthURLRequestsOfflineConsent(t *testing.T) {
	client, _ := newTestClient(t)

	url := client.AuthURL("state-nonce")
	for _, want := range []string{"state=state-nonce", "access_type=offline", "prompt=consent"} {
		if !strings.Contains(url, want) {
			t.Errorf("AuthURL() = %v, want it to contain %q", url, want)
		}
	}
}
