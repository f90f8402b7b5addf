// ABOUTME: HTTP surface for the Telnyx webhook and the Google OAuth connect flow
// ABOUTME: Inbound messages are processed synchronously before the response
package webhook

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harper/secondbrain/internal/calendar"
	"github.com/harper/secondbrain/internal/core"
	"github.com/harper/secondbrain/internal/sms"
)

// maxBodyBytes caps webhook request bodies
const maxBodyBytes = 1 << 20

// oauthStateTTL bounds how long a connect attempt stays valid
const oauthStateTTL = 10 * time.Minute

// Server routes webhook and OAuth HTTP traffic to the intake engine and
// the calendar client
type Server struct {
	engine   *core.Engine
	calendar *calendar.Client

	mu          sync.Mutex
	oauthStates map[string]time.Time
}

// New creates a webhook server. The calendar client may be nil when Google
// credentials are not configured; the OAuth routes then report that.
func New(engine *core.Engine, cal *calendar.Client) *Server {
	return &Server{
		engine:      engine,
		calendar:    cal,
		oauthStates: make(map[string]time.Time),
	}
}

// Handler returns the HTTP handler for all routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook/telnyx", s.handleTelnyx)
	mux.HandleFunc("/oauth/google/connect", s.handleConnect)
	mux.HandleFunc("/oauth/google/callback", s.handleCallback)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleTelnyx(w http.ResponseWriter, r *http.Request) {
	// Some webhook providers probe with GET before delivering
	if r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, map[string]string{"status": "webhook active"})
		return
	}
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read body"})
		return
	}

	msg, err := sms.ParseWebhook(body)
	if err != nil {
		log.Printf("webhook: failed to parse payload: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	if msg.EventType != sms.EventMessageReceived {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	s.engine.HandleInbound(r.Context(), msg.From, msg.Text)
	writeJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}

// handleConnect starts the Google OAuth flow by redirecting to the consent
// screen with a fresh state nonce
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	if s.calendar == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "google calendar is not configured"})
		return
	}

	state := uuid.New().String()

	s.mu.Lock()
	s.pruneStatesLocked()
	s.oauthStates[state] = time.Now().Add(oauthStateTTL)
	s.mu.Unlock()

	http.Redirect(w, r, s.calendar.AuthURL(state), http.StatusFound)
}

// handleCallback completes the OAuth flow with the code Google sends back
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if s.calendar == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "google calendar is not configured"})
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing state or code"})
		return
	}

	s.mu.Lock()
	expiry, known := s.oauthStates[state]
	delete(s.oauthStates, state)
	s.mu.Unlock()

	if !known || time.Now().After(expiry) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown or expired state"})
		return
	}

	if err := s.calendar.Exchange(r.Context(), code); err != nil {
		log.Printf("webhook: oauth exchange failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to complete google connection"})
		return
	}

	status := s.calendar.IsConnected(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "connected",
		"email":  status.Email,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pruneStatesLocked drops expired OAuth nonces; caller holds the lock
func (s *Server) pruneStatesLocked() {
	now := time.Now()
	for state, expiry := range s.oauthStates {
		if now.After(expiry) {
			delete(s.oauthStates, state)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("webhook: failed to write response: %v", err)
	}
}
