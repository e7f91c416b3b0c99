package httpapi

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/logger"
)

// stateTTL bounds how long an authorization may stay pending.
const stateTTL = 10 * time.Minute

// OAuthFlow implements the server-side OAuth authorization code flow for
// platform integrations. Pending authorizations live in the state cache
// under their random state value, never in a process-wide map.
type OAuthFlow struct {
	configs      map[domain.Platform]*oauth2.Config
	states       driven.StateCache
	integrations driven.IntegrationStore
}

// NewOAuthFlow creates an OAuth flow for the configured platforms.
func NewOAuthFlow(
	configs map[domain.Platform]*oauth2.Config,
	states driven.StateCache,
	integrations driven.IntegrationStore,
) *OAuthFlow {
	return &OAuthFlow{
		configs:      configs,
		states:       states,
		integrations: integrations,
	}
}

// handleOAuthStart begins authorization: it stores a random state and
// redirects the browser to the platform's consent page.
func (s *Server) handleOAuthStart(w http.ResponseWriter, r *http.Request) {
	platform := domain.Platform(chi.URLParam(r, "platform"))

	cfg, ok := s.oauth.configs[platform]
	if !ok {
		writeError(w, fmt.Errorf("%w: no oauth config for %s", domain.ErrUnsupportedPlatform, platform))
		return
	}

	state, err := randomState()
	if err != nil {
		writeError(w, err)
		return
	}

	value := ownerID(r) + "|" + string(platform)
	if err := s.oauth.states.Put(r.Context(), state, value, stateTTL); err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), http.StatusFound)
}

// handleOAuthCallback completes authorization: it validates the state,
// exchanges the code for a token and records the integration as connected.
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	state := query.Get("state")
	code := query.Get("code")
	if state == "" || code == "" {
		writeError(w, fmt.Errorf("%w: missing state or code", domain.ErrInvalidInput))
		return
	}

	value, err := s.oauth.states.Get(r.Context(), state)
	if err != nil {
		writeError(w, fmt.Errorf("%w: unknown or expired state", domain.ErrInvalidInput))
		return
	}
	// One-shot: a state never authorizes twice.
	if err := s.oauth.states.Delete(r.Context(), state); err != nil {
		logger.Warn("Failed to clear oauth state: %v", err)
	}

	owner, platform, err := splitStateValue(value)
	if err != nil {
		writeError(w, err)
		return
	}

	cfg, ok := s.oauth.configs[platform]
	if !ok {
		writeError(w, fmt.Errorf("%w: no oauth config for %s", domain.ErrUnsupportedPlatform, platform))
		return
	}

	token, err := cfg.Exchange(r.Context(), code)
	if err != nil {
		writeError(w, fmt.Errorf("exchange authorization code: %w", err))
		return
	}

	integration := domain.Integration{
		OwnerID: owner,
		Type:    platform,
		Status:  domain.IntegrationConnected,
		Config: map[string]string{
			"access_token": token.AccessToken,
		},
	}
	if token.RefreshToken != "" {
		integration.Config["refresh_token"] = token.RefreshToken
	}

	if err := s.integrations.Save(r.Context(), &integration); err != nil {
		writeError(w, err)
		return
	}

	logger.Info("Connected %s integration for %s", platform, owner)
	writeJSON(w, http.StatusOK, toIntegrationResponse(integration))
}

// randomState produces an unguessable state value.
func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// splitStateValue parses the "owner|platform" value stored with a state.
func splitStateValue(value string) (string, domain.Platform, error) {
	owner, platform, ok := strings.Cut(value, "|")
	if !ok || owner == "" || platform == "" {
		return "", "", fmt.Errorf("%w: malformed state value", domain.ErrInvalidInput)
	}
	return owner, domain.Platform(platform), nil
}
