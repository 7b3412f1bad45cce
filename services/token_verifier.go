package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"real-estate-api/config"
)

// IdentityClaims is the verified identity returned by the oracle. SubjectID
// is always present on success; the remaining claims are optional.
type IdentityClaims struct {
	SubjectID string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"picture"`
}

// TokenVerifier verifies an opaque bearer credential against the external
// identity oracle. Every protected request re-verifies; implementations must
// not cache validity across calls.
type TokenVerifier interface {
	Verify(ctx context.Context, accessToken string) (*IdentityClaims, error)
}

// OracleService verifies tokens by calling the identity provider's /userinfo
// endpoint. One oracle round trip per call, so revocation at the provider
// takes effect within a single request.
type OracleService struct {
	domain     string
	httpClient *http.Client
}

// NewOracleService creates a new identity oracle client
func NewOracleService(cfg *config.Config) *OracleService {
	return &OracleService{
		domain: cfg.Auth0Domain,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Verify calls the oracle's /userinfo endpoint with the access token.
// Returns ErrInvalidToken when the oracle rejects the credential and
// ErrOracleUnavailable when the call itself cannot complete.
func (s *OracleService) Verify(ctx context.Context, accessToken string) (*IdentityClaims, error) {
	// If domain already includes a protocol (for testing), use it as-is
	var url string
	if strings.HasPrefix(s.domain, "http://") || strings.HasPrefix(s.domain, "https://") {
		url = fmt.Sprintf("%s/userinfo", s.domain)
	} else {
		url = fmt.Sprintf("https://%s/userinfo", s.domain)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Transport failure or timeout: the verifier is down, not the token
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decoding
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: userinfo endpoint returned status %d", ErrOracleUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: userinfo endpoint returned status %d: %s", ErrInvalidToken, resp.StatusCode, string(body))
	}

	var claims IdentityClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: failed to decode userinfo response: %v", ErrOracleUnavailable, err)
	}

	if claims.SubjectID == "" {
		return nil, fmt.Errorf("%w: userinfo response has no subject", ErrInvalidToken)
	}

	return &claims, nil
}
