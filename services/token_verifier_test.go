package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"real-estate-api/config"
)

// newOracleServer creates a mock HTTP server that simulates the identity
// provider's /userinfo endpoint, keyed by bearer token
func newOracleServer(userInfoMap map[string]*IdentityClaims) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/userinfo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if len(authHeader) < 8 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := authHeader[7:] // strip "Bearer "

		claims, exists := userInfoMap[token]
		if !exists {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(claims)
	}))
}

func newTestOracleService(domain string) *OracleService {
	return NewOracleService(&config.Config{Auth0Domain: domain})
}

func TestOracleService_VerifySuccess(t *testing.T) {
	server := newOracleServer(map[string]*IdentityClaims{
		"good-token": {
			SubjectID: "sub-1",
			Email:     "a@x.com",
			Name:      "Alice",
			AvatarURL: "https://img.example.com/alice.png",
		},
	})
	defer server.Close()

	verifier := newTestOracleService(server.URL)

	claims, err := verifier.Verify(context.Background(), "good-token")
	assert.NoError(t, err)
	assert.Equal(t, "sub-1", claims.SubjectID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "https://img.example.com/alice.png", claims.AvatarURL)
}

func TestOracleService_VerifyRejectedToken(t *testing.T) {
	server := newOracleServer(map[string]*IdentityClaims{})
	defer server.Close()

	verifier := newTestOracleService(server.URL)

	claims, err := verifier.Verify(context.Background(), "unknown-token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestOracleService_VerifyOracleError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	verifier := newTestOracleService(server.URL)

	claims, err := verifier.Verify(context.Background(), "any-token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrOracleUnavailable, "5xx from the oracle is unavailability, not a bad token")
}

func TestOracleService_VerifyOracleUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut down before the call so the dial fails

	verifier := newTestOracleService(server.URL)

	claims, err := verifier.Verify(context.Background(), "any-token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}

func TestOracleService_VerifyMissingSubject(t *testing.T) {
	server := newOracleServer(map[string]*IdentityClaims{
		"empty-sub": {Email: "a@x.com"},
	})
	defer server.Close()

	verifier := newTestOracleService(server.URL)

	claims, err := verifier.Verify(context.Background(), "empty-sub")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
