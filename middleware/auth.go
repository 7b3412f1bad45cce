package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"real-estate-api/services"
)

// Context keys set by the gate on successful verification
const (
	ContextSubjectID   = "subject_id"
	ContextClaims      = "identity_claims"
	ContextAccessToken = "access_token"
)

// bearerPrefix is the expected shape of the Authorization header
const bearerPrefix = "Bearer "

// publicPaths lists the endpoints reachable without a credential
var publicPaths = map[string]bool{
	"/auth/register": true,
	"/auth/login":    true,
	"/health":        true,
}

// EnsureValidToken is the request authentication gate. It runs before every
// business handler: CORS preflights and public paths pass through untouched,
// every other request must carry a bearer token that the identity oracle
// accepts. On success the verified principal is attached to the request
// context; downstream handlers trust it unconditionally.
//
// An unreachable oracle is reported as 503, not 401, so callers can tell
// "bad token" from "verifier down".
func EnsureValidToken(verifier services.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// CORS preflight carries no credential
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if publicPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		authorization := c.GetHeader("Authorization")
		if authorization == "" || !strings.HasPrefix(authorization, bearerPrefix) {
			log.Printf("Missing or invalid authorization header for path: %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing or invalid authorization header",
			})
			return
		}

		accessToken := strings.TrimPrefix(authorization, bearerPrefix)

		claims, err := verifier.Verify(c.Request.Context(), accessToken)
		if err != nil {
			if errors.Is(err, services.ErrOracleUnavailable) {
				log.Printf("Identity provider unreachable: %v", err)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
					"error": "Identity provider unavailable",
				})
				return
			}
			log.Printf("Token verification failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token: " + err.Error(),
			})
			return
		}

		c.Set(ContextSubjectID, claims.SubjectID)
		c.Set(ContextClaims, claims)
		c.Set(ContextAccessToken, accessToken)

		c.Next()
	}
}

// GetSubjectID extracts the verified subject ID from the Gin context
func GetSubjectID(c *gin.Context) (string, error) {
	subjectID, exists := c.Get(ContextSubjectID)
	if !exists {
		return "", &AuthError{Code: "MISSING_SUBJECT_ID", Message: "Subject ID not found in context"}
	}

	subjectIDStr, ok := subjectID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_SUBJECT_ID", Message: "Subject ID is not a string"}
	}

	return subjectIDStr, nil
}

// GetClaims extracts the verified identity claims from the Gin context
func GetClaims(c *gin.Context) (*services.IdentityClaims, error) {
	claims, exists := c.Get(ContextClaims)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	identityClaims, ok := claims.(*services.IdentityClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return identityClaims, nil
}

// GetAccessToken extracts the raw bearer token from the Gin context
func GetAccessToken(c *gin.Context) (string, error) {
	token, exists := c.Get(ContextAccessToken)
	if !exists {
		return "", &AuthError{Code: "MISSING_TOKEN", Message: "Access token not found in context"}
	}

	tokenStr, ok := token.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_TOKEN", Message: "Access token is not a string"}
	}

	return tokenStr, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
