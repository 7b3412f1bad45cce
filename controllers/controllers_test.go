package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"real-estate-api/middleware"
	"real-estate-api/models"
	"real-estate-api/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Appointment{}, &models.Property{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// stubVerifier is a TokenVerifier with canned claims per token
type stubVerifier struct {
	claims map[string]*services.IdentityClaims
}

func (s *stubVerifier) Verify(ctx context.Context, accessToken string) (*services.IdentityClaims, error) {
	if claims, ok := s.claims[accessToken]; ok {
		return claims, nil
	}
	return nil, services.ErrInvalidToken
}

// mockAuthMiddleware simulates the authentication gate for handler tests.
// It sets up the context exactly as the real EnsureValidToken middleware does.
func mockAuthMiddleware(subjectID, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextSubjectID, subjectID)
		c.Set(middleware.ContextClaims, &services.IdentityClaims{SubjectID: subjectID})
		c.Set(middleware.ContextAccessToken, accessToken)
		c.Next()
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "response should carry a structured error: %s", w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

func performMultipart(t *testing.T, router *gin.Engine, method, path, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
