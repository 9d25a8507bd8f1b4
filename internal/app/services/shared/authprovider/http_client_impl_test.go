package authprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *httpAuthProviderClient {
	return &httpAuthProviderClient{
		BaseURL:    baseURL,
		ServiceKey: "service-key",
		HTTPClient: &http.Client{},
		Log:        zap.NewNop(),
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

func TestVerifyToken(t *testing.T) {
	t.Run("200 returns the principal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/user", r.URL.Path)
			assert.Equal(t, "Bearer some-token", r.Header.Get(constvars.HeaderAuthorization))
			assert.Equal(t, "service-key", r.Header.Get("apikey"))
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			w.Write([]byte(`{"id":"user-1","email":"x@clinic.test","app_metadata":{"role":"clinician"}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		principal, err := client.VerifyToken(context.Background(), "some-token")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", principal.ID)
		assert.Equal(t, "clinician", principal.AppMetadata.Role)
	})

	t.Run("401 with expired description maps to TOKEN_EXPIRED", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(constvars.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid_token","error_description":"token is expired"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.VerifyToken(context.Background(), signedToken(t, time.Now().Add(time.Hour)))

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrCodeTokenExpired, customErr.Code)
		assert.True(t, customErr.RefreshRequired)
	})

	t.Run("bare 401 with an expired exp claim maps to TOKEN_EXPIRED", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(constvars.StatusUnauthorized)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.VerifyToken(context.Background(), signedToken(t, time.Now().Add(-time.Hour)))

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrCodeTokenExpired, customErr.Code)
	})

	t.Run("bare 401 with a live exp claim maps to INVALID_TOKEN", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(constvars.StatusUnauthorized)
			w.Write([]byte(`{"msg":"invalid signature"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.VerifyToken(context.Background(), signedToken(t, time.Now().Add(time.Hour)))

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrCodeInvalidToken, customErr.Code)
		assert.False(t, customErr.RefreshRequired)
	})

	t.Run("5xx maps to AUTH_SERVICE_ERROR", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(constvars.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.VerifyToken(context.Background(), "any-token")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrCodeAuthServiceError, customErr.Code)
		assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
	})

	t.Run("unreachable provider maps to AUTH_SERVICE_ERROR", func(t *testing.T) {
		client := newTestClient("http://127.0.0.1:1")
		_, err := client.VerifyToken(context.Background(), "any-token")

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrCodeAuthServiceError, customErr.Code)
	})
}

func TestGetUserByID(t *testing.T) {
	t.Run("uses the admin endpoint with the service key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/admin/users/user-9", r.URL.Path)
			assert.Equal(t, "Bearer service-key", r.Header.Get(constvars.HeaderAuthorization))
			w.Write([]byte(`{"id":"user-9","email":"nine@clinic.test"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		principal, err := client.GetUserByID(context.Background(), "user-9")

		assert.NoError(t, err)
		assert.Equal(t, "user-9", principal.ID)
	})
}

func TestTokenIsExpired(t *testing.T) {
	t.Run("past exp is expired", func(t *testing.T) {
		assert.True(t, tokenIsExpired(signedToken(t, time.Now().Add(-time.Minute))))
	})

	t.Run("future exp is not expired", func(t *testing.T) {
		assert.False(t, tokenIsExpired(signedToken(t, time.Now().Add(time.Minute))))
	})

	t.Run("token without an exp claim is not classified as expired", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
		signed, err := token.SignedString([]byte("test-secret"))
		assert.NoError(t, err)
		assert.False(t, tokenIsExpired(signed))
	})

	t.Run("garbage token is not classified as expired", func(t *testing.T) {
		assert.False(t, tokenIsExpired("not-a-jwt"))
	})
}
