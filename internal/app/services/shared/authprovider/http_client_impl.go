package authprovider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"clinicdesk-service/internal/app/config"
	"clinicdesk-service/internal/app/contracts"
	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

var (
	authProviderClientInstance contracts.AuthProviderClient
	onceAuthProviderClient     sync.Once
)

type httpAuthProviderClient struct {
	BaseURL    string
	ServiceKey string
	HTTPClient *http.Client
	Log        *zap.Logger
}

// NewHTTPAuthProviderClient builds the client for the hosted identity
// provider's REST API. No deadline is layered on the underlying calls;
// callers needing bounded latency set one on the request context.
func NewHTTPAuthProviderClient(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.AuthProviderClient {
	onceAuthProviderClient.Do(func() {
		client := &httpAuthProviderClient{
			BaseURL:    strings.TrimSuffix(internalConfig.AuthProvider.BaseURL, "/"),
			ServiceKey: internalConfig.AuthProvider.ServiceKey,
			HTTPClient: &http.Client{},
			Log:        logger,
		}
		authProviderClientInstance = client
	})
	return authProviderClientInstance
}

func (c *httpAuthProviderClient) VerifyToken(ctx context.Context, token string) (*models.Principal, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/auth/v1/user", nil)
	if err != nil {
		c.Log.Error("httpAuthProviderClient.VerifyToken error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrAuthServiceFailure(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
	req.Header.Set("apikey", c.ServiceKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("httpAuthProviderClient.VerifyToken error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrAuthServiceFailure(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrAuthServiceFailure(err)
	}

	switch {
	case resp.StatusCode == constvars.StatusOK:
		var principal models.Principal
		if err := json.Unmarshal(bodyBytes, &principal); err != nil {
			return nil, exceptions.ErrAuthServiceFailure(err)
		}
		return &principal, nil
	case resp.StatusCode == constvars.StatusUnauthorized || resp.StatusCode == constvars.StatusForbidden:
		return nil, c.classifyRejection(token, bodyBytes)
	default:
		return nil, exceptions.ErrAuthServiceFailure(fmt.Errorf("provider returned status %d", resp.StatusCode))
	}
}

func (c *httpAuthProviderClient) GetUserByID(ctx context.Context, id string) (*models.Principal, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/auth/v1/admin/users/"+id, nil)
	if err != nil {
		return nil, exceptions.ErrAuthServiceFailure(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+c.ServiceKey)
	req.Header.Set("apikey", c.ServiceKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("httpAuthProviderClient.GetUserByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrAuthServiceFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrAuthServiceFailure(fmt.Errorf("provider returned status %d", resp.StatusCode))
	}

	var principal models.Principal
	if err := json.NewDecoder(resp.Body).Decode(&principal); err != nil {
		return nil, exceptions.ErrAuthServiceFailure(err)
	}
	return &principal, nil
}

// classifyRejection separates "expired" from plain "invalid" so the caller
// can tell the frontend to run its refresh flow. The provider usually says
// so in the error body; when it returns a bare 401, an unverified parse of
// the token's exp claim is the tiebreaker. The parse grants nothing: the
// request is rejected either way.
func (c *httpAuthProviderClient) classifyRejection(token string, bodyBytes []byte) error {
	var body providerErrorBody
	_ = json.Unmarshal(bodyBytes, &body)

	description := strings.ToLower(body.ErrorDescription + " " + body.Message)
	if strings.Contains(description, "expired") {
		return exceptions.ErrTokenExpired(fmt.Errorf("%s", strings.TrimSpace(description)))
	}

	if tokenIsExpired(token) {
		return exceptions.ErrTokenExpired(fmt.Errorf("token exp claim is in the past"))
	}

	return exceptions.ErrTokenInvalid(fmt.Errorf("provider rejected token: %s", strings.TrimSpace(description)))
}

func tokenIsExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	// required=false: a token without an exp claim is not classified as
	// expired; the provider's verdict stands as INVALID_TOKEN.
	return !claims.VerifyExpiresAt(time.Now().Unix(), false)
}
