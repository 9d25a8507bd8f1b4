package constvars

// Machine-readable error codes returned in the response body alongside the
// HTTP status. Clients branch on these, never on the message text.
const (
	ErrCodeNoToken          = "NO_TOKEN"
	ErrCodeInvalidToken     = "INVALID_TOKEN"
	ErrCodeTokenExpired     = "TOKEN_EXPIRED"
	ErrCodeAccountSuspended = "ACCOUNT_SUSPENDED"
	ErrCodeAuthServiceError = "AUTH_SERVICE_ERROR"

	ErrCodeNotAuthenticated = "NOT_AUTHENTICATED"
	ErrCodeInvalidRole      = "INVALID_ROLE"
	ErrCodeRoleServiceError = "ROLE_SERVICE_ERROR"

	ErrCodeForbiddenRole      = "FORBIDDEN_ROLE"
	ErrCodeForbiddenOwnership = "FORBIDDEN_OWNERSHIP"

	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"

	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
)
