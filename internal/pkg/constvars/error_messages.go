package constvars

// Client messages are safe to show to end users.
const (
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "Please sign in to continue"
	ErrClientTokenExpired                  = "Your session has expired, please sign in again"
	ErrClientAccountSuspended              = "Account is temporarily suspended"
	ErrClientInvalidRole                   = "Invalid user role"
	ErrClientCannotProcessRequest          = "We cannot process your request"
	ErrClientSomethingWrongWithApplication = "Something is wrong with the application"
	ErrClientFileNotFound                  = "The requested file could not be found"
	ErrClientFileTooLarge                  = "The uploaded file exceeds the maximum allowed size"
	ErrClientTooManyRequests               = "Too many requests, please try again later"
)

// Dev messages are logged and, outside production, echoed in responses.
const (
	ErrDevAuthTokenMissing         = "no authentication token in header or cookie"
	ErrDevAuthTokenInvalid         = "identity provider rejected the token"
	ErrDevAuthTokenExpired         = "identity provider reported the token expired"
	ErrDevAuthAccountSuspended     = "principal banned_until is in the future"
	ErrDevAuthProviderUnreachable  = "identity provider call failed"
	ErrDevAuthPrincipalMissing     = "no principal attached to request context"
	ErrDevRoleOutsideAllowedSet    = "resolved role is outside the allowed set"
	ErrDevRoleStoreLookupFailed    = "profile store lookup failed during role resolution"
	ErrDevRoleNotPermitted         = "resolved role is not in the route's allowed roles"
	ErrDevOwnershipMismatch        = "caller does not own the requested resource"
	ErrDevCannotParseMultipartForm = "failed to parse multipart form"
	ErrDevCannotParseJSON          = "failed to parse JSON body"
	ErrDevValidationFailed         = "request validation failed"
	ErrDevFileKeyMissing           = "file key missing from request path"
	ErrDevFileKeyMalformed         = "file key does not follow the patients/<id>/<name> layout"
	ErrDevServerProcess            = "internal process failed"
	ErrDevRateLimited              = "upload rate limit exceeded"

	ErrDevPostgresFindData = "failed to query postgres"

	ErrDevMinioFailedToCreateObject  = "failed to store object in bucket %s"
	ErrDevMinioFailedToPresignObject = "failed to presign object in bucket %s"
	ErrDevMinioFailedToRemoveObject  = "failed to remove object from bucket %s"
	ErrDevMinioFailedToListObjects   = "failed to list objects in bucket %s"

	ErrDevRabbitMQPublish = "failed to publish message to queue %s"

	ErrDevRedisSetData   = "failed to set data to redis"
	ErrDevRedisGetData   = "failed to get data from redis"
	ErrDevRedisIncrement = "failed to increment redis counter"
)
