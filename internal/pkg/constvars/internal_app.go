package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_PRINCIPAL_KEY            ContextKey = "principal"
	CONTEXT_ACCESS_TOKEN_KEY         ContextKey = "access_token"
	CONTEXT_RESOLVED_IDENTITY_KEY    ContextKey = "resolved_identity"
)

const (
	REQUEST_ID_PREFIX = "CLNDSK_SVC_"
)

// Roles are wire values; they appear verbatim in provider metadata,
// store rows and audit events.
const (
	ClinicdeskRoleClient    = "client"
	ClinicdeskRoleClinician = "clinician"
	ClinicdeskRoleAdmin     = "admin"
)

const (
	UserTypeClient    = "client"
	UserTypeClinician = "clinician"
	UserTypeAdmin     = "admin"
)

// AccessTokenCookieName is the HttpOnly cookie the frontend sets after
// sign-in; consulted only when the Authorization header is absent.
const AccessTokenCookieName = "access_token"

const (
	// FileObjectKeyPrefix namespaces every stored document by the owning
	// patient so ownership is decidable from the key alone.
	FileObjectKeyPrefix = "patients"

	FileUploadFormField    = "file"
	FileUploadPatientField = "patient_id"
)

const (
	AuditEventAuthDenied         = "auth.denied"
	AuditEventProfileFetchFailed = "identity.profile_fetch_failed"
	AuditEventRoleResolved       = "identity.role_resolved"
)
