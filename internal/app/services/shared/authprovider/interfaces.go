package authprovider

// The provider's verify endpoint returns the authenticated user for the
// bearer token it is given, or an error body shaped like:
//
//	{"error": "invalid_token", "error_description": "token is expired"}
//
// providerErrorBody captures both the OAuth-style and the message-style
// variants the hosted API emits.
type providerErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"msg"`
}
