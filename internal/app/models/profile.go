package models

// Profile is the normalized per-role user record merged from whichever
// backing store held it. Store schemas differ; this shape does not.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone,omitempty"`
	Specialty   string `json:"specialty,omitempty"`
	UserType    string `json:"user_type"`
	Role        string `json:"role"`
}

// ResolvedIdentity is the request-scoped bundle the guard and handlers
// consume. Profile may be nil: a store miss after role resolution is
// non-fatal by design.
type ResolvedIdentity struct {
	Principal *Principal `json:"principal"`
	Role      string     `json:"role"`
	Profile   *Profile   `json:"profile"`
}
