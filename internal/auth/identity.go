package auth

import "time"

// ProviderIdentity is the normalized identity resolved from the external
// OAuth2 provider for one login attempt. It is consumed once and never
// persisted verbatim.
type ProviderIdentity struct {
	ProviderID string // provider-scoped unique identifier
	Login      string // provider login handle
	Name       string // display name, may be empty
	Email      string // resolved email, always set on success
	AvatarURL  string
}

// AccessToken is a signed token plus its expiration, returned to the
// caller and never stored server-side.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}
