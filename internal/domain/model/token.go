package model

import "time"

// UserInfo is the optional account identity captured when a platform is
// authorized. All fields are as reported by the platform.
type UserInfo struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Token is an authorization artifact for a single platform. A nil ExpiresAt
// means the token does not expire and stays valid until a post fails or it is
// explicitly replaced.
type Token struct {
	Value     string
	ExpiresAt *time.Time
	UserInfo  *UserInfo
}

// Expired reports whether the token has a deadline in the past relative to now.
func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(now)
}

// AuthStatus describes the current authorization state of a platform as
// derived from the token vault.
type AuthStatus struct {
	Authorized   bool
	NeedsRefresh bool
	ExpiresAt    *time.Time
}
