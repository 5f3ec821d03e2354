package model

import "time"

// AuthResult is the outcome of one authorization attempt against a platform.
// On failure, Error carries the adapter's message verbatim.
type AuthResult struct {
	Success   bool
	Token     string
	ExpiresAt *time.Time
	UserInfo  *UserInfo
	Message   string
	Error     string
}

// PostResult is the outcome of one post attempt against a platform. On
// failure, Error carries the adapter's message verbatim.
type PostResult struct {
	Success bool
	PostID  string
	PostURL string
	Error   string
}
