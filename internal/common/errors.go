// Package common defines shared constants and sentinel errors used across
// the UMS client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Service-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Session lifecycle errors.
	ErrNotSignedIn    = errors.New("not signed in")
	ErrSessionExpired = errors.New("session expired")
)
