// Package common contains shared constants and sentinel errors used across
// UMS client components.
package common

// AccessTokenCookieName is the cookie the auth service sets on sign-in and
// expects back on every authenticated request.
const AccessTokenCookieName = "access_token"
