// Package models defines client-side data models used by the UMS client.
package models

// UserRecord is the authoritative user document as returned by the
// user-record service. It is immutable once fetched: a successful profile
// mutation replaces the whole record, it is never patched in place.
//
// JSON field names follow the service's wire format.
type UserRecord struct {
	// ID is the server-assigned identifier of the user.
	ID string `json:"_id"`

	// Username is the display/login name.
	Username string `json:"username"`

	// Email is the account email address.
	Email string `json:"email"`

	// ProfilePicture is the durable retrieval URL of the avatar image.
	ProfilePicture string `json:"profilePicture"`
}

// UserPatch is the mutation payload sent to the user-record service.
// Every field is optional; only fields the user actually edited are
// serialized, so the server sees exactly the touched subset.
type UserPatch struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty"`
	Password       *string `json:"password,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil && p.ProfilePicture == nil
}
