// Package profile implements the profile editor's state: the draft of
// uncommitted edits and the submitter that turns the draft into a mutation
// of the authoritative user record.
package profile

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/umsclient/internal/client/models"
)

// Field names accepted by Draft.SetField.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

var ErrUnknownField = errors.New("unknown profile field")

// Draft holds the user's in-progress edits. Two independent writers feed
// it: field edits from the form and the retrieval URL from a finished
// upload. The fields are disjoint and all writers operate on this one
// aggregate, so neither writer can lose the other's update.
type Draft struct {
	mu    sync.Mutex
	patch models.UserPatch
}

func NewDraft() *Draft {
	return &Draft{}
}

// SetField overwrites exactly one form field, leaving the rest untouched.
func (d *Draft) SetField(name string, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := value
	switch name {
	case FieldUsername:
		d.patch.Username = &v
	case FieldEmail:
		d.patch.Email = &v
	case FieldPassword:
		d.patch.Password = &v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// MergePictureURL is the upload side channel: it writes only the picture
// field, so edits typed while the upload was in flight survive.
func (d *Draft) MergePictureURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u := url
	d.patch.ProfilePicture = &u
}

// ReadEffective resolves each field to the draft's value when present, else
// the session record's value. Used both to render the form and to show the
// user what a submit would produce.
func (d *Draft) ReadEffective(rec models.UserRecord) models.UserRecord {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := rec
	if d.patch.Username != nil {
		out.Username = *d.patch.Username
	}
	if d.patch.Email != nil {
		out.Email = *d.patch.Email
	}
	if d.patch.ProfilePicture != nil {
		out.ProfilePicture = *d.patch.ProfilePicture
	}
	return out
}

// Snapshot returns the touched subset as a mutation payload. The pointers
// are copied so later edits do not mutate an in-flight submission.
func (d *Draft) Snapshot() models.UserPatch {
	d.mu.Lock()
	defer d.mu.Unlock()

	cp := models.UserPatch{}
	if d.patch.Username != nil {
		v := *d.patch.Username
		cp.Username = &v
	}
	if d.patch.Email != nil {
		v := *d.patch.Email
		cp.Email = &v
	}
	if d.patch.Password != nil {
		v := *d.patch.Password
		cp.Password = &v
	}
	if d.patch.ProfilePicture != nil {
		v := *d.patch.ProfilePicture
		cp.ProfilePicture = &v
	}
	return cp
}

// Reset clears every field: after a successful submit or on leaving the
// editor. Subsequent reads fall back to the session record.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.patch = models.UserPatch{}
}
