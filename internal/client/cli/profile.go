package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/umsclient/internal/client/profile"
	"github.com/dmitrijs2005/umsclient/internal/client/upload"
	"github.com/dmitrijs2005/umsclient/internal/common"
)

// ShowProfile prints the profile as it would look after a submit: the
// session record with staged edits layered on top.
func (a *App) ShowProfile(ctx context.Context) error {
	rec, err := a.profileService.Effective()
	if err != nil {
		if errors.Is(err, common.ErrNotSignedIn) {
			printlnFn("Sign in first")
			return nil
		}
		return err
	}

	printlnFn(fmt.Sprintf("Username: %s", rec.Username))
	printlnFn(fmt.Sprintf("Email:    %s", rec.Email))
	printlnFn(fmt.Sprintf("Picture:  %s", rec.ProfilePicture))
	return nil
}

// SetField stages a single profile field edit.
func (a *App) SetField(ctx context.Context, name, value string) error {
	if err := a.profileService.EditField(name, value); err != nil {
		if errors.Is(err, profile.ErrUnknownField) {
			printlnFn(fmt.Sprintf("Unknown field %q (use: username, email, password)", name))
			return nil
		}
		return err
	}
	printlnFn(fmt.Sprintf("Staged %s", name))
	return nil
}

// AttachPicture starts an avatar upload from a local file. The transfer runs
// in the background; use the status command to observe progress.
func (a *App) AttachPicture(ctx context.Context, path string) error {
	if err := a.profileService.AttachPicture(ctx, path); err != nil {
		printlnFn("Upload not started:", err.Error())
		return err
	}
	printlnFn("Uploading...")
	return nil
}

// UploadStatus prints the current state of the avatar upload.
func (a *App) UploadStatus(ctx context.Context) error {
	st := a.profileService.UploadStatus()

	switch st.State {
	case upload.StateIdle:
		printlnFn("No upload in progress")
	case upload.StateUploading:
		printlnFn(fmt.Sprintf("Uploading: %d%%", st.Percent))
	case upload.StateSucceeded:
		printlnFn("Upload complete")
	case upload.StateFailed:
		printlnFn(st.Message)
	}
	return nil
}

// Submit sends the staged edits to the server. It does not wait for an
// in-flight picture upload; whatever is staged at this instant is what goes
// out, matching the original form's behavior.
func (a *App) Submit(ctx context.Context) error {
	rec, err := a.profileService.Submit(ctx)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrSubmitInFlight):
			printlnFn("A submit is already in flight")
		case errors.Is(err, common.ErrNotSignedIn):
			printlnFn("Sign in first")
		default:
			printlnFn("Update failed:", err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("Profile updated: %s <%s>", rec.Username, rec.Email))
	return nil
}

// Discard drops all staged edits.
func (a *App) Discard(ctx context.Context) error {
	a.profileService.Discard()
	printlnFn("Staged changes discarded")
	return nil
}
