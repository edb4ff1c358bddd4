package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/umsclient/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignIn prompts the user for an email and password and attempts to
// authenticate via the AuthService. On success the session is replaced and
// persisted by the service; the shell only reports the outcome.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	rec, err := a.authService.SignIn(ctx, email, password)
	if err != nil {
		printlnFn("Sign in failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Signed in as %s", rec.Username))
	return nil
}

// SignOut signs the user out. The Logout affordance is keyed to the
// dashboard route, exactly like the original shell: elsewhere the command
// refuses and points the user at the dashboard.
func (a *App) SignOut(ctx context.Context) error {
	if !session.Visible(session.AffordanceLogout, a.isSignedIn(), a.route) {
		printlnFn(fmt.Sprintf("Logout is only available on %s (use: go %s)", session.AdminDashboardRoute, session.AdminDashboardRoute))
		return nil
	}

	if err := a.authService.SignOut(ctx); err != nil {
		printlnFn("Sign out failed:", err.Error())
		return err
	}

	printlnFn("Signed out")
	return nil
}
