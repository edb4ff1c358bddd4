package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/umsclient/internal/client/models"
	"github.com/dmitrijs2005/umsclient/internal/client/session"
)

func stubInputs(t *testing.T, text string, password string) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

type fakeAuthService struct {
	// SignIn
	inEmail string
	inPass  string
	inRec   models.UserRecord
	inErr   error

	// SignOut
	outCalled bool
	outErr    error

	// Restore
	restoreRec models.UserRecord
	restoreErr error
}

func (f *fakeAuthService) SignIn(_ context.Context, email, password string) (models.UserRecord, error) {
	f.inEmail, f.inPass = email, password
	return f.inRec, f.inErr
}
func (f *fakeAuthService) SignOut(context.Context) error {
	f.outCalled = true
	return f.outErr
}
func (f *fakeAuthService) Restore(context.Context) (models.UserRecord, error) {
	return f.restoreRec, f.restoreErr
}
func (f *fakeAuthService) Close(context.Context) error { return nil }

func TestSignIn_Success(t *testing.T) {
	silencePrintln(t)

	f := &fakeAuthService{inRec: models.UserRecord{ID: "u1", Username: "alice"}}
	a := &App{authService: f, sess: session.NewStore(), route: "/"}

	restore := stubInputs(t, "alice@example.org", "secret")
	defer restore()

	if err := a.SignIn(context.Background()); err != nil {
		t.Fatalf("SignIn err: %v", err)
	}
	if f.inEmail != "alice@example.org" {
		t.Fatalf("SignIn email mismatch: %q", f.inEmail)
	}
	if f.inPass != "secret" {
		t.Fatalf("SignIn password mismatch: %q", f.inPass)
	}
}

func TestSignIn_ErrorPropagates(t *testing.T) {
	silencePrintln(t)

	f := &fakeAuthService{inErr: errors.New("bad credentials")}
	a := &App{authService: f, sess: session.NewStore(), route: "/"}

	restore := stubInputs(t, "alice@example.org", "wrong")
	defer restore()

	if err := a.SignIn(context.Background()); err == nil {
		t.Fatal("want error from SignIn")
	}
}

func TestSignOut_OnDashboard(t *testing.T) {
	silencePrintln(t)

	f := &fakeAuthService{}
	sess := session.NewStore()
	sess.Set(models.UserRecord{ID: "u1", Username: "alice"})
	a := &App{authService: f, sess: sess, route: session.AdminDashboardRoute}

	if err := a.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut err: %v", err)
	}
	if !f.outCalled {
		t.Fatal("SignOut not forwarded to the service")
	}
}

func TestSignOut_RefusedOffDashboard(t *testing.T) {
	silencePrintln(t)

	f := &fakeAuthService{}
	sess := session.NewStore()
	sess.Set(models.UserRecord{ID: "u1", Username: "alice"})
	a := &App{authService: f, sess: sess, route: "/profile"}

	if err := a.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut err: %v", err)
	}
	if f.outCalled {
		t.Fatal("SignOut must not reach the service off the dashboard route")
	}
}
