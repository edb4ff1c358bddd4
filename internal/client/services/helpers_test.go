package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/umsclient/internal/client/models"
	"github.com/dmitrijs2005/umsclient/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

// fakeClient implements api.Client for service tests, recording the
// arguments of the last call.
type fakeClient struct {
	mu sync.Mutex

	SignInRet models.UserRecord
	SignInErr error

	SignOutErr   error
	SignOutCalls int

	UpdateRet models.UserRecord
	UpdateErr error

	ListRet []models.UserRecord
	ListErr error

	DeleteErr error

	CreateRet models.UserRecord
	CreateErr error

	LastSignInEmail    string
	LastSignInPassword string
	LastUpdateID       string
	LastUpdatePatch    models.UserPatch
	LastDeleteID       string
	LastCreatePatch    models.UserPatch
}

func (f *fakeClient) SignIn(ctx context.Context, email, password string) (models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastSignInEmail = email
	f.LastSignInPassword = password
	return f.SignInRet, f.SignInErr
}

func (f *fakeClient) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignOutCalls++
	return f.SignOutErr
}

func (f *fakeClient) UpdateUser(ctx context.Context, userID string, patch models.UserPatch) (models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUpdateID = userID
	f.LastUpdatePatch = patch
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	return f.ListRet, f.ListErr
}

func (f *fakeClient) DeleteUser(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastDeleteID = userID
	return f.DeleteErr
}

func (f *fakeClient) CreateUser(ctx context.Context, patch models.UserPatch) (models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCreatePatch = patch
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) Close() error { return nil }

// fakeTokens implements TokenCarrier.
type fakeTokens struct {
	token string
}

func (f *fakeTokens) AccessToken() string         { return f.token }
func (f *fakeTokens) SetAccessToken(token string) { f.token = token }

func recAlice() models.UserRecord {
	return models.UserRecord{ID: "u1", Username: "alice", Email: "a@x.com", ProfilePicture: "u0"}
}
