// Package api contains the client for the UMS backend REST API. The backend
// is treated as an opaque collaborator: this package knows its routes and
// JSON shapes and nothing else.
package api

import (
	"context"

	"github.com/dmitrijs2005/umsclient/internal/client/models"
)

// Client is the remote surface of the user-record and auth services.
//
// Contract:
//   - SignIn: authenticate and return the session's user record. The server
//     also sets an access-token cookie which the client carries on all
//     subsequent requests.
//   - SignOut: invalidate the server-side session. Any response counts as
//     success.
//   - UpdateUser: apply a partial mutation to a user record; the returned
//     record is the full, authoritative post-mutation document.
//   - ListUsers / DeleteUser / CreateUser: admin dashboard operations.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	SignIn(ctx context.Context, email string, password string) (models.UserRecord, error)
	SignOut(ctx context.Context) error
	UpdateUser(ctx context.Context, userID string, patch models.UserPatch) (models.UserRecord, error)
	ListUsers(ctx context.Context) ([]models.UserRecord, error)
	DeleteUser(ctx context.Context, userID string) error
	CreateUser(ctx context.Context, patch models.UserPatch) (models.UserRecord, error)
	Close() error
}
