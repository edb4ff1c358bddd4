// Package services contains application services for the UMS client.
// This file defines the authentication service: sign-in, sign-out, and
// restoring a persisted session between runs.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/umsclient/internal/client/api"
	"github.com/dmitrijs2005/umsclient/internal/client/models"
	"github.com/dmitrijs2005/umsclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/umsclient/internal/client/session"
	"github.com/dmitrijs2005/umsclient/internal/common"
	"github.com/dmitrijs2005/umsclient/internal/dbx"
	"github.com/dmitrijs2005/umsclient/internal/logging"
)

// Metadata keys under which the session survives restarts.
const (
	metaKeySessionUser  = "session.user"
	metaKeySessionToken = "session.token"
)

// TokenCarrier is the slice of the HTTP client that exposes the access-token
// cookie for persistence and seeding.
type TokenCarrier interface {
	AccessToken() string
	SetAccessToken(token string)
}

// AuthService defines authentication operations for the client.
//
// Contract:
//   - SignIn: authenticate against the server, set the session, persist it.
//   - SignOut: tell the server, then clear session and persisted data. The
//     server call failing is logged and otherwise ignored: sign-out never
//     strands the user in a half-signed-in state.
//   - Restore: rebuild the session from persisted data; an expired or
//     missing token yields an error and no session.
//   - Close: release underlying client resources.
type AuthService interface {
	SignIn(ctx context.Context, email string, password string) (models.UserRecord, error)
	SignOut(ctx context.Context) error
	Restore(ctx context.Context) (models.UserRecord, error)
	Close(ctx context.Context) error
}

type authService struct {
	client api.Client
	tokens TokenCarrier
	sess   *session.Store
	db     *sql.DB
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client,
// session store, and local DB.
func NewAuthService(client api.Client, tokens TokenCarrier, sess *session.Store, db *sql.DB, log logging.Logger) AuthService {
	return &authService{client: client, tokens: tokens, sess: sess, db: db, log: log}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) SignIn(ctx context.Context, email string, password string) (models.UserRecord, error) {
	rec, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("sign in error: %w", err)
	}

	a.sess.Set(rec)

	if err := a.persistSession(ctx, rec); err != nil {
		// the live session works either way; only restore-on-restart suffers
		a.log.Warn(ctx, "could not persist session", "error", err)
	}

	a.log.Info(ctx, "signed in", "user_id", rec.ID)
	return rec, nil
}

// persistSession saves the user record and access token in one transaction.
func (a *authService) persistSession(ctx context.Context, rec models.UserRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	token := a.tokens.AccessToken()

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := metadata.NewSQLiteRepository(tx)
		if err := txRepo.Set(ctx, metaKeySessionUser, data); err != nil {
			return err
		}
		return txRepo.Set(ctx, metaKeySessionToken, []byte(token))
	})
}

func (a *authService) SignOut(ctx context.Context) error {
	if err := a.client.SignOut(ctx); err != nil {
		// silently degraded: the local session is cleared regardless
		a.log.Warn(ctx, "signout request failed", "error", err)
	}

	a.sess.Clear()

	if err := a.getMetadataRepo().Clear(ctx); err != nil {
		return fmt.Errorf("clearing persisted session: %w", err)
	}

	a.log.Info(ctx, "signed out")
	return nil
}

// Restore rebuilds the session from the local database. The persisted access
// token's exp claim is inspected (without signature verification; only the
// server can verify it anyway) so an expired session is discarded instead of
// producing confusing 401s later.
func (a *authService) Restore(ctx context.Context) (models.UserRecord, error) {
	repo := a.getMetadataRepo()

	data, err := repo.Get(ctx, metaKeySessionUser)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("reading persisted session: %w", err)
	}
	token, err := repo.Get(ctx, metaKeySessionToken)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("reading persisted token: %w", err)
	}
	if len(data) == 0 || len(token) == 0 {
		return models.UserRecord{}, common.ErrNotSignedIn
	}

	if tokenExpired(string(token)) {
		_ = repo.Clear(ctx)
		return models.UserRecord{}, common.ErrSessionExpired
	}

	var rec models.UserRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.UserRecord{}, fmt.Errorf("decoding persisted session: %w", err)
	}

	a.tokens.SetAccessToken(string(token))
	a.sess.Set(rec)

	a.log.Info(ctx, "session restored", "user_id", rec.ID)
	return rec, nil
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// tokenExpired decodes the token's registered claims without verifying the
// signature. A token that cannot be parsed counts as expired; a token with
// no exp claim does not expire client-side.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
