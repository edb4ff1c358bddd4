package profile

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/umsclient/internal/client/api"
	"github.com/dmitrijs2005/umsclient/internal/client/models"
	"github.com/dmitrijs2005/umsclient/internal/client/session"
	"github.com/dmitrijs2005/umsclient/internal/common"
	"github.com/dmitrijs2005/umsclient/internal/logging"
)

var ErrSubmitInFlight = errors.New("a submit is already in flight")

// Submitter sends the merged draft to the user-record service and reconciles
// the session with the result. It deliberately does not wait for an
// in-flight upload: submitting early sends the prior picture value and the
// new one rides along on the next save. That race is a product decision,
// not an accident; do not serialize it here.
type Submitter struct {
	client   api.Client
	sess     *session.Store
	draft    *Draft
	inFlight atomic.Bool
	log      logging.Logger
}

func NewSubmitter(client api.Client, sess *session.Store, draft *Draft, log logging.Logger) *Submitter {
	return &Submitter{client: client, sess: sess, draft: draft, log: log}
}

// Submit issues exactly one mutation request for the current draft.
//
// Only one submit may be in flight at a time; a second attempt is rejected
// with ErrSubmitInFlight. The user ID always comes from the session, never
// from a caller. On a non-2xx response the session is left untouched and
// the draft retained, so the user can correct and resubmit. On success the
// session record is replaced wholesale with the server's document (the
// server is authoritative, no merging) and the draft is cleared.
func (s *Submitter) Submit(ctx context.Context) (models.UserRecord, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return models.UserRecord{}, ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	cur, ok := s.sess.Current()
	if !ok {
		return models.UserRecord{}, common.ErrNotSignedIn
	}

	patch := s.draft.Snapshot()

	updated, err := s.client.UpdateUser(ctx, cur.ID, patch)
	if err != nil {
		s.log.Warn(ctx, "profile update rejected", "user_id", cur.ID, "error", err)
		return models.UserRecord{}, fmt.Errorf("updating profile: %w", err)
	}

	s.sess.Set(updated)
	s.draft.Reset()
	s.log.Info(ctx, "profile updated", "user_id", updated.ID)
	return updated, nil
}

// Pending reports whether a submit is currently in flight. The UI disables
// the submit affordance while it is.
func (s *Submitter) Pending() bool {
	return s.inFlight.Load()
}
