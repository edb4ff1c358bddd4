package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/umsclient/internal/client/api"
	"github.com/dmitrijs2005/umsclient/internal/client/assets"
	"github.com/dmitrijs2005/umsclient/internal/client/models"
	"github.com/dmitrijs2005/umsclient/internal/client/profile"
	"github.com/dmitrijs2005/umsclient/internal/client/session"
	"github.com/dmitrijs2005/umsclient/internal/client/upload"
	"github.com/dmitrijs2005/umsclient/internal/common"
	"github.com/dmitrijs2005/umsclient/internal/logging"
)

// ProfileService drives the profile editor: field edits and the avatar
// upload feed one draft, and Submit reconciles the draft with the
// authoritative record.
//
// Contract:
//   - EditField / AttachPicture: the two independent draft writers.
//   - Effective: the form's view, draft over session record.
//   - Submit: one in-flight mutation at a time; see profile.Submitter.
//   - UploadStatus: the tracker's snapshot for rendering.
//   - Discard: drop uncommitted edits on leaving the editor.
type ProfileService interface {
	EditField(name string, value string) error
	AttachPicture(ctx context.Context, path string) error
	Effective() (models.UserRecord, error)
	Submit(ctx context.Context) (models.UserRecord, error)
	SubmitPending() bool
	UploadStatus() upload.Status
	Discard()
}

type profileService struct {
	store     assets.Store
	sess      *session.Store
	draft     *profile.Draft
	tracker   *upload.Tracker
	submitter *profile.Submitter
	log       logging.Logger
}

func NewProfileService(client api.Client, store assets.Store, sess *session.Store, log logging.Logger) ProfileService {
	draft := profile.NewDraft()
	return &profileService{
		store:     store,
		sess:      sess,
		draft:     draft,
		tracker:   upload.NewTracker(draft.MergePictureURL),
		submitter: profile.NewSubmitter(client, sess, draft, log),
		log:       log,
	}
}

func (s *profileService) EditField(name string, value string) error {
	return s.draft.SetField(name, value)
}

// AttachPicture starts uploading the image at path and returns immediately;
// the transfer runs in the background while the user keeps editing. Picking
// a new picture before the previous upload finished abandons the old task:
// its remaining events are discarded by task tag, the transfer itself is
// left to run out.
func (s *profileService) AttachPicture(ctx context.Context, path string) error {
	if !s.sess.SignedIn() {
		return common.ErrNotSignedIn
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("reading image size: %w", err)
	}

	h := s.store.BeginUpload(ctx, f, fi.Size(), filepath.Base(path))
	s.tracker.Start(h.TaskID)

	s.log.Info(ctx, "upload started", "task_id", h.TaskID.String(), "file", filepath.Base(path), "size", fi.Size())

	go func() {
		defer f.Close()
		s.tracker.Watch(ctx, h.Events())
	}()

	return nil
}

func (s *profileService) Effective() (models.UserRecord, error) {
	cur, ok := s.sess.Current()
	if !ok {
		return models.UserRecord{}, common.ErrNotSignedIn
	}
	return s.draft.ReadEffective(cur), nil
}

func (s *profileService) Submit(ctx context.Context) (models.UserRecord, error) {
	return s.submitter.Submit(ctx)
}

func (s *profileService) SubmitPending() bool {
	return s.submitter.Pending()
}

func (s *profileService) UploadStatus() upload.Status {
	return s.tracker.Status()
}

func (s *profileService) Discard() {
	s.draft.Reset()
}
