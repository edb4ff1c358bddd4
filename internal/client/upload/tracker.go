// Package upload tracks the state of the avatar upload independently of the
// profile form: Idle -> Uploading -> {Succeeded, Failed}, restartable for
// every newly selected file.
package upload

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/umsclient/internal/client/assets"
)

type State int

const (
	StateIdle State = iota
	StateUploading
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUploading:
		return "uploading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// FailedMessage is the single user-facing message class for upload failures.
// Causes are deliberately not distinguished beyond it.
const FailedMessage = "error uploading image (file size must be less than 2 MB, or a transient storage failure occurred)"

// Status is a point-in-time snapshot for the UI.
type Status struct {
	State   State
	Percent int
	Message string
}

// Tracker converts asset-store events into UI-observable status. Events are
// matched against the task started last; anything tagged with an abandoned
// task is discarded. Percent never moves backward within one task.
type Tracker struct {
	mu         sync.Mutex
	state      State
	taskID     uuid.UUID
	percent    int
	message    string
	err        error
	onComplete func(url string)
}

// NewTracker returns an idle tracker. onComplete fires exactly once per
// succeeded task with the durable retrieval URL; it is the only side effect
// the tracker performs.
func NewTracker(onComplete func(url string)) *Tracker {
	return &Tracker{onComplete: onComplete}
}

// Start moves the tracker to Uploading for the given task, from any state.
// Future events from previously started tasks no longer apply.
func (t *Tracker) Start(taskID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = StateUploading
	t.taskID = taskID
	t.percent = 0
	t.message = ""
	t.err = nil
}

// Apply folds one event into the tracker.
func (t *Tracker) Apply(ev assets.Event) {
	t.mu.Lock()

	if ev.TaskID != t.taskID || t.state != StateUploading {
		t.mu.Unlock()
		return
	}

	switch ev.Kind {
	case assets.EventProgress:
		if p := toPercent(ev.Transferred, ev.Total); p > t.percent {
			t.percent = p
		}
		t.mu.Unlock()

	case assets.EventCompleted:
		t.state = StateSucceeded
		t.percent = 100
		cb := t.onComplete
		t.mu.Unlock()
		if cb != nil {
			cb(ev.URL)
		}

	case assets.EventFailed:
		t.state = StateFailed
		t.message = FailedMessage
		t.err = ev.Err
		t.mu.Unlock()

	default:
		t.mu.Unlock()
	}
}

// Watch consumes events until the stream ends or ctx is cancelled. It is
// meant to run on its own goroutine, one per started task.
func (t *Tracker) Watch(ctx context.Context, events <-chan assets.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			t.Apply(ev)
		case <-ctx.Done():
			return
		}
	}
}

// Status returns the current snapshot.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{State: t.state, Percent: t.percent, Message: t.message}
}

// Err returns the recorded cause of the last failure, nil otherwise.
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func toPercent(transferred, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(transferred) / float64(total) * 100))
}
