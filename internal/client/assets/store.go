// Package assets wraps the remote blob store used for profile pictures.
// An upload is represented by a Handle: a stream of task-tagged events
// ending in exactly one terminal event.
package assets

import (
	"context"
	"io"

	"github.com/google/uuid"
)

type EventKind int

const (
	// EventProgress reports bytes transferred so far.
	EventProgress EventKind = iota
	// EventCompleted carries the durable retrieval URL. Terminal.
	EventCompleted
	// EventFailed carries the upload error. Terminal.
	EventFailed
)

// Event is one observation from an in-flight upload. TaskID identifies the
// upload it belongs to; consumers must discard events from tasks they no
// longer track.
type Event struct {
	TaskID      uuid.UUID
	Kind        EventKind
	Transferred int64
	Total       int64
	URL         string
	Err         error
}

// Handle is the caller's view of one upload task. Events() delivers
// zero-or-more progress events followed by exactly one terminal event,
// after which the channel is closed. Nothing is delivered after a terminal
// event.
type Handle struct {
	TaskID uuid.UUID
	events chan Event
}

// NewHandle creates a handle for the given task. Store implementations emit
// events into it and close it after the terminal event.
func NewHandle(taskID uuid.UUID) *Handle {
	return &Handle{TaskID: taskID, events: make(chan Event, 16)}
}

func (h *Handle) Events() <-chan Event {
	return h.events
}

// Emit delivers an event to the handle. Progress events are best-effort:
// if the consumer is slow the event is dropped rather than blocking the
// transfer (a later one supersedes it anyway). Terminal events wait for the
// consumer unless the context is cancelled.
func (h *Handle) Emit(ctx context.Context, ev Event) {
	if ev.Kind == EventProgress {
		select {
		case h.events <- ev:
		default:
		}
		return
	}
	select {
	case h.events <- ev:
	case <-ctx.Done():
	}
}

// CloseSend marks the event stream finished. Only the emitting side may
// call it, exactly once, after the terminal event.
func (h *Handle) CloseSend() {
	close(h.events)
}

// Store is a remote blob-storage capability. BeginUpload starts transferring
// the given object in the background and returns immediately; the returned
// handle reports the outcome. The store never retries: a failure is surfaced
// once and retrying means starting a new upload.
type Store interface {
	BeginUpload(ctx context.Context, r io.Reader, size int64, suggestedName string) *Handle
}
