package api

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/umsclient/internal/common"
)

var (
	ErrUnavailable = errors.New("server unavailable")
)

// MutationError is a non-2xx response from the backend, carrying the
// human-readable message the server put in the response body. It is
// user-facing and non-fatal: the caller keeps its local state and the user
// may retry.
type MutationError struct {
	StatusCode int
	Message    string
}

func (e *MutationError) Error() string {
	return e.Message
}

// Unwrap maps well-known status codes onto shared sentinel errors so callers
// can match with errors.Is without inspecting status codes.
func (e *MutationError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case e.StatusCode >= 500:
		return common.ErrorInternal
	}
	return nil
}
