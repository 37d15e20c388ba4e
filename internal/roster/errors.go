package roster

import (
	"errors"
	"fmt"
)

// Operation names carried by RemoteError.
const (
	OpLoad   = "load"
	OpCreate = "create"
)

// User-facing messages surfaced in State.
const (
	LoadFailedMessage   = "Failed to load students. Please try again later."
	CreateFailedMessage = "Failed to create student"
)

// ErrSuperseded is returned by Load when a newer load started before this one finished.
// The superseded response is discarded.
var ErrSuperseded = errors.New("roster: load superseded by a newer request")

// ValidationError rejects a candidate before it is sent to the service.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RemoteError reports a non-2xx response or a transport failure from the student service.
type RemoteError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s students: status %d: %s", e.Op, e.Status, e.Message)
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s students: status %d: %v", e.Op, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s students: status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s students: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s students failed", e.Op)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func asRemoteError(op string, err error) *RemoteError {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote
	}
	return &RemoteError{Op: op, Err: err}
}
