package upstream

import (
	"errors"
	"fmt"
)

// The two failure kinds every upstream operation can produce. Both are
// converted to a display message at the boundary; neither propagates
// further up as anything richer.

// TransportError means the backend could not be reached at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError means the backend answered with a non-success status.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

// DisplayMessage reduces any upstream failure to the human-readable text
// shown to the vendor. Server-provided detail is surfaced verbatim.
func DisplayMessage(err error) string {
	var srv *ServerError
	if errors.As(err, &srv) {
		return srv.Error()
	}
	var tr *TransportError
	if errors.As(err, &tr) {
		return tr.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
