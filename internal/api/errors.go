package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the backend. Message carries the
// backend's `detail` text when the body had one, so it is safe to show
// to the user as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

// NotFound reports whether the error is a 404.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Humanize turns any client error into one line suitable for a status
// bar or CLI stderr. Backend errors pass their detail through; transport
// and decode failures collapse to a single reachability message.
func Humanize(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		switch apiErr.Status {
		case http.StatusNotFound:
			return "not found"
		case http.StatusUnprocessableEntity:
			return "the server rejected the request"
		default:
			return fmt.Sprintf("the server returned an error (%d)", apiErr.Status)
		}
	}
	return "can't reach DriftMirror, try again"
}
