package api

import "errors"

var (
	// ErrUnavailable means the request never produced a server response
	// (connection refused, DNS failure, timeout). Its text is safe to show
	// to the user; the raw transport cause is only logged.
	ErrUnavailable = errors.New("unable to connect to the server, please try again later")

	// ErrUnauthorized means the backend rejected the credentials. By the
	// time a caller sees it, the persisted session has already been torn
	// down and navigation to the login screen requested.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries a backend-reported failure: a validation or business
// error delivered through the response envelope, or an unexpected status
// without one. The message is surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}
