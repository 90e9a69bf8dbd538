package client

import "errors"

// ErrKind buckets API failures by how the caller should react.
type ErrKind int

const (
	// ErrTransport covers network failures and 5xx responses. Retryable.
	ErrTransport ErrKind = iota
	// ErrAuth is a missing or rejected credential (401). Not retried locally;
	// the caller re-authenticates.
	ErrAuth
	// ErrValidation is a 4xx rejection whose message is shown verbatim.
	ErrValidation
	// ErrConflict is a 409, e.g. a certificate that already exists.
	ErrConflict
	// ErrEmptyPayload is a 2xx response whose body is empty or unusable.
	// The transport succeeded but the operation did not.
	ErrEmptyPayload
)

// APIError is the single error type surfaced by the SDK.
type APIError struct {
	Kind    ErrKind
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

func kindOf(err error) (ErrKind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	k, ok := kindOf(err)
	return ok && k == ErrAuth
}

// IsConflict reports whether err is a conflict rejection.
func IsConflict(err error) bool {
	k, ok := kindOf(err)
	return ok && k == ErrConflict
}

// IsRetryable reports whether the failure may clear up on retry.
func IsRetryable(err error) bool {
	k, ok := kindOf(err)
	return ok && k == ErrTransport
}
