package authz

import "strings"

// ValidationError reports every precondition violation found in the caller's
// input. It is raised before any network I/O; fixing the listed problems and
// calling again is always safe.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "Bad options: " + strings.Join(e.Violations, " ")
}

// OTPAcquisitionError means the server demanded a one-time password but the
// configured prompt could not produce one. No retry request was sent.
type OTPAcquisitionError struct {
	Err error // underlying prompt error, nil when the prompt returned nothing
}

func (e *OTPAcquisitionError) Error() string {
	if e.Err != nil {
		return "could not acquire OTP from user: " + e.Err.Error()
	}
	return "could not acquire OTP from user"
}

func (e *OTPAcquisitionError) Unwrap() error { return e.Err }

// RemoteError is a rejection by the GitHub API: wrong credentials, a failed
// OTP, a server-side scope complaint, and so on. Message is taken from the
// response body's "message" field when the body is JSON, otherwise the raw
// body text.
type RemoteError struct {
	StatusCode int
	Reason     string
	Message    string
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Reason
	}
	return "github: " + msg
}

// TransportError wraps a failure to talk to the API at all (DNS, connection
// refused, TLS handshake). It is never retried.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }
