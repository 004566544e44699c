// Package connerr defines the typed errors a connector operation can surface
// to the governance platform, and the classification of lower-level failures
// into them. Callers match kinds with IsKind or errors.As.
package connerr

import (
	"errors"
	"fmt"
	"net"
)

// Kind tags an Error with the failure category the platform understands.
type Kind int

const (
	// KindGeneric is the catch-all for any other failure.
	KindGeneric Kind = iota
	// KindConfiguration covers missing settings, rejected credentials (401)
	// and malformed private keys.
	KindConfiguration
	// KindConnection covers network-level failures reaching the remote host.
	KindConnection
	// KindInsufficientPermission covers remote rejections with HTTP 403.
	KindInsufficientPermission
	// KindInvalidRequest covers malformed caller input and remote 400/404.
	KindInvalidRequest
	// KindInvalidResponse covers nominally successful calls that returned an
	// empty or unusable payload.
	KindInvalidResponse
	// KindObjectNotFound and KindObjectAlreadyExists describe semantic
	// conflicts on the managed resource.
	KindObjectNotFound
	KindObjectAlreadyExists
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "invalid configuration"
	case KindConnection:
		return "connection failed"
	case KindInsufficientPermission:
		return "insufficient permission"
	case KindInvalidRequest:
		return "invalid request"
	case KindInvalidResponse:
		return "invalid response"
	case KindObjectNotFound:
		return "object not found"
	case KindObjectAlreadyExists:
		return "object already exists"
	default:
		return "connector error"
	}
}

// Error is an immutable connector error: a kind, a human-readable message
// and an optional wrapped cause.
type Error struct {
	kind    Kind
	message string
	cause   error
}

func New(kind Kind, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: cause}
}

func Generic(message string, cause error) *Error {
	return New(KindGeneric, message, cause)
}

func Configuration(message string, cause error) *Error {
	return New(KindConfiguration, message, cause)
}

func Connection(message string, cause error) *Error {
	return New(KindConnection, message, cause)
}

func InsufficientPermission(message string, cause error) *Error {
	return New(KindInsufficientPermission, message, cause)
}

func InvalidRequest(message string, cause error) *Error {
	return New(KindInvalidRequest, message, cause)
}

func InvalidResponse(message string, cause error) *Error {
	return New(KindInvalidResponse, message, cause)
}

func ObjectNotFound(message string, cause error) *Error {
	return New(KindObjectNotFound, message, cause)
}

func ObjectAlreadyExists(message string, cause error) *Error {
	return New(KindObjectAlreadyExists, message, cause)
}

func (e *Error) Error() string {
	if e.message == "" && e.cause != nil {
		return fmt.Sprintf("%s: %v", e.kind, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Kind() Kind { return e.kind }

// IsKind reports whether err is (or wraps) a connector Error of kind k.
func IsKind(err error, k Kind) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}
	return ce.kind == k
}

// HTTPStatuser is implemented by transport errors that carry an HTTP status
// code. Declared here so classification does not depend on the transport
// package.
type HTTPStatuser interface {
	HTTPStatus() int
}

// Classify converts a lower-level error into a typed connector Error at the
// point it crosses into this system. Errors that are already typed pass
// through unchanged; HTTP errors are mapped by status code; unresolved-host
// failures become connection errors; everything else becomes generic.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}

	var st HTTPStatuser
	if errors.As(err, &st) {
		status := st.HTTPStatus()
		message := fmt.Sprintf("%d %v", status, err)
		switch status {
		case 400, 404:
			return InvalidRequest(message, err)
		case 401:
			return Configuration(message, err)
		case 403:
			return InsufficientPermission(message, err)
		default:
			return Generic(message, err)
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return Connection(fmt.Sprintf("unknown host %q: %v", dnsErr.Name, err), err)
	}

	return Generic(err.Error(), err)
}
