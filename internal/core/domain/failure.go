package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// FailureKind classifies why a backend call did not produce a result.
type FailureKind uint8

const (
	KindTransport FailureKind = iota + 1
	KindValidation
	KindAuthorization
	KindNotFound
	KindConflict
	KindServer
	KindDecode
)

var kindErrors = map[FailureKind]error{
	KindTransport:     ErrTransport,
	KindValidation:    ErrValidation,
	KindAuthorization: ErrAuthorization,
	KindNotFound:      ErrNotFound,
	KindConflict:      ErrConflict,
	KindServer:        ErrServer,
	KindDecode:        ErrDecode,
}

func (k FailureKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// KindForStatus maps an HTTP status of a failed response to its kind.
func KindForStatus(status int) FailureKind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthorization
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindServer
	}
}

// Failure is the classified outcome of a failed gateway call.
// Message holds the server-reported text, if any.
type Failure struct {
	Op      string
	Kind    FailureKind
	Status  int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	msg := f.Message
	if msg == "" && f.Err != nil {
		msg = f.Err.Error()
	}
	if f.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %s", f.Op, f.Kind, f.Status, msg)
	}
	return fmt.Sprintf("%s: %s: %s", f.Op, f.Kind, msg)
}

func (f *Failure) Unwrap() error { return f.Err }

// Is matches the kind sentinel, so errors.Is(err, ErrNotFound) holds for any
// not-found failure.
func (f *Failure) Is(target error) bool {
	return kindErrors[f.Kind] == target
}

// Classify returns the failure carried by err. Errors that never reached the
// server (dial errors, timeouts, cancellation) are transport failures.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: KindTransport, Err: err}
}
