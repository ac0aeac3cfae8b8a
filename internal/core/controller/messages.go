package controller

import (
	"errors"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
)

// Fixed user-facing texts.
const (
	TransportMessage        = "Unable to reach the server. Please try again."
	NotAuthenticatedMessage = "Your session has expired. Please log in again."
)

// LoginMessages is the table of the login form.
var LoginMessages = serverFirst("Login failed. Please try again.", map[domain.FailureKind]string{
	domain.KindAuthorization: "Invalid username or password.",
})

// Messages turns a failure of one action into the text shown to the user.
//
// Client-side validation errors show the first field problem. Transport
// failures always read TransportMessage. A server-provided message is shown
// verbatim for validation failures, and for every kind when ServerFirst is
// set. Otherwise ByKind is consulted before Fallback.
type Messages struct {
	Fallback    string
	ServerFirst bool
	ByKind      map[domain.FailureKind]string
}

// For returns the message for err, or "" for a nil error.
func (m Messages) For(err error) string {
	if err == nil {
		return ""
	}
	var fe form.Errors
	if errors.As(err, &fe) {
		return fe.First()
	}
	if errors.Is(err, domain.ErrNotAuthenticated) {
		return NotAuthenticatedMessage
	}

	f := domain.Classify(err)
	if f.Kind == domain.KindTransport {
		return TransportMessage
	}
	if f.Message != "" && (m.ServerFirst || f.Kind == domain.KindValidation) {
		return f.Message
	}
	if msg, ok := m.ByKind[f.Kind]; ok {
		return msg
	}
	return m.Fallback
}

// fallback is a table with a single generic message.
func fallback(msg string) Messages { return Messages{Fallback: msg} }

// serverFirst is a table that prefers the server message for every kind.
func serverFirst(msg string, byKind map[domain.FailureKind]string) Messages {
	return Messages{Fallback: msg, ServerFirst: true, ByKind: byKind}
}
