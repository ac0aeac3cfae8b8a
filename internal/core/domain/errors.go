package domain

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrCorruptSession = errors.New("corrupt persisted session")
var ErrCredentialNotFound = errors.New("credential not found")
var ErrUnknownRole = errors.New("unknown role")
var ErrInvalidInput = errors.New("invalid input")

// Failure kinds, usable with errors.Is against any *Failure.
var (
	ErrTransport     = errors.New("transport failure")
	ErrValidation    = errors.New("validation failure")
	ErrAuthorization = errors.New("authorization failure")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrServer        = errors.New("server failure")
	ErrDecode        = errors.New("undecodable response")
)
