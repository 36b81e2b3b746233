package client

import "errors"

// Failure kinds surfaced by the session engine. Errors carried on outcomes
// and returned from session calls wrap one of these, so callers can branch
// with errors.Is.
var (
	ErrTransport            = errors.New("transport failure")
	ErrDiscovery            = errors.New("capability discovery failed")
	ErrAuthMethodUndetected = errors.New("could not detect authorization method")
	ErrValidation           = errors.New("operation parameters do not match its definition")
	ErrUnsupportedOperation = errors.New("server does not support this operation")
	ErrRequestPreparation   = errors.New("failed to prepare request")
	ErrPathResolution       = errors.New("failed to resolve request path")
)
