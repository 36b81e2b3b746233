package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/healthlink/fhir/client/auth/flow"
	"github.com/healthlink/fhir/client/auth/store"
	"github.com/healthlink/fhir/client/transport"
)

type Option func(*Server)

// WithName sets the display name. A name set here is never overwritten by
// the capability statement.
func WithName(name string) Option {
	return func(s *Server) {
		s.name = name
	}
}

// WithSettings supplies the static authorization settings the session is
// constructed with (SMART client settings vocabulary).
func WithSettings(settings map[string]any) Option {
	return func(s *Server) {
		s.settings = settings
	}
}

// WithAudience overrides the audience sent to the authorization server;
// it defaults to the original base address string.
func WithAudience(audience string) Option {
	return func(s *Server) {
		s.aud = audience
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStore sets the token store shared by authorization strategies.
func WithStore(tokenStore store.Store) Option {
	return func(s *Server) {
		s.authDeps.Store = tokenStore
	}
}

// WithAuthFlow sets the interactive flow used by grant strategies.
func WithAuthFlow(authFlow flow.AuthFlow) Option {
	return func(s *Server) {
		s.authDeps.Flow = authFlow
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.transportOptions = append(s.transportOptions, transport.WithTimeout(timeout))
	}
}

func WithCookieJar(jar http.CookieJar) Option {
	return func(s *Server) {
		s.transportOptions = append(s.transportOptions, transport.WithCookieJar(jar))
	}
}

// WithTransportDelegate decorates the transport session's round tripper.
func WithTransportDelegate(delegate transport.Delegate) Option {
	return func(s *Server) {
		s.transportOptions = append(s.transportOptions, transport.WithDelegate(delegate))
	}
}
