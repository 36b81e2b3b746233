package client

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/healthlink/fhir/client/auth"
	"github.com/healthlink/fhir/client/transport"
	"github.com/healthlink/fhir/internal/collection"
	"github.com/healthlink/fhir/schema"
)

// Server is one session against a remote FHIR endpoint. It lazily
// discovers the server's capability statement, selects an authorization
// strategy, and executes signed requests through a managed transport
// session. A Server is safe for concurrent use; no state is shared across
// Server instances.
type Server struct {
	base     *url.URL
	aud      string
	settings map[string]any
	logger   *slog.Logger
	selector *auth.Selector
	session  *transport.Session

	nameMux sync.Mutex
	name    string

	authMux  sync.Mutex
	strategy auth.Strategy

	discoverMux sync.Mutex
	capability  collection.Cell[*schema.Capability]
	advertised  collection.Cell[map[string]schema.RestOperation]
	definitions *collection.SyncMap[string, *schema.OperationDefinition]

	authDeps         auth.Deps
	transportOptions []transport.Option
}

// New creates a session for the given base address. The address must be
// absolute; a malformed address is an integrator error and rejects
// construction. The canonical base always carries a trailing separator,
// while the original string is preserved as the authorization audience.
func New(baseURL string, options ...Option) (*Server, error) {
	trimmed := strings.TrimSpace(baseURL)
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid base address %q: %w", baseURL, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base address %q: not an absolute URL", baseURL)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	ret := &Server{
		base:        parsed,
		aud:         trimmed,
		logger:      slog.Default(),
		definitions: collection.NewSyncMap[string, *schema.OperationDefinition](),
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.authDeps.Audience = ret.aud
	ret.authDeps.Logger = ret.logger
	ret.selector = auth.NewSelector(ret.authDeps)
	ret.session = transport.New(ret.transportOptions...)

	if len(ret.settings) > 0 {
		strategy, err := ret.selector.FromSettings(ret.settings)
		if err != nil {
			return nil, err
		}
		ret.strategy = strategy
	}
	return ret, nil
}

// BaseURL returns the canonical base address, always ending in a path
// separator.
func (s *Server) BaseURL() string {
	return s.base.String()
}

// Audience returns the original, unnormalized address string used in
// authorization protocol audience fields.
func (s *Server) Audience() string {
	return s.aud
}

// Name returns the server's display name, if known.
func (s *Server) Name() string {
	s.nameMux.Lock()
	defer s.nameMux.Unlock()
	return s.name
}

func (s *Server) setNameIfEmpty(name string) {
	if name == "" {
		return
	}
	s.nameMux.Lock()
	defer s.nameMux.Unlock()
	if s.name == "" {
		s.name = name
	}
}

// Strategy returns the active authorization strategy, nil before one was
// established.
func (s *Server) Strategy() auth.Strategy {
	s.authMux.Lock()
	defer s.authMux.Unlock()
	return s.strategy
}

func (s *Server) setStrategy(strategy auth.Strategy) {
	s.authMux.Lock()
	defer s.authMux.Unlock()
	s.strategy = strategy
}

// ClientCredentials exposes the active strategy's client id and secret for
// dynamic-registration collaborators; both empty when no strategy exists.
func (s *Server) ClientCredentials() (id, secret string) {
	strategy := s.Strategy()
	if strategy == nil {
		return "", ""
	}
	return strategy.ClientID(), strategy.ClientSecret()
}

// Session exposes the managed transport session.
func (s *Server) Session() *transport.Session {
	return s.session
}

// Reset invalidates the transport session and asks the active strategy to
// clear its credentials. Cached server metadata (capability statement,
// operation definitions) survives: it describes the server, not the
// credentials.
func (s *Server) Reset() {
	s.session.Invalidate()
	if strategy := s.Strategy(); strategy != nil {
		strategy.Reset()
	}
}

// Abort cancels in-flight transport work and discards the session; the
// next request creates a fresh one. Pending strategy flows are the
// strategy's own responsibility.
func (s *Server) Abort() {
	s.session.Abort()
}
