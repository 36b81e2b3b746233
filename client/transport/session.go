// Package transport manages the single reusable HTTP session a server
// session performs its requests through. The session is created lazily on
// first use, can be decorated with an integrator supplied delegate, and
// supports forced invalidation and aborting of in-flight work.
package transport

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"
)

// Delegate decorates the base round tripper of a session's HTTP client,
// e.g. to add tracing or a signing proxy. It must be attached before the
// client exists; attaching later invalidates the cached client so the
// next request recreates it with the delegate applied.
type Delegate func(base http.RoundTripper) http.RoundTripper

type Session struct {
	mux      sync.Mutex
	delegate Delegate
	jar      http.CookieJar
	timeout  time.Duration
	current  *generation
}

// generation ties one lazily created client to a cancelable lifetime.
type generation struct {
	client *http.Client
	ctx    context.Context
	cancel context.CancelFunc
}

type Option func(*Session)

func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.timeout = timeout
	}
}

func WithCookieJar(jar http.CookieJar) Option {
	return func(s *Session) {
		s.jar = jar
	}
}

func WithDelegate(delegate Delegate) Option {
	return func(s *Session) {
		s.delegate = delegate
	}
}

func New(options ...Option) *Session {
	ret := &Session{}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// SetDelegate attaches a delegate. If a client already exists it is
// discarded so the next use recreates one with the new delegate.
func (s *Session) SetDelegate(delegate Delegate) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.delegate = delegate
	s.current = nil
}

// Client returns the managed HTTP client, creating it on first use.
func (s *Session) Client() *http.Client {
	return s.generation().client
}

func (s *Session) generation() *generation {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.current == nil {
		var rt http.RoundTripper = http.DefaultTransport
		if s.delegate != nil {
			rt = s.delegate(rt)
		}
		ctx, cancel := context.WithCancel(context.Background())
		s.current = &generation{
			client: &http.Client{Transport: rt, Jar: s.jar, Timeout: s.timeout},
			ctx:    ctx,
			cancel: cancel,
		}
	}
	return s.current
}

// Active reports whether a client has been created and not yet discarded.
func (s *Session) Active() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.current != nil
}

// Invalidate discards the cached client; in-flight requests finish
// undisturbed and the next request creates a fresh client.
func (s *Session) Invalidate() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.current = nil
}

// Abort cancels in-flight requests issued through the current client and
// discards it.
func (s *Session) Abort() {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.current != nil {
		s.current.cancel()
		s.current.client.CloseIdleConnections()
		s.current = nil
	}
}

// Do executes the request through the managed client, fully reading the
// response body so the caller never races Abort on a half-read body.
func (s *Session) Do(req *http.Request) (*http.Response, []byte, error) {
	gen := s.generation()
	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	stop := context.AfterFunc(gen.ctx, cancel)
	defer stop()

	resp, err := gen.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, body, nil
}
