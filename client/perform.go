package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Perform turns a logical request description into a signed transport
// request and executes it. When the path cannot be resolved against the
// canonical base or the handler fails to prepare the request, it returns
// a not-sent outcome synchronously without touching the transport.
// Completion is not bound to any particular goroutine.
func (s *Server) Perform(ctx context.Context, path string, handler RequestHandler) *Outcome {
	target, err := s.resolve(path)
	if err != nil {
		return handler.NotSent(fmt.Errorf("%w: %v", ErrPathResolution, err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return handler.NotSent(fmt.Errorf("%w: %v", ErrPathResolution, err))
	}
	if strategy := s.Strategy(); strategy != nil {
		req = strategy.SignRequest(req)
	}
	if err := handler.Prepare(req); err != nil {
		return handler.NotSent(fmt.Errorf("%w: %v", ErrRequestPreparation, err))
	}
	s.logger.Debug("performing request", "method", req.Method, "url", target)
	resp, body, err := s.session.Do(req)
	return handler.Outcome(resp, body, err)
}

// resolve interprets path relative to the canonical base address;
// absolute references pass through unchanged.
func (s *Server) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	resolved := s.base.ResolveReference(ref)
	if !resolved.IsAbs() || resolved.Host == "" {
		return "", fmt.Errorf("%q does not resolve against %q", path, s.base)
	}
	return resolved.String(), nil
}
