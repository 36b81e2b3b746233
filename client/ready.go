package client

import (
	"context"
	"fmt"

	"github.com/healthlink/fhir/client/auth"
	"github.com/healthlink/fhir/schema"
)

// Ready ensures an authorization strategy exists before any signed request
// is attempted, running capability discovery on demand. It is idempotent
// and has no terminal failure state: after a failed discovery the next
// call retries.
func (s *Server) Ready(ctx context.Context) error {
	if s.Strategy() != nil {
		return nil
	}
	if err := s.Discover(ctx); err != nil {
		return err
	}
	if s.Strategy() == nil {
		return ErrAuthMethodUndetected
	}
	return nil
}

// Authorize runs the active strategy's authorization and resolves the
// patient context it yields: a ready-made patient resource is returned
// directly, a bare patient id triggers a follow-up read whose own failure
// becomes this call's error, and a context-free grant succeeds with nil.
func (s *Server) Authorize(ctx context.Context, props *auth.Properties) (*schema.Resource, error) {
	if err := s.Ready(ctx); err != nil {
		return nil, err
	}
	result, err := s.Strategy().Authorize(ctx, props)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	if result.Patient != nil {
		return result.Patient, nil
	}
	if result.PatientID != "" {
		outcome := s.Perform(ctx, "Patient/"+result.PatientID, NewReadHandler())
		if outcome.Error != nil {
			return nil, fmt.Errorf("failed to resolve patient %s: %w", result.PatientID, outcome.Error)
		}
		return outcome.Resource, nil
	}
	return nil, nil
}
