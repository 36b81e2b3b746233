package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/healthlink/fhir/client/auth"
	"github.com/healthlink/fhir/schema"
)

// metadataPath is the well-known relative path of the capability statement.
const metadataPath = "metadata"

// Capability returns the cached capability statement, if discovery
// succeeded before.
func (s *Server) Capability() (*schema.Capability, bool) {
	return s.capability.Get()
}

// Discover fetches and caches the server's capability statement. It is an
// idempotent no-op once the document is cached, and concurrent first-time
// callers coalesce on a single fetch. On failure the document stays unset
// so a later call may retry.
func (s *Server) Discover(ctx context.Context) error {
	if _, ok := s.capability.Get(); ok {
		return nil
	}
	s.discoverMux.Lock()
	defer s.discoverMux.Unlock()
	// a coalesced caller may find the document already cached
	if _, ok := s.capability.Get(); ok {
		return nil
	}

	outcome := s.Perform(ctx, metadataPath, NewReadHandler())
	if outcome.Error != nil {
		return fmt.Errorf("%w: %v", ErrDiscovery, outcome.Error)
	}
	var capability schema.Capability
	if err := json.Unmarshal(outcome.Body, &capability); err != nil {
		return fmt.Errorf("%w: unexpected capability document: %v", ErrDiscovery, err)
	}
	if capability.ResourceType != "CapabilityStatement" {
		return fmt.Errorf("%w: unexpected resource type %q", ErrDiscovery, capability.ResourceType)
	}
	s.applyCapability(&capability)
	return nil
}

func (s *Server) applyCapability(capability *schema.Capability) {
	if !s.capability.Set(capability) {
		return
	}
	s.setNameIfEmpty(capability.DisplayName())

	advertised := map[string]schema.RestOperation{}
	rest := capability.PreferredRest()
	if rest != nil {
		for _, op := range rest.Operation {
			advertised[op.Name] = op
		}
		// the capability document is the more authoritative source, so it
		// replaces any settings-derived strategy
		s.setStrategy(s.selector.FromCapability(rest.Security, s.settings))
	}
	s.advertised.Set(advertised)

	// a server that advertises no security is open, not an error
	if s.Strategy() == nil {
		s.setStrategy(auth.NewNone())
	}
	s.logger.Debug("capability discovered",
		"server", s.Name(),
		"fhirVersion", capability.FhirVersion,
		"operations", len(advertised),
		"auth", string(s.Strategy().Type()))
}
