package auth

import (
	"context"
	"net/http"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/healthlink/fhir/schema"
)

// Type tags the closed set of authorization strategy variants.
type Type string

const (
	TypeNone      Type = "none"
	TypeImplicit  Type = "implicit"
	TypeCodeGrant Type = "authorization_code"
	TypePassword  Type = "password"
)

// Properties carries per-call authorization inputs, such as extra scopes or
// provider specific authorize URL parameters.
type Properties struct {
	Scope       string
	RedirectURI string
	Params      map[string]string
}

// Result is what a strategy hands back after a completed authorization.
// Token is always set on success for token-bearing strategies. Patient or
// PatientID are present only for patient-scoped grants.
type Result struct {
	Token         *oauth2.Token
	Patient       *schema.Resource
	PatientID     string
	IDTokenClaims jwt.MapClaims
}

// Strategy is the uniform capability surface over all authorization
// variants. Constructing a strategy never performs network I/O; only
// Authorize may go over the wire.
type Strategy interface {
	// Type identifies the variant.
	Type() Type

	// SignRequest attaches credentials to an outgoing request and returns
	// it. Strategies without credentials return the request unchanged.
	SignRequest(req *http.Request) *http.Request

	// Authorize runs the variant's grant flow and returns its result.
	Authorize(ctx context.Context, props *Properties) (*Result, error)

	// Reset voids cached tokens held by the strategy.
	Reset()

	// Abort cancels any authorization flow in progress.
	Abort()

	// ClientID and ClientSecret expose the configured client credentials
	// for dynamic-registration collaborators; empty when not applicable.
	ClientID() string
	ClientSecret() string
}

// Factory constructs a custom strategy variant from decoded settings.
type Factory func(settings *Settings, deps Deps) Strategy

var (
	registryMux sync.RWMutex
	registry    = map[Type]Factory{}
)

// Register makes a custom strategy variant selectable through the
// authorize_type settings key. Later registrations replace earlier ones.
func Register(name Type, factory Factory) {
	registryMux.Lock()
	defer registryMux.Unlock()
	registry[name] = factory
}

func lookupFactory(name Type) (Factory, bool) {
	registryMux.RLock()
	defer registryMux.RUnlock()
	f, ok := registry[name]
	return f, ok
}

func parseIDTokenClaims(token *oauth2.Token) jwt.MapClaims {
	raw, _ := token.Extra("id_token").(string)
	if raw == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil
	}
	return claims
}

func patientFromToken(token *oauth2.Token) string {
	patient, _ := token.Extra("patient").(string)
	return patient
}
