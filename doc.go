// Package fhir provides high-level helpers for working with FHIR servers.
//
// The package glues the session engine in github.com/healthlink/fhir/client
// with authorization strategies, token stores and convenience configuration
// structures.  In practice it is used as an umbrella package whose primary
// entry point is NewClient, which returns a fully configured server session.
//
// The constructor accepts an option structure that can be populated from CLI
// flags or configuration files, making it straightforward to open a session
// with SMART on FHIR authorization (authorization code, implicit or resource
// owner password grants), persistent token caching and custom user-agent
// flows.
//
// Example:
//
//	session, _ := fhir.NewClient(&fhir.ClientOptions{
//		URL:  "https://fhir.example.com/r4",
//		Auth: &fhir.ClientAuth{ClientID: "demo", Scope: "launch/patient"},
//	})
//	_ = session.Ready(ctx)
//
// See the README for a more complete introduction.
package fhir
