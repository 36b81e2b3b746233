// Package mock provides an in-process SMART on FHIR test double: a FHIR
// metadata endpoint with SMART security extensions, an OAuth2 authorize
// and token endpoint minting signed JWTs, and a protected Patient route.
package mock
