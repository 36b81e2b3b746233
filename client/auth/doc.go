// Package auth implements the authorization strategies a FHIR server
// session can operate with: none (open server), implicit grant,
// authorization code grant, password grant, plus integrator registered
// custom variants. A single strategy is active per session; selection is
// driven by static settings or by the server's capability statement.
package auth
