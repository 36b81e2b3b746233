// Package cli implements the `fhirctl` command line runner.
//
// The runner connects to a FHIR server, reports the discovered capability
// summary and the operations it advertises, and can describe one named
// operation or drive the interactive authorization flow.  Configuration
// comes from a YAML file, command line flags, or both, with flags winning.
package cli
