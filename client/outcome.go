package client

import (
	"net/http"

	"github.com/healthlink/fhir/schema"
)

// Outcome is the typed result of one request through the execution
// pipeline. It always carries a status (zero when the request was never
// sent) and an optional error; it never panics past this boundary.
type Outcome struct {
	// Sent reports whether the request reached the transport.
	Sent bool

	Status int
	Header http.Header
	Body   []byte

	// Resource holds the decoded response envelope for successful FHIR
	// interactions.
	Resource *schema.Resource

	Error error
}

// Succeeded reports whether the request completed without error.
func (o *Outcome) Succeeded() bool {
	return o != nil && o.Error == nil
}
