package schema

import "encoding/json"

// Resource is a generic envelope around a FHIR resource body. The session
// engine never interprets resource content beyond type and id; callers
// decode into their own model.
type Resource struct {
	Raw json.RawMessage
}

type resourceProbe struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
}

// NewResource wraps raw JSON as a resource envelope.
func NewResource(raw []byte) *Resource {
	return &Resource{Raw: json.RawMessage(raw)}
}

// Type returns the resourceType declared by the body, if any.
func (r *Resource) Type() string {
	var probe resourceProbe
	_ = json.Unmarshal(r.Raw, &probe)
	return probe.ResourceType
}

// ID returns the logical id declared by the body, if any.
func (r *Resource) ID() string {
	var probe resourceProbe
	_ = json.Unmarshal(r.Raw, &probe)
	return probe.ID
}

// Decode unmarshals the body into target.
func (r *Resource) Decode(target any) error {
	return json.Unmarshal(r.Raw, target)
}
