package schema

type (
	// OperationDefinition is the resolved, typed description of a named
	// server operation. Once resolved it is treated as immutable.
	OperationDefinition struct {
		ResourceType string                         `json:"resourceType"`
		Name         string                         `json:"name"`
		Code         string                         `json:"code"`
		Kind         string                         `json:"kind,omitempty"`
		System       bool                           `json:"system"`
		Type         bool                           `json:"type"`
		Instance     bool                           `json:"instance"`
		Resource     []string                       `json:"resource,omitempty"`
		Parameter    []OperationDefinitionParameter `json:"parameter,omitempty"`
	}

	// OperationDefinitionParameter describes one formal parameter of an
	// operation, including its cardinality and primitive type.
	OperationDefinitionParameter struct {
		Name string `json:"name"`
		Use  string `json:"use,omitempty"`
		Min  int    `json:"min"`
		Max  string `json:"max,omitempty"`
		Type string `json:"type,omitempty"`
	}
)

// In reports whether p is an input parameter.
func (p *OperationDefinitionParameter) In() bool {
	return p.Use == "" || p.Use == "in"
}

// AppliesToResource reports whether the operation is defined for the given
// resource type.
func (d *OperationDefinition) AppliesToResource(resourceType string) bool {
	for _, candidate := range d.Resource {
		if candidate == resourceType {
			return true
		}
	}
	return false
}
