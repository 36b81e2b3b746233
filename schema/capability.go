package schema

// OAuthURIsExtension is the SMART on FHIR extension advertising the OAuth2
// endpoints inside a capability statement's security element.
const OAuthURIsExtension = "http://fhir-registry.smarthealthit.org/StructureDefinition/oauth-uris"

// RestModeClient marks the rest group describing client-facing behavior.
const RestModeClient = "client"

type (
	// Capability is the subset of a FHIR capability statement the session
	// engine reads. Unknown fields are ignored on decode.
	Capability struct {
		ResourceType string `json:"resourceType"`
		Name         string `json:"name,omitempty"`
		Title        string `json:"title,omitempty"`
		Publisher    string `json:"publisher,omitempty"`
		FhirVersion  string `json:"fhirVersion,omitempty"`
		Rest         []Rest `json:"rest,omitempty"`
	}

	// Rest is one interaction group of a capability statement.
	Rest struct {
		Mode      string          `json:"mode"`
		Security  *Security       `json:"security,omitempty"`
		Operation []RestOperation `json:"operation,omitempty"`
	}

	// Security describes the authorization scheme of a rest group.
	Security struct {
		Cors      *bool             `json:"cors,omitempty"`
		Service   []CodeableConcept `json:"service,omitempty"`
		Extension []Extension       `json:"extension,omitempty"`
	}

	// RestOperation advertises a named server operation together with a
	// reference to its full definition.
	RestOperation struct {
		Name       string `json:"name"`
		Definition string `json:"definition"`
	}

	CodeableConcept struct {
		Coding []Coding `json:"coding,omitempty"`
		Text   string   `json:"text,omitempty"`
	}

	Coding struct {
		System  string `json:"system,omitempty"`
		Code    string `json:"code,omitempty"`
		Display string `json:"display,omitempty"`
	}

	Extension struct {
		URL       string      `json:"url"`
		ValueURI  string      `json:"valueUri,omitempty"`
		ValueURL  string      `json:"valueUrl,omitempty"`
		Extension []Extension `json:"extension,omitempty"`
	}
)

// DisplayName returns the human readable server name declared by the
// capability statement, preferring title over name.
func (c *Capability) DisplayName() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// PreferredRest selects the rest group the client should trust. A single
// group is used as is; with several, the first group is the candidate but
// the first group in client mode always wins.
func (c *Capability) PreferredRest() *Rest {
	if len(c.Rest) == 0 {
		return nil
	}
	best := &c.Rest[0]
	for i := range c.Rest {
		if c.Rest[i].Mode == RestModeClient {
			return &c.Rest[i]
		}
	}
	return best
}

// OAuthEndpoints extracts the SMART authorize/token/register endpoint URIs
// from the security element. Missing entries come back empty.
func (s *Security) OAuthEndpoints() (authorize, token, register string) {
	if s == nil {
		return "", "", ""
	}
	for _, ext := range s.Extension {
		if ext.URL != OAuthURIsExtension {
			continue
		}
		for _, nested := range ext.Extension {
			value := nested.ValueURI
			if value == "" {
				value = nested.ValueURL
			}
			switch nested.URL {
			case "authorize":
				authorize = value
			case "token":
				token = value
			case "register":
				register = value
			}
		}
	}
	return authorize, token, register
}
