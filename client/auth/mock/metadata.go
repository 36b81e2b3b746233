package mock

import (
	"encoding/json"
	"net/http"

	"github.com/healthlink/fhir/schema"
)

// defaultMetadataHandler serves the FHIR capability statement at /metadata,
// advertising the SMART OAuth endpoints and a patient-everything operation.
func (m *SmartService) defaultMetadataHandler(w http.ResponseWriter, _ *http.Request) {
	capability := schema.Capability{
		ResourceType: "CapabilityStatement",
		Name:         m.ServerName,
		FhirVersion:  "4.0.1",
		Rest: []schema.Rest{
			{
				Mode: "server",
			},
			{
				Mode: schema.RestModeClient,
				Security: &schema.Security{
					Service: []schema.CodeableConcept{
						{Coding: []schema.Coding{{
							System: "http://terminology.hl7.org/CodeSystem/restful-security-service",
							Code:   "SMART-on-FHIR",
						}}},
					},
					Extension: []schema.Extension{
						{
							URL: schema.OAuthURIsExtension,
							Extension: []schema.Extension{
								{URL: "authorize", ValueURI: m.Issuer + "/authorize"},
								{URL: "token", ValueURI: m.Issuer + "/token"},
							},
						},
					},
				},
				Operation: []schema.RestOperation{
					{Name: "everything", Definition: "OperationDefinition/Patient-everything"},
				},
			},
		},
	}
	w.Header().Set("Content-Type", "application/fhir+json")
	_ = json.NewEncoder(w).Encode(capability)
}

// defaultOperationHandler serves operation definitions referenced by the
// capability statement.
func (m *SmartService) defaultOperationHandler(w http.ResponseWriter, r *http.Request) {
	definition := schema.OperationDefinition{
		ResourceType: "OperationDefinition",
		Name:         "Patient Everything",
		Code:         "everything",
		Kind:         "operation",
		Instance:     true,
		Type:         true,
		Resource:     []string{"Patient"},
		Parameter: []schema.OperationDefinitionParameter{
			{Name: "start", Use: "in", Min: 0, Max: "1", Type: "date"},
			{Name: "end", Use: "in", Min: 0, Max: "1", Type: "date"},
			{Name: "_count", Use: "in", Min: 0, Max: "1", Type: "integer"},
		},
	}
	w.Header().Set("Content-Type", "application/fhir+json")
	_ = json.NewEncoder(w).Encode(definition)
}
