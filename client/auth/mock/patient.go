package mock

import (
	"encoding/json"
	"net/http"
	"strings"
)

// defaultPatientHandler serves /Patient/{id}, requiring a bearer token.
func (m *SmartService) defaultPatientHandler(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/Patient/")
	if id != m.PatientID {
		http.NotFound(w, r)
		return
	}
	patient := map[string]any{
		"resourceType": "Patient",
		"id":           id,
		"name": []map[string]any{
			{"family": "Chalmers", "given": []string{"Peter", "James"}},
		},
	}
	w.Header().Set("Content-Type", "application/fhir+json")
	_ = json.NewEncoder(w).Encode(patient)
}
