package mock

import (
	"net/http"
	"strings"
)

// router dispatches incoming HTTP requests to the mock endpoints.
type router struct {
	service *SmartService
}

func (h *router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m := h.service
	switch {
	case r.URL.Path == "/token":
		if m.TokenHandler != nil {
			m.TokenHandler(w, r)
		} else {
			m.defaultTokenHandler(w, r)
		}
	case r.URL.Path == "/authorize":
		if m.AuthorizeHandler != nil {
			m.AuthorizeHandler(w, r)
		} else {
			m.defaultAuthorizeHandler(w, r)
		}
	case r.URL.Path == "/metadata":
		m.MetadataCalls++
		if m.MetadataHandler != nil {
			m.MetadataHandler(w, r)
		} else {
			m.defaultMetadataHandler(w, r)
		}
	case strings.HasPrefix(r.URL.Path, "/Patient/"):
		if m.PatientHandler != nil {
			m.PatientHandler(w, r)
		} else {
			m.defaultPatientHandler(w, r)
		}
	case strings.HasPrefix(r.URL.Path, "/OperationDefinition/"):
		if m.OperationHandler != nil {
			m.OperationHandler(w, r)
		} else {
			m.defaultOperationHandler(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}
