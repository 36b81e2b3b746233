package mock

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
)

// SmartService is a test server that simulates a SMART on FHIR endpoint:
// an OAuth2 authorization server plus the handful of FHIR routes the
// session engine touches (metadata, Patient read, operation definitions).
type SmartService struct {
	PrivateKey   *rsa.PrivateKey
	Issuer       string
	ClientID     string
	ClientSecret string
	PatientID    string
	ServerName   string

	// MetadataCalls counts capability statement fetches, so tests can
	// assert discovery happens at most once.
	MetadataCalls int

	TokenHandler     func(w http.ResponseWriter, r *http.Request)
	AuthorizeHandler func(w http.ResponseWriter, r *http.Request)
	MetadataHandler  func(w http.ResponseWriter, r *http.Request)
	PatientHandler   func(w http.ResponseWriter, r *http.Request)
	OperationHandler func(w http.ResponseWriter, r *http.Request)
}

type Option func(*SmartService)

func WithClient(id, secret string) Option {
	return func(s *SmartService) {
		s.ClientID = id
		s.ClientSecret = secret
	}
}

func WithPatient(id string) Option {
	return func(s *SmartService) {
		s.PatientID = id
	}
}

// NewSmartService creates a new mock SMART on FHIR service.
func NewSmartService(opts ...Option) (*SmartService, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %v", err)
	}

	service := &SmartService{
		PrivateKey:   privateKey,
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		PatientID:    "example",
		ServerName:   "Mock SMART Server",
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Handler returns an http.Handler for all mock endpoints, suitable for any HTTP server.
func (m *SmartService) Handler() http.Handler {
	return &router{service: m}
}
