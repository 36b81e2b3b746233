package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

func newTestRequest(t *testing.T) *http.Request {
	req, err := http.NewRequest(http.MethodGet, "https://fhir.example.com/Patient/1", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	return req
}

func TestParseIDTokenClaims(t *testing.T) {
	idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "user-1",
		"fhirUser": "Patient/example",
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	token := (&oauth2.Token{
		AccessToken: "access",
		Expiry:      time.Now().Add(time.Hour),
	}).WithExtra(map[string]any{"id_token": idToken})

	claims := parseIDTokenClaims(token)
	if assert.NotNil(t, claims) {
		assert.Equal(t, "Patient/example", claims["fhirUser"])
	}

	// claims come back untrusted or not at all
	assert.Nil(t, parseIDTokenClaims(&oauth2.Token{AccessToken: "access"}))
	garbage := (&oauth2.Token{AccessToken: "access"}).WithExtra(map[string]any{"id_token": "not-a-jwt"})
	assert.Nil(t, parseIDTokenClaims(garbage))
}

func TestDecodeSettings(t *testing.T) {
	settings, err := DecodeSettings(map[string]any{
		"authorize_type": "authorization_code",
		"client_id":      "demo",
		"scope":          "launch/patient",
		"unknown_key":    "ignored",
	})
	assert.Nil(t, err)
	assert.Equal(t, "authorization_code", settings.Type)
	assert.Equal(t, "demo", settings.ClientID)
	assert.Equal(t, "launch/patient", settings.Scope)
}

func TestSettings_Merge(t *testing.T) {
	settings := &Settings{
		ClientID:     "demo",
		AuthorizeURI: "https://stale.example.com/authorize",
	}
	merged := settings.merge("https://auth.example.com/authorize", "https://auth.example.com/token", "")
	assert.Equal(t, "https://auth.example.com/authorize", merged.AuthorizeURI)
	assert.Equal(t, "https://auth.example.com/token", merged.TokenURI)
	assert.Empty(t, merged.RegistrationURI)
	// the receiver is untouched
	assert.Equal(t, "https://stale.example.com/authorize", settings.AuthorizeURI)
}
