package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthlink/fhir/client"
	"github.com/healthlink/fhir/client/auth"
)

func TestNew_BaseAddress(t *testing.T) {
	testCases := []struct {
		description string
		baseURL     string
		expectBase  string
		expectAud   string
		expectError bool
	}{
		{
			description: "trailing separator appended",
			baseURL:     "https://fhir.example.com/r4",
			expectBase:  "https://fhir.example.com/r4/",
			expectAud:   "https://fhir.example.com/r4",
		},
		{
			description: "existing separator preserved",
			baseURL:     "https://fhir.example.com/r4/",
			expectBase:  "https://fhir.example.com/r4/",
			expectAud:   "https://fhir.example.com/r4/",
		},
		{
			description: "surrounding whitespace trimmed",
			baseURL:     "  https://fhir.example.com/r4 ",
			expectBase:  "https://fhir.example.com/r4/",
			expectAud:   "https://fhir.example.com/r4",
		},
		{
			description: "relative address rejected",
			baseURL:     "fhir.example.com/r4",
			expectError: true,
		},
		{
			description: "empty address rejected",
			baseURL:     "",
			expectError: true,
		},
		{
			description: "malformed address rejected",
			baseURL:     "https://fhir.example.com/%zz",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		server, err := client.New(testCase.baseURL)
		if testCase.expectError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectBase, server.BaseURL(), testCase.description)
		assert.Equal(t, testCase.expectAud, server.Audience(), testCase.description)
	}
}

func TestNew_SettingsSelectStrategy(t *testing.T) {
	server, err := client.New("https://fhir.example.com/r4", client.WithSettings(map[string]any{
		"client_id":     "demo",
		"authorize_uri": "https://auth.example.com/authorize",
		"token_uri":     "https://auth.example.com/token",
	}))
	assert.Nil(t, err)
	if assert.NotNil(t, server.Strategy()) {
		assert.Equal(t, auth.TypeCodeGrant, server.Strategy().Type())
	}

	// a settings-derived strategy makes the session ready without any
	// server round trip
	assert.Nil(t, server.Ready(context.Background()))

	id, secret := server.ClientCredentials()
	assert.Equal(t, "demo", id)
	assert.Empty(t, secret)
}

func TestNew_UndecodableSettingsReject(t *testing.T) {
	_, err := client.New("https://fhir.example.com/r4", client.WithSettings(map[string]any{
		"scope": map[string]any{"nested": true},
	}))
	assert.NotNil(t, err)
}

func TestNew_PartialSettingsDeferToDiscovery(t *testing.T) {
	server, err := client.New("https://fhir.example.com/r4", client.WithSettings(map[string]any{
		"client_id": "demo",
	}))
	assert.Nil(t, err)
	assert.Nil(t, server.Strategy())
}

func TestServer_Name(t *testing.T) {
	server, err := client.New("https://fhir.example.com/r4", client.WithName("My EHR"))
	assert.Nil(t, err)
	assert.Equal(t, "My EHR", server.Name())
}
